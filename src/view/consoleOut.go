package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"episim/src/runner"
)

//ConsoleOut prints the progress of the non-interactive run
type ConsoleOut struct {
	r         *runner.Runner
	w         io.Writer
	au        aurora.Aurora
	title     string
	every     int
	startTime time.Time
}

//NewConsoleOut creates the printer writing to stdout with colors
func NewConsoleOut(title string) *ConsoleOut {
	return NewConsoleOutTo(os.Stdout, title, true)
}

//NewConsoleOutTo creates the printer writing to w
func NewConsoleOutTo(w io.Writer, title string, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), title: title, every: 10}
}

func (c *ConsoleOut) Refresh() {
	st := c.r.Status()
	switch st.RunningMode {
	case runner.RunningStateFinished:
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Infected":       c.au.Red(st.Counts.Infected),
			"Susceptible":    c.au.Green(st.Counts.Susceptible),
			"Recovered":      c.au.Cyan(st.Counts.Recovered),
		}
		fmt.Fprintln(c.w, "\nFinished:")
		c.printHashData(resultData)
	case runner.RunningStateRun:
		if st.IterationNum%c.every == 0 {
			fmt.Fprintf(c.w, "  Iterations done: %v (I %v, S %v, R %v)\n", st.IterationNum,
				c.au.Red(st.Counts.Infected), c.au.Green(st.Counts.Susceptible), c.au.Cyan(st.Counts.Recovered))
		}
	}
}

func (c *ConsoleOut) Register(r *runner.Runner) {
	c.r = r
	o := r.Options()
	p := r.Params()
	fmt.Fprintln(c.w, c.au.Bold(c.title))
	fmt.Fprintln(c.w, "Running configuration:")
	maxSteps := "until no infected cell is left"
	if o.MaxSteps > 0 {
		maxSteps = fmt.Sprintf("%v steps", o.MaxSteps)
	}
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", p.GridSize, p.GridSize),
		"Interval":       o.Interval,
		"Max iterations": maxSteps,
		"Engine":         r.Engine(),
		"Seed":           r.Seed(),
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
