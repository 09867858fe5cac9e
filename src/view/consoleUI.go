package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"episim/src/epidemic"
	"episim/src/runner"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal view of the simulation
type ConsoleUI struct {
	r       *runner.Runner
	g       *gocui.Gui
	k       []keyBindings
	title   string
	fillers map[epidemic.State]string
}

var (
	runningStateDescr = map[runner.RunningState]string{
		runner.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		runner.RunningStateStep:     "do the step",
		runner.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		runner.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the terminal UI, it panics when the terminal can't be initialized
func NewViewTerminal(title string) *ConsoleUI {

	var err error
	t := ConsoleUI{
		title:   title,
		fillers: cellFillers(aurora.NewAurora(true)),
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Reseed", t.cmdClear, ""},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

//cellFillers returns the two-char block of every state
func cellFillers(au aurora.Aurora) map[epidemic.State]string {
	return map[epidemic.State]string{
		epidemic.Infected:    au.Red("██").String(),
		epidemic.Susceptible: au.Green("██").String(),
		epidemic.Recovered:   au.Cyan("░░").String(),
	}
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(r *runner.Runner) {
	t.r = r
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	snap := t.r.Snapshot()
	t.renderField(snap.Area)
	t.renderConfiguration()
	t.renderStatus(snap)
}

func (t *ConsoleUI) renderField(a epidemic.Area) {

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("field")
		if e != nil {
			return e
		}
		v.Clear()
		maxW, maxH := v.Size()
		_, _ = fmt.Fprint(v, renderArea(a, t.fillers, maxW, maxH))
		return nil
	})
}

//renderArea draws the rows of the area which fit into maxW x maxH chars
//every cell takes two chars to keep the grid square
func renderArea(a epidemic.Area, fillers map[epidemic.State]string, maxW int, maxH int) string {
	crop := a.Size*2 > maxW || a.Size > maxH
	var b bytes.Buffer
	for i, l := range a.Cells {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		//line feed char
		if i != 0 {
			b.WriteByte(10)
		}
		if crop && i == (maxH-1) {
			b.WriteString(aurora.Red("The grid is larger than the viewing area").BgBlack().String())
			break
		}
		for j, s := range l {
			if (j+1)*2 > maxW {
				break
			}
			b.WriteString(fillers[s])
		}
	}
	return b.String()
}

//sparkline draws the values as a bar row of at most width chars, the last values are kept
func sparkline(values []int, top int, width int) string {
	const bars = "▁▂▃▄▅▆▇█"
	levels := []rune(bars)
	if len(values) > width {
		values = values[len(values)-width:]
	}
	var b strings.Builder
	for _, v := range values {
		i := 0
		if top > 0 {
			i = v * (len(levels) - 1) / top
		}
		if i < 0 {
			i = 0
		} else if i >= len(levels) {
			i = len(levels) - 1
		}
		b.WriteRune(levels[i])
	}
	return b.String()
}

func (t *ConsoleUI) renderStatus(snap runner.Snapshot) {
	s := snap.Status
	population := snap.Area.Size * snap.Area.Size
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := t.g.View("status"); e == nil {
			v.Clear()
			w, _ := v.Size()
			_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, t.renderProp("Infected", "%v", aurora.Red(s.Counts.Infected)))
			_, _ = fmt.Fprintln(v, t.renderProp("Susceptible", "%v", aurora.Green(s.Counts.Susceptible)))
			_, _ = fmt.Fprintln(v, t.renderProp("Recovered", "%v", aurora.Cyan(s.Counts.Recovered)))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
			_, _ = fmt.Fprintln(v, " "+aurora.Red(sparkline(snap.Series.Infected, population, w-2)).String())
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.r.Options()
		p := t.r.Params()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", p.GridSize, p.GridSize))
			_, _ = fmt.Fprintln(v, t.renderProp("PI / PR / PRI", "%v / %v / %v", p.InfectionProb, p.RecoveryProb, p.ReinfectionProb))
			_, _ = fmt.Fprintln(v, t.renderProp("Infected pop", "%v", p.InfectedFraction))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", t.r.Engine()))
			_, _ = fmt.Fprintln(v, t.renderProp("Seed", "%v", t.r.Seed()))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 34
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("field")
		return nil

	}
	if _, err := t.headerLayout(g, 3, t.title); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus(t.r.Snapshot())
	}

	if v, err := g.SetView("field", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Population"
		v.Frame = true
	}
	t.renderField(t.r.Snapshot().Area)

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.r.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.r.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.r.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.r.Clear()
	return nil
}
