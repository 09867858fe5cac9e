package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/logrusorgru/aurora"

	"episim/src/epidemic"
	"episim/src/runner"
)

func TestSparkline(t *testing.T) {
	cases := []struct {
		values []int
		top    int
		width  int
		want   string
	}{
		{[]int{0, 50, 100}, 100, 10, "▁▄█"},
		{[]int{0, 7, 14, 21, 28}, 28, 3, "▄▆█"},
		{nil, 100, 10, ""},
		{[]int{5}, 0, 10, "▁"},
	}
	for _, c := range cases {
		if got := sparkline(c.values, c.top, c.width); got != c.want {
			t.Errorf("sparkline(%v, %d, %d) = %q, want %q", c.values, c.top, c.width, got, c.want)
		}
	}
}

func TestRenderArea(t *testing.T) {
	fillers := cellFillers(aurora.NewAurora(false))
	a := epidemic.NewUniformArea(3, epidemic.Susceptible)
	a.Cells[1][1] = epidemic.Infected
	a.Cells[2][0] = epidemic.Recovered

	got := renderArea(a, fillers, 10, 10)
	want := "██████\n██████\n░░████"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}

	cropped := renderArea(a, fillers, 4, 2)
	lines := strings.Split(cropped, "\n")
	if len(lines) != 2 || lines[0] != "████" || !strings.Contains(lines[1], "larger than the viewing area") {
		t.Fatalf("unexpected cropped output %q", cropped)
	}
}

func TestConsoleOut(t *testing.T) {
	p := epidemic.Params{InfectionProb: 0.4, RecoveryProb: 0.05, InfectedFraction: 0.2, GridSize: 20}
	sim, err := epidemic.New(p, epidemic.InitRandom, &epidemic.Options{Seed: 8, Engine: epidemic.DefEngine})
	if err != nil {
		t.Fatal(err)
	}
	stateCh := make(chan runner.Status, 10)
	r := runner.New(sim, &runner.Options{MaxSteps: 20}, stateCh)

	var out bytes.Buffer
	c := NewConsoleOutTo(&out, "Random Infection Sim", false)
	r.RegisterViewer(c)
	c.Start()
	r.Run()
	for st := range stateCh {
		if st.RunningMode == runner.RunningStateFinished {
			break
		}
	}
	r.Close()
	<-r.Done()

	text := out.String()
	for _, want := range []string{
		"Random Infection Sim",
		"Dimension: 20 x 20",
		"Max iterations: 20 steps",
		"Seed: 8",
		"Iterations done: 10",
		"Finished:",
		"Last iteration: 20",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output misses %q:\n%s", want, text)
		}
	}
}
