package epidemic

import "testing"

func step(t *testing.T, src Area, p Params, rnd Rand) Area {
	t.Helper()
	dst := createArea(src.Size)
	Step(src, dst, p, rnd)
	return dst
}

func TestStepAllSusceptibleIsStable(t *testing.T) {
	src := NewUniformArea(12, Susceptible)
	for _, pi := range []float64{0, 0.5, 1} {
		got := step(t, src, Params{InfectionProb: pi, RecoveryProb: 0.5, ReinfectionProb: 1}, newRand(3))
		assertArea(t, got, src)
	}
}

func TestStepSpreadsToAllNeighbors(t *testing.T) {
	src := NewUniformArea(10, Susceptible)
	src.Cells[5][5] = Infected
	got := step(t, src, Params{InfectionProb: 1, RecoveryProb: 0}, constRand(0.999))

	want := NewUniformArea(10, Susceptible)
	for y := 4; y <= 6; y++ {
		for x := 4; x <= 6; x++ {
			want.Cells[y][x] = Infected
		}
	}
	assertArea(t, got, want)
}

func TestStepIsSynchronous(t *testing.T) {
	src := parseArea(t,
		"ISSSS",
		"SSSSS",
		"SSSSS",
		"SSSSS",
		"SSSSS",
	)
	got := step(t, src, Params{InfectionProb: 1}, constRand(0))
	want := parseArea(t,
		"IISSS",
		"IISSS",
		"SSSSS",
		"SSSSS",
		"SSSSS",
	)
	assertArea(t, got, want)
	if src.Cells[0][1] != Susceptible {
		t.Fatal("step must not modify the source area")
	}
}

func TestStepFullRecovery(t *testing.T) {
	p := Params{InfectionProb: 0, RecoveryProb: 1}
	src := parseArea(t,
		"IISS",
		"SIIS",
		"SSSS",
		"ISSI",
	)
	rnd := newRand(11)
	got := step(t, src, p, rnd)
	want := parseArea(t,
		"RRSS",
		"SRRS",
		"SSSS",
		"RSSR",
	)
	assertArea(t, got, want)

	//nothing is infected anymore, so the area is stable
	again := step(t, got, p, rnd)
	assertArea(t, again, want)
}

func TestNextStateBranches(t *testing.T) {
	a := parseArea(t,
		"ISI",
		"SRS",
		"SSS",
	)
	p := Params{InfectionProb: 0.5, RecoveryProb: 0.3, ReinfectionProb: 0.5}
	cases := []struct {
		name string
		x, y int
		u    float64
		want State
	}{
		{"infected recovers below PR", 0, 0, 0.29, Recovered},
		{"infected stays at PR", 0, 0, 0.3, Infected},
		//two infected neighbors: 1-(0.5)^2 = 0.75
		{"recovered reinfected below p", 1, 1, 0.7, Infected},
		{"recovered stays above p", 1, 1, 0.8, Recovered},
		{"susceptible infected below p", 1, 0, 0.74, Infected},
		{"susceptible stays above p", 1, 0, 0.76, Susceptible},
		{"susceptible without infected neighbors", 1, 2, 0, Susceptible},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NextState(a, c.x, c.y, p, c.u); got != c.want {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestNextStateNoReinfectionByDefault(t *testing.T) {
	a := parseArea(t,
		"III",
		"IRI",
		"III",
	)
	p := DefaultParams
	p.InfectionProb = 1
	if got := NextState(a, 1, 1, p, 0); got != Recovered {
		t.Fatalf("recovered cell with PRI=0 got %v", got)
	}
}

func TestStepDrawsOncePerCell(t *testing.T) {
	src := parseArea(t,
		"ISR",
		"SRI",
		"RIS",
	)
	rnd := &seqRand{draws: make([]float64, 9)}
	for i := range rnd.draws {
		rnd.draws[i] = 0.99
	}
	step(t, src, Params{InfectionProb: 0.1, RecoveryProb: 0.1, ReinfectionProb: 0.1}, rnd)
	if rnd.i != 9 {
		t.Fatalf("expected 9 draws, got %d", rnd.i)
	}
}
