package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"episim/src/epidemic"
)

func TestLoadDefaults(t *testing.T) {
	o, err := Load("episim", []string{"--infect-prob", "0.2", "--recover-prob", "0.1"})
	if err != nil {
		t.Fatal(err)
	}
	want := epidemic.Params{
		InfectionProb:    0.2,
		RecoveryProb:     0.1,
		ReinfectionProb:  0,
		InfectedFraction: 0.1,
		GridSize:         50,
	}
	if o.Params() != want {
		t.Fatalf("got %+v, want %+v", o.Params(), want)
	}
	if o.InitMode() != epidemic.InitRandom || o.Engine != epidemic.DefEngine {
		t.Fatalf("unexpected mode %q engine %q", o.InitMode(), o.Engine)
	}
}

func TestLoadEnvThenFlags(t *testing.T) {
	t.Setenv("EPISIM_INFECT_PROB", "0.5")
	t.Setenv("EPISIM_RECOVER_PROB", "0.25")
	t.Setenv("EPISIM_GRID_SIZE", "30")
	t.Setenv("EPISIM_INTERVAL", "10ms")
	t.Setenv("EPISIM_ENGINE", "multithreaded")

	o, err := Load("episim", []string{"--grid-size", "40", "--grid-type", "central"})
	if err != nil {
		t.Fatal(err)
	}
	if o.InfectProb != 0.5 || o.RecoverProb != 0.25 {
		t.Fatalf("env probabilities not applied: %+v", o)
	}
	if o.GridSize != 40 {
		t.Fatalf("flag must override env, got grid size %d", o.GridSize)
	}
	if o.Interval != 10*time.Millisecond || o.Engine != "multithreaded" {
		t.Fatalf("unexpected interval %v engine %q", o.Interval, o.Engine)
	}
	if o.InitMode() != epidemic.InitCentral {
		t.Fatalf("unexpected mode %q", o.InitMode())
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("EPISIM_GRID_SIZE", "not-an-int")
	o := Default()
	err := ParseEnv(&o)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	o := Default()
	o.ReinfectProb = 1.5
	o.GridSize = 8
	o.InfectPop = -0.2
	o.GridType = "spiral"
	o.Workers = 0
	o.CellSize = -3
	o.Normalize()
	if o.ReinfectProb != 0 || o.GridSize != 50 || o.InfectPop != 0.1 || o.GridType != "random" {
		t.Fatalf("out-of-range values not replaced: %+v", o)
	}
	if o.Workers != epidemic.DefWorkers || o.CellSize != DefCellSize {
		t.Fatalf("unexpected workers %d cell size %d", o.Workers, o.CellSize)
	}

	o = Default()
	o.GridSize = 9
	o.GridType = "Central"
	o.Normalize()
	if o.GridSize != 9 || o.GridType != "central" {
		t.Fatalf("valid values changed: %+v", o)
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.InfectProb, valid.RecoverProb = 0.1, 0.2
	cases := []struct {
		name string
		mut  func(o *Options)
		want error
	}{
		{"missing infection", func(o *Options) { o.InfectProb = unsetProb }, ErrRequired},
		{"missing recovery", func(o *Options) { o.RecoverProb = unsetProb }, ErrRequired},
		{"infection out of range", func(o *Options) { o.InfectProb = 1.1 }, epidemic.ErrInvalidProbability},
		{"unknown engine", func(o *Options) { o.Engine = "gpu" }, epidemic.ErrUnknownEngine},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid options: %v", err)
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := valid
			c.mut(&o)
			if err := o.Validate(); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	o := Default()
	o.InfectProb, o.RecoverProb, o.ReinfectProb = 0.3, 0.1, 0.05
	o.GridType = "central"
	want := "Central Infection Sim: Pop=2500 IPOP=0.1 PI=0.3 PR=0.1 PRI=0.05"
	if got := o.Title(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
