// Package config loads the run configuration from the environment and the command line.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/integrii/flaggy"

	"episim/src/epidemic"
	"episim/src/runner"
)

//out-of-range optional values fall back to the defaults
const (
	MinGridSize  = 9
	DefCellSize  = 8
	DefGridType  = string(epidemic.InitRandom)
	unsetProb    = -1.0
	envVarPrefix = "EPISIM_"
)

var ErrRequired = errors.New("required option is missing")

//Options is the whole configuration of one run
type Options struct {
	InfectProb   float64       `env:"INFECT_PROB"`
	RecoverProb  float64       `env:"RECOVER_PROB"`
	ReinfectProb float64       `env:"RECOV_INFECT_PROB"`
	GridSize     int           `env:"GRID_SIZE"`
	InfectPop    float64       `env:"INFECT_POP"`
	GridType     string        `env:"GRID_TYPE"`
	Seed         int64         `env:"SEED"`
	Engine       string        `env:"ENGINE"`
	Workers      int           `env:"WORKERS"`
	Interval     time.Duration `env:"INTERVAL"`
	MaxSteps     int           `env:"MAX_STEPS"`
	Interactive  bool          `env:"INTERACTIVE"`
	ChartPath    string        `env:"CHART"`
	VideoPath    string        `env:"VIDEO"`
	CSVPath      string        `env:"CSV"`
	CellSize     int           `env:"CELL_SIZE"`
}

//Default returns the options before the environment and the flags are applied
//the infection and the recovery probabilities have no default
func Default() Options {
	return Options{
		InfectProb:   unsetProb,
		RecoverProb:  unsetProb,
		ReinfectProb: epidemic.DefReinfectionProb,
		GridSize:     epidemic.DefGridSize,
		InfectPop:    epidemic.DefInfectedFraction,
		GridType:     DefGridType,
		Engine:       epidemic.DefEngine,
		Workers:      epidemic.DefWorkers,
		Interval:     runner.DefSimulationInterval,
		MaxSteps:     runner.DefMaxSteps,
		CellSize:     DefCellSize,
	}
}

//Load builds the options: defaults, then EPISIM_* environment variables, then the command line args
func Load(name string, args []string) (Options, error) {
	o := Default()
	if err := ParseEnv(&o); err != nil {
		return o, err
	}
	p := flaggy.NewParser(name)
	p.Description = "Runs a disease simulator"
	p.ShowHelpOnUnexpected = true
	o.Register(p)
	if err := p.ParseArgs(args); err != nil {
		return o, fmt.Errorf("parse args: %w", err)
	}
	o.Normalize()
	return o, o.Validate()
}

//ParseEnv loads the options from the EPISIM_* environment variables
func ParseEnv(o *Options) error {
	if err := env.ParseWithOptions(o, env.Options{Prefix: envVarPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

//Register binds the options to the flags of the parser
func (o *Options) Register(p *flaggy.Parser) {
	p.Float64(&o.InfectProb, "", "infect-prob", "Probability of infection per infected neighbour (required)")
	p.Float64(&o.RecoverProb, "", "recover-prob", "Probability of recovery (required)")
	p.Float64(&o.ReinfectProb, "", "recov-infect-prob", "Probability of reinfection of a recovered cell per infected neighbour")
	p.Int(&o.GridSize, "", "grid-size", "Size of the grid, must be larger than 8")
	p.Float64(&o.InfectPop, "", "infect-pop", "Proportion of the initially infected population")
	p.String(&o.GridType, "", "grid-type", "Initial grid ["+string(epidemic.InitRandom)+"|"+string(epidemic.InitCentral)+"]")
	p.Int64(&o.Seed, "", "seed", "Seed of the random source, 0 draws a fresh one")
	p.String(&o.Engine, "e", "engine", "Engine to use ["+strings.Join(epidemic.Engines(), "|")+"]")
	p.Int(&o.Workers, "w", "workers", "Workers of the multithreaded engine")
	p.Duration(&o.Interval, "i", "interval", "Simulation speed (interval between the steps), for example 50ms")
	p.Int(&o.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 runs until no infected cell is left")
	p.Bool(&o.Interactive, "n", "interactive", "Start interactive mode")
	p.String(&o.ChartPath, "", "chart", "Write the population chart PNG to this file")
	p.String(&o.VideoPath, "", "video", "Write the MJPEG AVI animation to this file")
	p.String(&o.CSVPath, "", "csv", "Write the population series CSV to this file")
	p.Int(&o.CellSize, "", "cell-size", "Pixels per cell in the video")
}

//Normalize replaces the out-of-range optional values with their defaults
func (o *Options) Normalize() {
	if o.ReinfectProb < 0 || o.ReinfectProb > 1 {
		o.ReinfectProb = epidemic.DefReinfectionProb
	}
	if o.GridSize < MinGridSize {
		o.GridSize = epidemic.DefGridSize
	}
	if o.InfectPop < 0 || o.InfectPop > 1 {
		o.InfectPop = epidemic.DefInfectedFraction
	}
	if mode, err := epidemic.ParseInitMode(o.GridType); err == nil {
		o.GridType = string(mode)
	} else {
		o.GridType = DefGridType
	}
	if o.Workers < 1 {
		o.Workers = epidemic.DefWorkers
	}
	if o.MaxSteps < 0 {
		o.MaxSteps = runner.DefMaxSteps
	}
	if o.CellSize < 1 {
		o.CellSize = DefCellSize
	}
}

//Validate checks the mandatory options
func (o Options) Validate() error {
	if o.InfectProb == unsetProb {
		return fmt.Errorf("--infect-prob: %w", ErrRequired)
	}
	if o.RecoverProb == unsetProb {
		return fmt.Errorf("--recover-prob: %w", ErrRequired)
	}
	if err := o.Params().Validate(); err != nil {
		return err
	}
	for _, e := range epidemic.Engines() {
		if e == o.Engine {
			return nil
		}
	}
	return fmt.Errorf("%q: %w", o.Engine, epidemic.ErrUnknownEngine)
}

//Params returns the model parameters
func (o Options) Params() epidemic.Params {
	return epidemic.Params{
		InfectionProb:    o.InfectProb,
		RecoveryProb:     o.RecoverProb,
		ReinfectionProb:  o.ReinfectProb,
		InfectedFraction: o.InfectPop,
		GridSize:         o.GridSize,
	}
}

//InitMode returns the initial grid mode
func (o Options) InitMode() epidemic.InitMode {
	return epidemic.InitMode(o.GridType)
}

//SimulationOptions returns the options of the simulation engine
func (o Options) SimulationOptions() *epidemic.Options {
	return &epidemic.Options{Seed: o.Seed, Engine: o.Engine, Workers: o.Workers}
}

//RunnerOptions returns the options of the driver
func (o Options) RunnerOptions() *runner.Options {
	return &runner.Options{Interval: o.Interval, MaxSteps: o.MaxSteps}
}

//Title is the one line description of the run
func (o Options) Title() string {
	return fmt.Sprintf("%s Infection Sim: Pop=%d IPOP=%v PI=%v PR=%v PRI=%v",
		o.InitMode().Title(), o.GridSize*o.GridSize, o.InfectPop, o.InfectProb, o.RecoverProb, o.ReinfectProb)
}
