package epidemic

import (
	"fmt"
	"math/rand"
	"sort"
)

//Options represents the Simulation's configurable options
type Options struct {
	Seed    int64  //seed of the random source, 0 draws a fresh one
	Engine  string //name of the step engine
	Workers int    //workers of the multithreaded engine
	Area    *Area  //initial area, overrides the init mode when set
}

//default options
const (
	DefEngine  = "buffered"
	DefWorkers = 4
)

var DefaultOptions = Options{
	Engine:  DefEngine,
	Workers: DefWorkers,
}

//engines constructs the nextIteration func of the named engine
var engines = map[string]func(s *Simulation) func(){
	"base":          newBaseEngine,
	"buffered":      newBufferedEngine,
	"multithreaded": newMultithreadedEngine,
}

//Engines returns the sorted names of the known step engines
func Engines() []string {
	names := make([]string, 0, len(engines))
	for k := range engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//Simulation owns the live area and the population series
//it is not safe for concurrent use, the driver serializes the calls
type Simulation struct {
	params    Params
	mode      InitMode
	options   Options
	seed      int64
	rnd       *rand.Rand
	area      Area
	series    Series
	iteration int

	//nextIteration replaces s.area with the next generation
	nextIteration func()
}

//New creates the Simulation and settles the initial area
func New(p Params, mode InitMode, o *Options) (*Simulation, error) {
	if o == nil {
		o = &DefaultOptions
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if o.Area == nil {
		var err error
		if mode, err = ParseInitMode(string(mode)); err != nil {
			return nil, err
		}
	} else if o.Area.Size != p.GridSize || !o.Area.wellFormed() {
		return nil, fmt.Errorf("initial area %dx%d, params want %d: %w", o.Area.Size, o.Area.Size, p.GridSize, ErrInvalidSize)
	}
	newEngine, ok := engines[o.Engine]
	if !ok {
		return nil, fmt.Errorf("%q: %w", o.Engine, ErrUnknownEngine)
	}

	seed := o.Seed
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, err
		}
	}

	s := &Simulation{
		params:  p,
		mode:    mode,
		options: *o,
		seed:    seed,
		rnd:     rand.New(rand.NewSource(seed)),
	}
	if o.Area != nil {
		initial := o.Area.Clone()
		s.options.Area = &initial
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	s.nextIteration = newEngine(s)
	return s, nil
}

//Reset settles the initial area again and clears the series
//the random source continues, so a random area differs from the previous one
func (s *Simulation) Reset() error {
	if s.options.Area != nil {
		s.area = s.options.Area.Clone()
	} else {
		a, err := NewArea(s.mode, s.params.GridSize, s.params.InfectedFraction, s.rnd)
		if err != nil {
			return err
		}
		s.area = a
	}
	s.series = Series{}
	s.iteration = 0
	return nil
}

//Tick does one simulation step and records the population of the new area
func (s *Simulation) Tick() Counts {
	s.nextIteration()
	s.iteration++
	return s.series.Record(s.area)
}

//Area returns the copy of the current area
func (s *Simulation) Area() Area {
	return s.area.Clone()
}

//Series returns the copy of the population series
func (s *Simulation) Series() Series {
	return s.series.Clone()
}

//Counts returns the population of the current area
func (s *Simulation) Counts() Counts {
	if c, ok := s.series.Last(); ok {
		return c
	}
	return Tally(s.area)
}

//Extinct reports whether no infected cell is left, the area can't change anymore then
func (s *Simulation) Extinct() bool {
	return s.Counts().Infected == 0
}

func (s *Simulation) Iteration() int {
	return s.iteration
}

func (s *Simulation) Params() Params {
	return s.params
}

//Seed is the seed of the random source, use it to reproduce the run
func (s *Simulation) Seed() int64 {
	return s.seed
}

func (s *Simulation) Engine() string {
	return s.options.Engine
}
