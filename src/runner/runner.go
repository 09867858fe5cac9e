package runner

import (
	"sync"
	"time"

	"episim/src/epidemic"
)

//Options represents the Runner's configurable options
type Options struct {
	Interval time.Duration //pause between the steps in the run mode
	MaxSteps int           //0 means no limit
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	Counts        epidemic.Counts
	IterationTime time.Duration
}

//Snapshot is the consistent view of the simulation for the viewers
type Snapshot struct {
	Area   epidemic.Area
	Series epidemic.Series
	Status Status
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the runner
type Viewer interface {
	Refresh()
	Register(r *Runner)
	Start()
}

//RunningState is the runner mode at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 50
	DefMaxSteps           = 0
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

var runningStateNames = map[RunningState]string{
	RunningStateManual:   "waiting",
	RunningStateStep:     "do the step",
	RunningStateRun:      "running",
	RunningStateFinished: "finished",
}

func (rs RunningState) String() string {
	return runningStateNames[rs]
}

var DefaultOptions = Options{
	Interval: DefSimulationInterval,
	MaxSteps: DefMaxSteps,
}

//Runner drives the simulation: it decides when to tick and when to stop
//all commands are executed one by one by the main loop goroutine
type Runner struct {
	options Options
	state   struct {
		Status
		runID int //bumped on every run and stop, a run loop exits when its id is stale
		sync.Mutex
	}
	sim struct {
		*epidemic.Simulation
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan bool
	done      chan struct{}
}

//New creates the Runner for the simulation and starts its main loop
//stateCh is optional, when set the caller must drain it
func New(sim *epidemic.Simulation, o *Options, stateCh chan Status) *Runner {
	if o == nil {
		o = &DefaultOptions
	}
	r := &Runner{
		options:   *o,
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
	}
	r.sim.Simulation = sim
	r.state.Counts = sim.Counts()
	r.state.IterationNum = sim.Iteration()
	go r.mainLoop()
	return r
}

//RegisterViewer registers the viewer - the runner will call the viewer when the state is changed
func (r *Runner) RegisterViewer(v Viewer) {
	r.views = append(r.views, v)
	v.Register(r)
}

//StateCh returns the channel with the status updates
func (r *Runner) StateCh() chan Status {
	return r.stateCh
}

//Status returns current status
func (r *Runner) Status() Status {
	r.state.Lock()
	defer r.state.Unlock()
	return r.state.Status
}

//Options returns the runner configuration
func (r *Runner) Options() Options {
	return r.options
}

//Params returns the model parameters of the simulation
func (r *Runner) Params() epidemic.Params {
	return r.sim.Params()
}

//Seed returns the seed the simulation was started with
func (r *Runner) Seed() int64 {
	return r.sim.Seed()
}

//Engine returns the name of the simulation step engine
func (r *Runner) Engine() string {
	return r.sim.Engine()
}

//Snapshot returns the copy of the area and series together with the status
func (r *Runner) Snapshot() Snapshot {
	r.sim.Lock()
	defer r.sim.Unlock()
	return Snapshot{Area: r.sim.Area(), Series: r.sim.Series(), Status: r.Status()}
}

//Run starts the simulation, returns immediately
func (r *Runner) Run() {
	r.command(r.run)
}

//Stop stops the simulation, returns immediately
//the Status will be written to the stateCh on finish
func (r *Runner) Stop() {
	r.command(r.stop)
}

//Step does one simulation step, returns immediately
//the Status will be written to the stateCh on start and on finish
func (r *Runner) Step() {
	r.command(r.step)
}

//Clear settles the initial area again and resets all counters, returns immediately
//the Status will be written to the stateCh on finish
func (r *Runner) Clear() {
	r.command(r.clear)
}

//Close stops the main loop, returns immediately
func (r *Runner) Close() {
	select {
	case r.closeCh <- true:
	default:
	}
}

//Done is closed when the main loop has stopped
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) command(cmd func()) {
	select {
	case r.controlCh <- cmd:
	case <-r.done:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (r *Runner) mainLoop() {
	defer close(r.done)
	for {
		select {
		case cmd := <-r.controlCh:
			cmd()
		case <-r.closeCh:
			return
		}
	}
}

func (r *Runner) mode() RunningState {
	r.state.Lock()
	defer r.state.Unlock()
	return r.state.RunningMode
}

//switchRunningState switch the state of the runner to RunningState
//also writes the new state to the stateCh to signal upper control software
func (r *Runner) switchRunningState(to RunningState) {
	r.state.Lock()
	r.state.RunningMode = to
	st := r.state.Status
	r.state.Unlock()
	if r.stateCh != nil {
		r.stateCh <- st
	}
}

//run starts the running cycle
//it will stop on Stop() calling or when the boundary conditions are reached
func (r *Runner) run() {
	if r.mode() == RunningStateRun {
		return
	}
	r.state.Lock()
	r.state.runID++
	id := r.state.runID
	r.state.Unlock()
	r.switchRunningState(RunningStateRun)
	go func() {
		done := make(chan bool)
		for r.running(id) {
			select {
			case r.controlCh <- func() {
				//Stop may have been executed while this step was queued
				if r.running(id) {
					r.step()
				}
				done <- true
			}:
			case <-r.done:
				return
			}
			select {
			case <-done:
			case <-r.done:
				return
			}
			if r.options.Interval > 0 {
				time.Sleep(r.options.Interval)
			}
		}
	}()
}

//running reports whether the run loop id is still the current one
func (r *Runner) running(id int) bool {
	r.state.Lock()
	defer r.state.Unlock()
	return r.state.RunningMode == RunningStateRun && r.state.runID == id
}

//stop stops the running cycle
func (r *Runner) stop() {
	if r.mode() == RunningStateRun {
		r.state.Lock()
		r.state.runID++
		r.state.Unlock()
		r.switchRunningState(RunningStateManual)
	}
}

//step does one tick of the simulation
//the runner is finished when MaxSteps is reached or no infected cell is left
func (r *Runner) step() {
	finished := false
	rm := r.mode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	defer func() {
		if finished {
			r.switchRunningState(RunningStateFinished)
		} else {
			r.switchRunningState(rm)
		}
		r.refreshView()
	}()

	maxSteps := r.options.MaxSteps
	if maxSteps != 0 && r.Status().IterationNum >= maxSteps {
		finished = true
		return
	}
	r.switchRunningState(RunningStateStep)

	start := time.Now()
	r.sim.Lock()
	counts := r.sim.Tick()
	iteration := r.sim.Iteration()
	r.state.Lock()
	r.state.IterationNum = iteration
	r.state.Counts = counts
	r.state.IterationTime = time.Since(start)
	r.state.Unlock()
	r.sim.Unlock()

	if counts.Infected == 0 || (maxSteps != 0 && iteration >= maxSteps) {
		finished = true
	}
}

//clear settles the initial area again, resets all counters
func (r *Runner) clear() {
	r.sim.Lock()
	if err := r.sim.Reset(); err != nil {
		r.sim.Unlock()
		//Reset fails only on the input New has already validated
		panic(err)
	}
	r.state.Lock()
	r.state.IterationNum = 0
	r.state.Counts = r.sim.Counts()
	r.state.IterationTime = 0
	r.state.Unlock()
	r.sim.Unlock()
	r.switchRunningState(RunningStateManual)
	r.refreshView()
}

//refreshView calls Refresh event for all registered views
func (r *Runner) refreshView() {
	for _, v := range r.views {
		v.Refresh()
	}
}
