package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"episim/src/config"
	"episim/src/epidemic"
	"episim/src/export"
	"episim/src/runner"
	"episim/src/view"
)

func main() {
	if err := run(context.Background(), os.Args[0], os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("episim: %v", err)
	}
}

func run(ctx context.Context, name string, args []string, stdout io.Writer) error {
	o, err := config.Load(name, args)
	if err != nil {
		return err
	}

	sim, err := epidemic.New(o.Params(), o.InitMode(), o.SimulationOptions())
	if err != nil {
		return err
	}

	var stateCh chan runner.Status
	if !o.Interactive {
		stateCh = make(chan runner.Status, 10) //the buffered channel to getting the runner status
	}
	r := runner.New(sim, o.RunnerOptions(), stateCh)

	var video *export.VideoRecorder
	if o.VideoPath != "" {
		if video, err = export.NewVideoRecorder(o.VideoPath, o.GridSize, o.CellSize, o.Title()); err != nil {
			r.Close()
			return err
		}
		r.RegisterViewer(video)
		video.Start()
	}

	if o.Interactive {
		v := view.NewViewTerminal(o.Title())
		r.RegisterViewer(v)
		v.Start()
	} else {
		out := view.NewConsoleOut(o.Title())
		if stdout != os.Stdout {
			out = view.NewConsoleOutTo(stdout, o.Title(), false)
		}
		runToEnd(ctx, r, out)
	}
	r.Close()
	<-r.Done()

	if video != nil {
		if err := video.Close(); err != nil {
			return err
		}
		log.Printf("video saved to %s (%d frames)", o.VideoPath, video.Frames())
	}
	return writeSeries(o, r.Snapshot().Series)
}

//runToEnd runs the simulation until it is finished or interrupted
func runToEnd(ctx context.Context, r *runner.Runner, out *view.ConsoleOut) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	stateCh := r.StateCh()
	r.RegisterViewer(out)
	out.Start()
	r.Run()
	for {
		select {
		case st := <-stateCh:
			if st.RunningMode == runner.RunningStateFinished {
				return
			}
		case <-ctx.Done():
			//keep the runner unblocked until its main loop has stopped
			go drainStatus(r)
			r.Stop()
			return
		}
	}
}

//drainStatus discards the status updates until the runner is closed
func drainStatus(r *runner.Runner) {
	stateCh := r.StateCh()
	for {
		select {
		case <-stateCh:
		case <-r.Done():
			return
		}
	}
}

func writeSeries(o config.Options, s epidemic.Series) error {
	if o.CSVPath != "" {
		if err := writeFile(o.CSVPath, func(w io.Writer) error { return export.WriteCSV(w, s) }); err != nil {
			return err
		}
	}
	if o.ChartPath != "" && s.Len() > 0 {
		population := o.GridSize * o.GridSize
		if err := writeFile(o.ChartPath, func(w io.Writer) error { return export.PopulationChart(w, s, population, 1200, 400) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err = write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
