package epidemic

import (
	"math/rand"
	"sync"
)

/*
	Engine with multithreaded computation algorithm
	the area is splitted into the row bands each of which is computed by individual goroutine
	every worker reads the frozen current area and writes its own rows of the back buffer only
*/

const DefMinRowsPerWorker = 3 //minimum rows for one worker

//workArea describes the rows y1..y2 (inclusive) of the worker
//and the random stream the worker draws from
type workArea struct {
	y1  int
	y2  int
	rnd *rand.Rand
}

//splitRows partitions size rows among at most workers bands
func splitRows(size int, workers int) []workArea {
	if workers < 1 {
		workers = 1
	}
	linesPerWorker := size / workers
	if linesPerWorker < DefMinRowsPerWorker {
		linesPerWorker = DefMinRowsPerWorker
	} else if linesPerWorker*workers < size {
		linesPerWorker++
	}
	was := make([]workArea, 0, workers)
	for y1 := 0; y1 < size; y1 += linesPerWorker {
		y2 := y1 + linesPerWorker - 1
		if y2 > size-1 {
			y2 = size - 1
		}
		was = append(was, workArea{y1: y1, y2: y2, rnd: rand.New(rand.NewSource(1))})
	}
	return was
}

func newMultithreadedEngine(s *Simulation) func() {
	back := createArea(s.params.GridSize)
	workAreas := splitRows(s.params.GridSize, s.options.Workers)
	return func() {
		//every step reseeds the workers from the simulation source
		//so the draws are never reused across steps and the run stays reproducible
		for i := range workAreas {
			workAreas[i].rnd.Seed(s.rnd.Int63())
		}
		var waitGroup sync.WaitGroup
		for i := range workAreas {
			wa := &workAreas[i]
			waitGroup.Add(1)
			go func() {
				defer waitGroup.Done()
				stepRows(s.area, back, s.params, wa.rnd, wa.y1, wa.y2)
			}()
		}
		waitGroup.Wait()
		s.area, back = back, s.area
	}
}
