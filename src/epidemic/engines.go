package epidemic

//newBaseEngine is the simplest engine: it allocates the new area with full size on each call
//and replaces the current one with it
func newBaseEngine(s *Simulation) func() {
	return func() {
		a := createArea(s.area.Size)
		Step(s.area, a, s.params, s.rnd)
		s.area = a
	}
}

//newBufferedEngine uses two buffers of the same size
//the next generation is calculated to the back buffer, then the buffers are swapped
func newBufferedEngine(s *Simulation) func() {
	back := createArea(s.params.GridSize)
	return func() {
		Step(s.area, back, s.params, s.rnd)
		s.area, back = back, s.area
	}
}
