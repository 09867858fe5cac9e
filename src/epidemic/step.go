package epidemic

//NextState calculates the next state of the cell x, y of the area a
//u is the uniform draw in [0, 1) which belongs to this cell in this step
func NextState(a Area, x int, y int, p Params, u float64) State {
	switch a.Cells[y][x] {
	case Infected:
		if u < p.RecoveryProb {
			return Recovered
		}
		return Infected
	case Recovered:
		if u < ExposureProbability(p.ReinfectionProb, CountInfectedNeighbors(a, x, y)) {
			return Infected
		}
		return Recovered
	default:
		if u < ExposureProbability(p.InfectionProb, CountInfectedNeighbors(a, x, y)) {
			return Infected
		}
		return Susceptible
	}
}

//Step calculates the whole next generation of src into dst
//dst must have the same size as src and must not share the cells with it
//every cell reads src only, so the update is synchronous
func Step(src Area, dst Area, p Params, rnd Rand) {
	stepRows(src, dst, p, rnd, 0, src.Size-1)
}

//stepRows calculates the rows y1..y2 (inclusive) of the next generation
//one draw is taken from rnd for every cell in row-major order
func stepRows(src Area, dst Area, p Params, rnd Rand, y1 int, y2 int) {
	for y := y1; y <= y2; y++ {
		for x := range src.Cells[y] {
			dst.Cells[y][x] = NextState(src, x, y, p, rnd.Float64())
		}
	}
}
