package epidemic

import (
	"fmt"
	"math"
)

//neighborOffsets is the Moore neighborhood without the cell itself
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

//CountInfectedNeighbors counts the infected cells among the 8 neighbors of x, y
//cells outside the area are never infected, there is no wraparound
//it panics if x, y itself lies outside the area
func CountInfectedNeighbors(a Area, x int, y int) int {
	if !a.Contains(x, y) {
		panic(fmt.Sprintf("epidemic: cell %d,%d is outside the %dx%d area", x, y, a.Size, a.Size))
	}
	infected := 0
	for _, o := range neighborOffsets {
		if a.stateAt(x+o[0], y+o[1]) == Infected {
			infected++
		}
	}
	return infected
}

//boundary is returned for the coordinates outside the area, it is never equal to Infected
const boundary State = 0xff

func (a Area) stateAt(x int, y int) State {
	if !a.Contains(x, y) {
		return boundary
	}
	return a.Cells[y][x]
}

//ExposureProbability is the chance that at least one of k independent exposures,
//each succeeding with probability q, succeeds
func ExposureProbability(q float64, k int) float64 {
	if k <= 0 {
		return 0
	}
	return 1 - math.Pow(1-q, float64(k))
}
