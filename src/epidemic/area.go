package epidemic

// State is the health state of a single cell
type State uint8

const (
	Infected    State = 0
	Susceptible State = 1
	Recovered   State = 2
)

var stateNames = [...]string{"infected", "susceptible", "recovered"}

func (s State) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return stateNames[s]
}

//Valid reports whether s is one of the three known states
func (s State) Valid() bool {
	return s <= Recovered
}

//Area is the square field where the cells are living
//Cells[y][x] addresses the cell in row y, column x
type Area struct {
	Size  int
	Cells [][]State
}

//createArea allocates the new area filled with the zero state (Infected)
//all rows share one backing slice
func createArea(size int) Area {
	area := Area{Size: size, Cells: make([][]State, size)}
	b := make([]State, size*size)
	for i := range area.Cells {
		start := size * i
		area.Cells[i] = b[start : start+size : start+size]
	}
	return area
}

//NewUniformArea creates the area with every cell set to s
func NewUniformArea(size int, s State) Area {
	a := createArea(size)
	a.Fill(s)
	return a
}

//Fill sets every cell to s
func (a Area) Fill(s State) {
	for y := range a.Cells {
		for x := range a.Cells[y] {
			a.Cells[y][x] = s
		}
	}
}

//Clone returns the independent copy of the area
func (a Area) Clone() Area {
	c := createArea(a.Size)
	c.CopyFrom(a)
	return c
}

//CopyFrom copies the cells of src into a, both areas must have the same size
func (a Area) CopyFrom(src Area) {
	for y := range a.Cells {
		copy(a.Cells[y], src.Cells[y])
	}
}

//Walk walks the entire area and calls the cb function for each cell
func (a Area) Walk(cb func(x int, y int, s State)) {
	for y := range a.Cells {
		for x := range a.Cells[y] {
			cb(x, y, a.Cells[y][x])
		}
	}
}

//Contains reports whether x, y lies inside the area
func (a Area) Contains(x int, y int) bool {
	return x >= 0 && y >= 0 && x < a.Size && y < a.Size
}

//Equal reports whether both areas have the same size and the same cells
func (a Area) Equal(b Area) bool {
	if a.Size != b.Size {
		return false
	}
	for y := range a.Cells {
		for x := range a.Cells[y] {
			if a.Cells[y][x] != b.Cells[y][x] {
				return false
			}
		}
	}
	return true
}

//wellFormed reports whether the area has Size rows of Size valid cells
func (a Area) wellFormed() bool {
	if len(a.Cells) != a.Size {
		return false
	}
	for _, row := range a.Cells {
		if len(row) != a.Size {
			return false
		}
		for _, s := range row {
			if !s.Valid() {
				return false
			}
		}
	}
	return true
}
