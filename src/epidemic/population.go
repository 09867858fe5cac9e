package epidemic

//Counts is the number of cells in each state at one moment
type Counts struct {
	Recovered   int
	Susceptible int
	Infected    int
}

//Total is the number of counted cells
func (c Counts) Total() int {
	return c.Recovered + c.Susceptible + c.Infected
}

//Tally counts the cells of each state in one pass
func Tally(a Area) (c Counts) {
	a.Walk(func(x int, y int, s State) {
		switch s {
		case Infected:
			c.Infected++
		case Susceptible:
			c.Susceptible++
		case Recovered:
			c.Recovered++
		}
	})
	return
}

//Series holds the population counts of every completed step, index is the step number
type Series struct {
	Recovered   []int
	Susceptible []int
	Infected    []int
}

//Record appends the counts of the area to the series
func (s *Series) Record(a Area) Counts {
	c := Tally(a)
	s.Append(c)
	return c
}

//Append appends already calculated counts
func (s *Series) Append(c Counts) {
	s.Recovered = append(s.Recovered, c.Recovered)
	s.Susceptible = append(s.Susceptible, c.Susceptible)
	s.Infected = append(s.Infected, c.Infected)
}

//Len is the number of recorded steps
func (s Series) Len() int {
	return len(s.Infected)
}

//At returns the counts recorded for step i
func (s Series) At(i int) Counts {
	return Counts{Recovered: s.Recovered[i], Susceptible: s.Susceptible[i], Infected: s.Infected[i]}
}

//Last returns the latest counts, ok is false for the empty series
func (s Series) Last() (c Counts, ok bool) {
	if s.Len() == 0 {
		return Counts{}, false
	}
	return s.At(s.Len() - 1), true
}

//Clone returns the independent copy of the series
func (s Series) Clone() Series {
	return Series{
		Recovered:   append([]int(nil), s.Recovered...),
		Susceptible: append([]int(nil), s.Susceptible...),
		Infected:    append([]int(nil), s.Infected...),
	}
}
