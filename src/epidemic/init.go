package epidemic

import (
	"fmt"
	"math"
	"strings"
)

//InitMode selects the seeding strategy of the initial area
type InitMode string

const (
	InitRandom  InitMode = "random"
	InitCentral InitMode = "central"
)

//Rand is the source of uniform draws in [0, 1)
//*rand.Rand satisfies it
type Rand interface {
	Float64() float64
}

//ParseInitMode returns the InitMode named s (case insensitive)
func ParseInitMode(s string) (InitMode, error) {
	m := InitMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case InitRandom, InitCentral:
		return m, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownInitMode)
}

//Title is the human readable name of the mode
func (m InitMode) Title() string {
	if m == InitCentral {
		return "Central"
	}
	return "Random"
}

//NewArea builds the initial area with the given mode
func NewArea(mode InitMode, size int, infectedFraction float64, rnd Rand) (Area, error) {
	if size <= 0 {
		return Area{}, fmt.Errorf("grid size %d: %w", size, ErrInvalidSize)
	}
	switch mode {
	case InitRandom:
		return UniformRandom(size, infectedFraction, rnd), nil
	case InitCentral:
		return CentralBlock(size, infectedFraction), nil
	}
	return Area{}, fmt.Errorf("%q: %w", mode, ErrUnknownInitMode)
}

//UniformRandom infects every cell independently with probability infectedFraction
//the rest of the cells are susceptible
func UniformRandom(size int, infectedFraction float64, rnd Rand) Area {
	a := createArea(size)
	for y := range a.Cells {
		for x := range a.Cells[y] {
			if rnd.Float64() < infectedFraction {
				a.Cells[y][x] = Infected
			} else {
				a.Cells[y][x] = Susceptible
			}
		}
	}
	return a
}

//CentralBlock infects the square block of side round(size*infectedFraction) in the center of the area
//when the margins can't be equal the bottom/right one gets the extra cell
func CentralBlock(size int, infectedFraction float64) Area {
	a := NewUniformArea(size, Susceptible)
	block := CentralBlockSize(size, infectedFraction)
	lo := (size - block) / 2
	for y := lo; y < lo+block; y++ {
		for x := lo; x < lo+block; x++ {
			a.Cells[y][x] = Infected
		}
	}
	return a
}

//CentralBlockSize is the side of the infected block, halves are rounded to even
func CentralBlockSize(size int, infectedFraction float64) int {
	block := int(math.RoundToEven(float64(size) * infectedFraction))
	if block < 0 {
		return 0
	}
	if block > size {
		return size
	}
	return block
}
