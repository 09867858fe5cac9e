package epidemic

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidSize        = errors.New("grid size must be positive")
	ErrInvalidProbability = errors.New("probability must lie in [0, 1]")
	ErrUnknownInitMode    = errors.New("unknown init mode")
	ErrUnknownEngine      = errors.New("unknown engine")
)

//default model parameters
const (
	DefReinfectionProb  = 0.0
	DefInfectedFraction = 0.1
	DefGridSize         = 50
)

//Params are the immutable model parameters of one simulation run
type Params struct {
	InfectionProb    float64 //PI, per infected neighbor
	RecoveryProb     float64 //PR
	ReinfectionProb  float64 //PRI, per infected neighbor
	InfectedFraction float64 //IPOP
	GridSize         int     //N
}

var DefaultParams = Params{
	ReinfectionProb:  DefReinfectionProb,
	InfectedFraction: DefInfectedFraction,
	GridSize:         DefGridSize,
}

//Validate checks the parameters, invalid values are rejected rather than clamped
func (p Params) Validate() error {
	if p.GridSize <= 0 {
		return fmt.Errorf("grid size %d: %w", p.GridSize, ErrInvalidSize)
	}
	probs := []struct {
		name  string
		value float64
	}{
		{"infection", p.InfectionProb},
		{"recovery", p.RecoveryProb},
		{"reinfection", p.ReinfectionProb},
		{"infected fraction", p.InfectedFraction},
	}
	for _, pr := range probs {
		if !validProbability(pr.value) {
			return fmt.Errorf("%s %v: %w", pr.name, pr.value, ErrInvalidProbability)
		}
	}
	return nil
}

func validProbability(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
