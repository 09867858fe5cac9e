package epidemic

import (
	"math/rand"
	"strings"
	"testing"
)

//constRand returns the same draw every time
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

//seqRand returns the scripted draws in order and panics when they run out
type seqRand struct {
	draws []float64
	i     int
}

func (s *seqRand) Float64() float64 {
	u := s.draws[s.i]
	s.i++
	return u
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

//parseArea builds the area from rows of 'I', 'S' and 'R' chars
func parseArea(t testing.TB, rows ...string) Area {
	t.Helper()
	a := createArea(len(rows))
	for y, r := range rows {
		if len(r) != len(rows) {
			t.Fatalf("row %d has %d cells, want %d", y, len(r), len(rows))
		}
		for x, c := range r {
			switch c {
			case 'I':
				a.Cells[y][x] = Infected
			case 'S':
				a.Cells[y][x] = Susceptible
			case 'R':
				a.Cells[y][x] = Recovered
			default:
				t.Fatalf("unknown cell %q", c)
			}
		}
	}
	return a
}

func formatArea(a Area) string {
	var b strings.Builder
	for _, row := range a.Cells {
		for _, s := range row {
			b.WriteByte("ISR"[s])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func assertArea(t *testing.T, got Area, want Area) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("unexpected area\ngot:\n%swant:\n%s", formatArea(got), formatArea(want))
	}
}
