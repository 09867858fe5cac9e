package epidemic

import "testing"

func TestCreateAreaSharesBackingSlice(t *testing.T) {
	a := createArea(4)
	if len(a.Cells) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(a.Cells))
	}
	for y, row := range a.Cells {
		if len(row) != 4 || cap(row) != 4 {
			t.Fatalf("row %d: len %d cap %d, want 4/4", y, len(row), cap(row))
		}
	}
	if &a.Cells[0][3] == &a.Cells[1][0] {
		t.Fatal("rows must not overlap")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := NewUniformArea(3, Susceptible)
	c := a.Clone()
	c.Cells[1][1] = Infected
	if a.Cells[1][1] != Susceptible {
		t.Fatal("changing the clone changed the original")
	}
	if a.Equal(c) {
		t.Fatal("expected areas to differ")
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		Infected:    "infected",
		Susceptible: "susceptible",
		Recovered:   "recovered",
		State(7):    "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
