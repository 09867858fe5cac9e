package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"episim/src/epidemic"
)

var csvHeader = []string{"step", "recovered", "susceptible", "infected"}

//WriteCSV writes one row per recorded step
func WriteCSV(w io.Writer, s epidemic.Series) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := 0; i < s.Len(); i++ {
		c := s.At(i)
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(c.Recovered),
			strconv.Itoa(c.Susceptible),
			strconv.Itoa(c.Infected),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
