package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"episim/src/epidemic"
)

var ErrNoData = errors.New("population series is empty")

//series colors follow the grid palette
var (
	recoveredColor   = drawing.ColorFromHex("add8e6")
	susceptibleColor = drawing.ColorFromHex("9acd32")
	infectedColor    = drawing.ColorFromHex("ff0000")
)

//stepValues returns 0..n-1 as the X values
func stepValues(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

func floats(vs []int) []float64 {
	fs := make([]float64, len(vs))
	for i, v := range vs {
		fs[i] = float64(v)
	}
	return fs
}

//populationChart builds the line chart of the three series
//the axis ranges are fixed, so a short or flat series still renders
func populationChart(s epidemic.Series, population int, width int, height int) chart.Chart {
	xs := stepValues(s.Len())
	xMax := float64(s.Len() - 1)
	if xMax < 1 {
		xMax = 1
	}
	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:  "Step",
			Range: &chart.ContinuousRange{Min: 0, Max: xMax},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Population",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(population)},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Recovered",
				XValues: xs,
				YValues: floats(s.Recovered),
				Style:   chart.Style{StrokeColor: recoveredColor, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "Susceptible",
				XValues: xs,
				YValues: floats(s.Susceptible),
				Style:   chart.Style{StrokeColor: susceptibleColor, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "Infected",
				XValues: xs,
				YValues: floats(s.Infected),
				Style:   chart.Style{StrokeColor: infectedColor, StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph
}

//PopulationChart renders the series as the PNG line chart into w
//population is the number of cells, it is the top of the Y axis
func PopulationChart(w io.Writer, s epidemic.Series, population int, width int, height int) error {
	if s.Len() == 0 {
		return ErrNoData
	}
	graph := populationChart(s, population, width, height)
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

//ChartImage renders the population chart as the image
func ChartImage(s epidemic.Series, population int, width int, height int) (image.Image, error) {
	var buf bytes.Buffer
	if err := PopulationChart(&buf, s, population, width, height); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}
