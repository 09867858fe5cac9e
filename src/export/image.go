// Package export renders the simulation data to files: grid images, population charts,
// MJPEG animations and CSV series.
package export

import (
	"image"
	"image/color"
	"image/draw"

	"episim/src/epidemic"
)

//Palette maps the cell states to the colors of the rendered grid
var Palette = map[epidemic.State]color.RGBA{
	epidemic.Infected:    {R: 255, G: 0, B: 0, A: 255},     //red
	epidemic.Susceptible: {R: 154, G: 205, B: 50, A: 255},  //yellowgreen
	epidemic.Recovered:   {R: 173, G: 216, B: 230, A: 255}, //lightblue
}

//GridImage draws the area with cellSize x cellSize pixels per cell
func GridImage(a epidemic.Area, cellSize int) *image.RGBA {
	if cellSize < 1 {
		cellSize = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, a.Size*cellSize, a.Size*cellSize))
	drawGrid(img, image.Point{}, a, cellSize)
	return img
}

//drawGrid draws the area into dst with the top left corner at origin
func drawGrid(dst draw.Image, origin image.Point, a epidemic.Area, cellSize int) {
	a.Walk(func(x int, y int, s epidemic.State) {
		r := image.Rect(x*cellSize, y*cellSize, (x+1)*cellSize, (y+1)*cellSize).Add(origin)
		draw.Draw(dst, r, &image.Uniform{C: Palette[s]}, image.Point{}, draw.Src)
	})
}
