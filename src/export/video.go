package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/icza/mjpeg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"episim/src/epidemic"
	"episim/src/runner"
)

//default video options
const (
	DefFrameRate    = 10
	DefJPEGQuality  = 90
	captionHeight   = 20
	captionBaseline = 14
)

//VideoRecorder writes one frame per simulation step into the MJPEG AVI file
//the frame shows the grid on the left and the population chart on the right
//it implements runner.Viewer
type VideoRecorder struct {
	r         *runner.Runner
	aw        mjpeg.AviWriter
	buf       bytes.Buffer
	frame     *image.RGBA
	cellSize  int
	gridPx    int
	title     string
	lastFrame int
	frames    int
	err       error
}

//NewVideoRecorder creates the AVI file, size is the grid size
func NewVideoRecorder(path string, size int, cellSize int, title string) (*VideoRecorder, error) {
	if cellSize < 1 {
		cellSize = 1
	}
	gridPx := size * cellSize
	width, height := gridPx*2, gridPx+captionHeight
	aw, err := mjpeg.New(path, int32(width), int32(height), DefFrameRate)
	if err != nil {
		return nil, fmt.Errorf("create video %s: %w", path, err)
	}
	return &VideoRecorder{
		aw:        aw,
		frame:     image.NewRGBA(image.Rect(0, 0, width, height)),
		cellSize:  cellSize,
		gridPx:    gridPx,
		title:     title,
		lastFrame: -1,
	}, nil
}

func (v *VideoRecorder) Register(r *runner.Runner) {
	v.r = r
}

//Start writes the frame of the initial area
func (v *VideoRecorder) Start() {
	v.Refresh()
}

//Refresh adds the frame when the simulation has moved to the new step
//the first error stops the recording, Close reports it
func (v *VideoRecorder) Refresh() {
	if v.err != nil || v.r == nil {
		return
	}
	snap := v.r.Snapshot()
	if snap.Status.IterationNum == v.lastFrame {
		return
	}
	v.lastFrame = snap.Status.IterationNum
	v.err = v.AddFrame(snap.Area, snap.Series, snap.Status.IterationNum)
}

//AddFrame renders and appends one frame
func (v *VideoRecorder) AddFrame(a epidemic.Area, s epidemic.Series, step int) error {
	draw.Draw(v.frame, v.frame.Bounds(), image.White, image.Point{}, draw.Src)
	drawGrid(v.frame, image.Point{Y: captionHeight}, a, v.cellSize)
	if s.Len() > 0 {
		chartImg, err := ChartImage(s, a.Size*a.Size, v.gridPx, v.gridPx)
		if err != nil {
			return err
		}
		r := image.Rect(v.gridPx, captionHeight, 2*v.gridPx, captionHeight+v.gridPx)
		draw.Draw(v.frame, r, chartImg, chartImg.Bounds().Min, draw.Src)
	}
	v.caption(fmt.Sprintf("%s  step %d", v.title, step))

	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, v.frame, &jpeg.Options{Quality: DefJPEGQuality}); err != nil {
		return fmt.Errorf("encode frame %d: %w", step, err)
	}
	if err := v.aw.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("add frame %d: %w", step, err)
	}
	v.frames++
	return nil
}

func (v *VideoRecorder) caption(text string) {
	d := &font.Drawer{
		Dst:  v.frame,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, captionBaseline),
	}
	d.DrawString(text)
}

//Frames is the number of written frames
func (v *VideoRecorder) Frames() int {
	return v.frames
}

//Close finishes the AVI file and returns the first recording error
func (v *VideoRecorder) Close() error {
	if err := v.aw.Close(); err != nil && v.err == nil {
		v.err = fmt.Errorf("close video: %w", err)
	}
	return v.err
}
