package particle

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
	"gonum.org/v1/gonum/spatial/r2"
)

// RasterSurface draws into an in-memory RGBA image through the canvas
// software backend.
type RasterSurface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
}

// NewRasterSurface allocates a width x height image.
func NewRasterSurface(width, height int) *RasterSurface {
	b := softwarebackend.New(width, height)
	return &RasterSurface{backend: b, cv: canvas.New(b)}
}

func (r *RasterSurface) Clear() {
	r.cv.ClearRect(0, 0, float64(r.cv.Width()), float64(r.cv.Height()))
}

func (r *RasterSurface) Circle(c r2.Vec, radius float64, st Style) {
	r.apply(st)
	r.cv.SetFillStyle(CSS(st.Color, 1))
	r.cv.BeginPath()
	r.cv.Arc(c.X, c.Y, radius, 0, 2*math.Pi, false)
	r.cv.Fill()
	r.reset()
}

func (r *RasterSurface) Line(a, b r2.Vec, st Style) {
	r.apply(st)
	r.cv.SetStrokeStyle(CSS(st.Color, 1))
	r.cv.SetLineWidth(max(st.Width, 1))
	r.cv.BeginPath()
	r.cv.MoveTo(a.X, a.Y)
	r.cv.LineTo(b.X, b.Y)
	r.cv.Stroke()
	r.reset()
}

func (r *RasterSurface) apply(st Style) {
	r.cv.SetGlobalAlpha(st.Alpha)
	if st.Blur > 0 {
		r.cv.SetShadowBlur(st.Blur)
		r.cv.SetShadowColor(CSS(st.Glow, st.GlowAlpha))
	}
}

func (r *RasterSurface) reset() {
	r.cv.SetShadowBlur(0)
	r.cv.SetGlobalAlpha(1)
}

// Image exposes the backing image. It is overwritten by the next draw.
func (r *RasterSurface) Image() *image.RGBA {
	return r.backend.Image
}

// EncodePNG writes the current image to w.
func (r *RasterSurface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, r.backend.Image); err != nil {
		return fmt.Errorf("encode backdrop: %w", err)
	}
	return nil
}
