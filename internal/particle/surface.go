package particle

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// Style is the complete drawing state for one primitive. Surfaces must not
// carry any of it over to the next call.
type Style struct {
	Color colorful.Color
	Alpha float64

	Glow      colorful.Color
	GlowAlpha float64
	Blur      float64

	Width float64
}

// Surface is anything a field can be drawn on: a browser canvas, a
// terminal, an in-memory image.
type Surface interface {
	Clear()
	Circle(center r2.Vec, radius float64, st Style)
	Line(a, b r2.Vec, st Style)
}

// Flusher is implemented by surfaces that buffer a frame and need an
// explicit present step after it.
type Flusher interface {
	Flush()
}

// Discard draws nothing. It lets a field advance without a display.
var Discard Surface = discard{}

type discard struct{}

func (discard) Clear()                        {}
func (discard) Circle(r2.Vec, float64, Style) {}
func (discard) Line(r2.Vec, r2.Vec, Style)    {}

// CSS formats c with alpha a as a CSS rgba() color.
func CSS(c colorful.Color, a float64) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", r, g, b, a)
}
