// Package backdrop runs the particle backdrop in a terminal.
package backdrop

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pankajydv07/portfolio/internal/particle"
)

// A terminal cell stands for this many pixels of the field.
const (
	CellWidth  = 8
	CellHeight = 16
)

var (
	darkBackground  = colorful.Color{R: 10.0 / 255, G: 25.0 / 255, B: 47.0 / 255}
	lightBackground = colorful.Color{R: 249.0 / 255, G: 251.0 / 255, B: 253.0 / 255}
)

// Background is the page color behind the field for a theme.
func Background(t particle.Theme) colorful.Color {
	if t == particle.Light {
		return lightBackground
	}
	return darkBackground
}

type cell struct{ x, y int }

// Surface draws a field on a tcell screen. Circles win over links, and
// where links cross the most opaque one is kept. Terminal cells cannot
// blur, so glow is dropped.
type Surface struct {
	screen tcell.Screen
	bg     colorful.Color

	dots  map[cell]bool
	links map[cell]float64
}

func NewSurface(screen tcell.Screen, theme particle.Theme) *Surface {
	return &Surface{
		screen: screen,
		bg:     Background(theme),
		dots:   make(map[cell]bool),
		links:  make(map[cell]float64),
	}
}

// SetTheme changes the background used from the next Clear.
func (s *Surface) SetTheme(t particle.Theme) {
	s.bg = Background(t)
}

func (s *Surface) Clear() {
	clear(s.dots)
	clear(s.links)
	s.screen.Fill(' ', tcell.StyleDefault.Background(toTcell(s.bg)))
}

func (s *Surface) Circle(c r2.Vec, radius float64, st particle.Style) {
	at, ok := s.toCell(c)
	if !ok {
		return
	}
	r := '•'
	if radius >= 2.5 {
		r = '●'
	}
	s.dots[at] = true
	s.put(at, r, st.Color, st.Alpha)
}

func (s *Surface) Line(a, b r2.Vec, st particle.Style) {
	from, to := pixelToCell(a), pixelToCell(b)
	bresenham(from, to, func(at cell) {
		if s.dots[at] || !s.inside(at) {
			return
		}
		if prev, ok := s.links[at]; ok && prev >= st.Alpha {
			return
		}
		s.links[at] = st.Alpha
		s.put(at, '·', st.Color, st.Alpha)
	})
}

// Mark draws an overlay rune at a pixel position at full strength.
func (s *Surface) Mark(p r2.Vec, r rune, c colorful.Color) {
	if at, ok := s.toCell(p); ok {
		s.put(at, r, c, 1)
	}
}

func (s *Surface) Flush() {
	s.screen.Show()
}

func (s *Surface) put(at cell, r rune, c colorful.Color, alpha float64) {
	// Blend toward the background to fake opacity; the floor keeps faint
	// links visible at all.
	fg := s.bg.BlendRgb(c, min(1, 0.25+alpha))
	style := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(s.bg))
	s.screen.SetContent(at.x, at.y, r, nil, style)
}

func (s *Surface) toCell(p r2.Vec) (cell, bool) {
	at := pixelToCell(p)
	return at, s.inside(at)
}

func (s *Surface) inside(at cell) bool {
	w, h := s.screen.Size()
	return at.x >= 0 && at.y >= 0 && at.x < w && at.y < h
}

func pixelToCell(p r2.Vec) cell {
	return cell{x: floorDiv(p.X, CellWidth), y: floorDiv(p.Y, CellHeight)}
}

func floorDiv(v float64, size int) int {
	return int(math.Floor(v / float64(size)))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func bresenham(a, b cell, plot func(cell)) {
	dx, dy := abs(b.x-a.x), -abs(b.y-a.y)
	sx, sy := 1, 1
	if a.x > b.x {
		sx = -1
	}
	if a.y > b.y {
		sy = -1
	}
	e := dx + dy
	for {
		plot(a)
		if a == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			a.x += sx
		}
		if e2 <= dx {
			e += dx
			a.y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
