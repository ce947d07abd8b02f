// Package cursor animates the custom pointer: a dot that springs after the
// real pointer and a ring that trails it more loosely.
package cursor

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	// Dot spring: stiffness 500, damping 28, unit mass.
	dotStiffness = 500.0
	dotDamping   = 28.0

	ringFrequency = 12.0
	ringDamping   = 1.0

	defaultScale = 0.5
	hoverScale   = 3.0
)

// Offscreen is where the cursor starts before the first pointer event.
const Offscreen = -100.0

// Point is a cursor position in the host's pixel space.
type Point struct{ X, Y float64 }

type follower struct {
	spring harmonica.Spring
	x, y   float64
	vx, vy float64
}

func (f *follower) step(target Point) {
	f.x, f.vx = f.spring.Update(f.x, f.vx, target.X)
	f.y, f.vy = f.spring.Update(f.y, f.vy, target.Y)
}

// Cursor holds the dot, the ring and the dot's hover scale.
type Cursor struct {
	dot, ring follower

	scale     harmonica.Spring
	size, dsz float64
	hover     bool
	target    Point
}

// New builds a cursor animated at fps frames per second.
func New(fps int) *Cursor {
	dt := harmonica.FPS(fps)
	freq := math.Sqrt(dotStiffness)
	ratio := dotDamping / (2 * freq)

	c := &Cursor{
		dot:    follower{spring: harmonica.NewSpring(dt, freq, ratio)},
		ring:   follower{spring: harmonica.NewSpring(dt, ringFrequency, ringDamping)},
		scale:  harmonica.NewSpring(dt, freq, ratio),
		size:   defaultScale,
		target: Point{Offscreen, Offscreen},
	}
	c.dot.x, c.dot.y = Offscreen, Offscreen
	c.ring.x, c.ring.y = Offscreen, Offscreen
	return c
}

// MoveTo sets the point both springs chase.
func (c *Cursor) MoveTo(x, y float64) {
	c.target = Point{x, y}
}

// SetHover grows the dot while the pointer is over something clickable.
func (c *Cursor) SetHover(on bool) {
	c.hover = on
}

// Step advances every spring by one frame.
func (c *Cursor) Step() {
	c.dot.step(c.target)
	c.ring.step(c.target)
	want := defaultScale
	if c.hover {
		want = hoverScale
	}
	c.size, c.dsz = c.scale.Update(c.size, c.dsz, want)
}

func (c *Cursor) Dot() Point  { return Point{c.dot.x, c.dot.y} }
func (c *Cursor) Ring() Point { return Point{c.ring.x, c.ring.y} }

// Scale is the dot's current size multiplier.
func (c *Cursor) Scale() float64 { return c.size }

// Target is the last position passed to MoveTo.
func (c *Cursor) Target() Point { return c.target }
