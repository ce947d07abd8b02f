// Package particle implements the animated backdrop behind the portfolio:
// a fixed set of drifting points, linked to their neighbours and pushed
// away from the pointer.
package particle

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Count is the number of particles in every field.
	Count = 100

	// LinkDistance is the exclusive upper bound on link length.
	LinkDistance = 150.0

	// RepelDistance is the pointer's radius of influence.
	RepelDistance = 150.0

	// RepelStrength is the push applied to a particle sitting on the pointer.
	RepelStrength = 5.0

	minRadius = 1.0
	maxRadius = 4.0
	maxSpeed  = 0.5
)

// Particle is one point of the field. Radius is fixed at creation and
// velocity only ever changes sign.
type Particle struct {
	Pos    r2.Vec
	Vel    r2.Vec
	Radius float64
}

// Field is the backdrop state. It is not safe for concurrent use; hosts
// with more than one goroutine drive it through a Loop.
type Field struct {
	particles     []Particle
	width, height float64
	pointer       r2.Vec
	theme         Theme
}

// New scatters Count particles over a width x height canvas. A nil rng
// falls back to a randomly seeded source.
func New(width, height float64, theme Theme, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{
		particles: make([]Particle, Count),
		width:     width,
		height:    height,
		theme:     theme,
	}
	for i := range f.particles {
		f.particles[i] = Particle{
			Pos:    r2.Vec{X: rng.Float64() * width, Y: rng.Float64() * height},
			Radius: minRadius + rng.Float64()*(maxRadius-minRadius),
			Vel: r2.Vec{
				X: rng.Float64()*2*maxSpeed - maxSpeed,
				Y: rng.Float64()*2*maxSpeed - maxSpeed,
			},
		}
	}
	return f
}

// Frame draws the field on s and advances it by one step.
//
// Particles are handled in array order. Particle i is drawn and linked to
// the particles after it before it moves, so the picture is the state the
// frame started with.
func (f *Field) Frame(s Surface) {
	s.Clear()
	pal := f.theme.Palette()
	for i := range f.particles {
		p := &f.particles[i]
		s.Circle(p.Pos, p.Radius, pal.particleStyle())
		f.linkFrom(s, pal, i)
		f.advance(p)
	}
}

// Render draws the field on s without moving anything.
func (f *Field) Render(s Surface) {
	s.Clear()
	pal := f.theme.Palette()
	for i := range f.particles {
		p := f.particles[i]
		s.Circle(p.Pos, p.Radius, pal.particleStyle())
		f.linkFrom(s, pal, i)
	}
}

// linkFrom draws the links between particle i and every particle after
// it, so each unordered pair is visited once per frame.
func (f *Field) linkFrom(s Surface, pal Palette, i int) {
	a := f.particles[i].Pos
	for j := i + 1; j < len(f.particles); j++ {
		b := f.particles[j].Pos
		op, ok := LinkOpacity(f.theme, r2.Norm(r2.Sub(a, b)))
		if !ok {
			continue
		}
		s.Line(a, b, pal.linkStyle(op))
	}
}

func (f *Field) advance(p *Particle) {
	p.Pos = r2.Add(p.Pos, p.Vel)
	p.Pos = r2.Add(p.Pos, Repulsion(p.Pos, f.pointer))

	// Bounce flips direction but does not clamp, so a particle may sit
	// outside the canvas for a few frames.
	if p.Pos.X < 0 || p.Pos.X > f.width {
		p.Vel.X = -p.Vel.X
	}
	if p.Pos.Y < 0 || p.Pos.Y > f.height {
		p.Vel.Y = -p.Vel.Y
	}
}

// Repulsion is the displacement the pointer applies to a particle at pos.
// It is strongest next to the pointer and zero at RepelDistance or beyond.
// A particle exactly on the pointer has no direction to flee in and is
// left alone.
func Repulsion(pos, pointer r2.Vec) r2.Vec {
	d := r2.Sub(pointer, pos)
	dist := r2.Norm(d)
	if dist >= RepelDistance || dist == 0 {
		return r2.Vec{}
	}
	force := (RepelDistance - dist) / RepelDistance
	return r2.Scale(-RepelStrength*force/dist, d)
}

// Resize changes the canvas bounds. Particles keep their positions even if
// they now lie outside.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
}

// Size returns the canvas bounds.
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// SetPointer records the latest pointer position.
func (f *Field) SetPointer(x, y float64) {
	f.pointer = r2.Vec{X: x, Y: y}
}

// Pointer returns the latest pointer position, the origin until the first
// SetPointer.
func (f *Field) Pointer() r2.Vec {
	return f.pointer
}

// SetTheme switches the palette used from the next frame on.
func (f *Field) SetTheme(t Theme) {
	f.theme = t
}

// Theme is the palette currently in use.
func (f *Field) Theme() Theme {
	return f.theme
}

// Len is always Count for a field built by New.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a copy of the current particle state.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Clone returns an independent copy of the field. It lets a host render a
// frame on another goroutine while the original keeps moving.
func (f *Field) Clone() *Field {
	c := *f
	c.particles = f.Particles()
	return &c
}
