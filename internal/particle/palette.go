package particle

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme selects one of the two fixed palettes.
type Theme int

const (
	Dark Theme = iota
	Light
)

func (t Theme) String() string {
	if t == Light {
		return "light"
	}
	return "dark"
}

// ParseTheme maps "light" to Light and anything else to Dark, the site default.
func ParseTheme(s string) Theme {
	if strings.EqualFold(strings.TrimSpace(s), "light") {
		return Light
	}
	return Dark
}

// Palette holds every color and opacity a frame needs for one theme.
type Palette struct {
	Particle      colorful.Color
	ParticleAlpha float64
	Glow          colorful.Color
	GlowAlpha     float64
	Opacity       float64
	Blur          float64

	Link      colorful.Color
	LinkBase  float64
	LinkScale float64
}

var (
	teal400 = colorful.Color{R: 20.0 / 255, G: 184.0 / 255, B: 166.0 / 255}
	teal600 = colorful.Color{R: 13.0 / 255, G: 148.0 / 255, B: 136.0 / 255}

	darkPalette = Palette{
		Particle:      teal400,
		ParticleAlpha: 1,
		Glow:          teal400,
		GlowAlpha:     1,
		Opacity:       0.5,
		Blur:          10,
		Link:          teal600,
		LinkBase:      0.30,
		LinkScale:     600,
	}

	lightPalette = Palette{
		Particle:      teal600,
		ParticleAlpha: 0.7,
		Glow:          teal600,
		GlowAlpha:     0.4,
		Opacity:       0.35,
		Blur:          6,
		Link:          teal600,
		LinkBase:      0.22,
		LinkScale:     700,
	}
)

// Palette returns the fixed palette for t.
func (t Theme) Palette() Palette {
	if t == Light {
		return lightPalette
	}
	return darkPalette
}

func (p Palette) particleStyle() Style {
	return Style{
		Color:     p.Particle,
		Alpha:     p.ParticleAlpha * p.Opacity,
		Glow:      p.Glow,
		GlowAlpha: p.GlowAlpha,
		Blur:      p.Blur,
	}
}

func (p Palette) linkStyle(opacity float64) Style {
	return Style{
		Color: p.Link,
		Alpha: opacity,
		Width: 1,
	}
}

// LinkOpacity reports whether two particles d apart are linked and with
// what opacity. The opacity decays linearly and never goes negative.
func LinkOpacity(t Theme, d float64) (float64, bool) {
	if d >= LinkDistance {
		return 0, false
	}
	p := t.Palette()
	return max(0, p.LinkBase-d/p.LinkScale), true
}
