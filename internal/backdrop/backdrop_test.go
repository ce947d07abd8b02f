package backdrop

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pankajydv07/portfolio/internal/particle"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func TestSurfaceCircleAndLine(t *testing.T) {
	screen := simScreen(t, 20, 10)
	s := NewSurface(screen, particle.Dark)
	st := particle.Dark.Palette()

	s.Clear()
	s.Circle(r2.Vec{X: 20, Y: 40}, 3, particle.Style{Color: st.Particle, Alpha: 0.5})
	s.Line(r2.Vec{X: 20, Y: 40}, r2.Vec{X: 60, Y: 40}, particle.Style{Color: st.Link, Alpha: 0.2})
	s.Flush()

	if r, _, _, _ := screen.GetContent(2, 2); r != '●' {
		t.Fatalf("circle cell=%q want ●", r)
	}
	for x := 3; x <= 7; x++ {
		if r, _, _, _ := screen.GetContent(x, 2); r != '·' {
			t.Fatalf("link cell %d=%q want ·", x, r)
		}
	}
	if r, _, _, _ := screen.GetContent(10, 5); r != ' ' {
		t.Fatalf("untouched cell=%q want blank", r)
	}
}

func TestSurfaceIgnoresOutside(t *testing.T) {
	screen := simScreen(t, 10, 5)
	s := NewSurface(screen, particle.Light)
	s.Clear()
	s.Circle(r2.Vec{X: -20, Y: 10}, 1, particle.Style{Alpha: 1})
	s.Circle(r2.Vec{X: 400, Y: 10}, 1, particle.Style{Alpha: 1})
	s.Flush()
	for x := 0; x < 10; x++ {
		if r, _, _, _ := screen.GetContent(x, 0); r != ' ' {
			t.Fatalf("cell %d=%q, off-screen circle leaked", x, r)
		}
	}
}

func TestBresenhamEndpoints(t *testing.T) {
	var got []cell
	bresenham(cell{0, 0}, cell{3, -2}, func(c cell) { got = append(got, c) })
	if got[0] != (cell{0, 0}) || got[len(got)-1] != (cell{3, -2}) || len(got) != 4 {
		t.Fatalf("line=%v", got)
	}
}

func TestAppRoutesEvents(t *testing.T) {
	screen := simScreen(t, 40, 20)
	app := New(screen, particle.Dark)

	app.handle(tcell.NewEventResize(50, 30))
	app.handle(tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone))
	app.handle(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone))
	if app.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go app.Loop().Run(ctx, particle.Discard)

	var (
		w, h    float64
		pointer r2.Vec
		theme   particle.Theme
		count   int
	)
	err := app.Loop().Do(ctx, func(f *particle.Field) {
		w, h = f.Size()
		pointer = f.Pointer()
		theme = f.Theme()
		count = f.Len()
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if w != 50*CellWidth || h != 30*CellHeight {
		t.Fatalf("size=%fx%f", w, h)
	}
	if pointer != (r2.Vec{X: 3*CellWidth + CellWidth/2, Y: 4*CellHeight + CellHeight/2}) {
		t.Fatalf("pointer=%v", pointer)
	}
	if theme != particle.Light || count != particle.Count {
		t.Fatalf("theme=%s count=%d", theme, count)
	}
}

func TestThemeSwitchRepaintsBackground(t *testing.T) {
	screen := simScreen(t, 40, 20)
	app := New(screen, particle.Dark)
	field := particle.New(40*CellWidth, 20*CellHeight, particle.Light, nil)

	app.prepare(field)
	field.Frame(app.surface)
	app.surface.Flush()

	_, _, style, _ := screen.GetContent(39, 19)
	_, bg, _ := style.Decompose()
	if want := toTcell(Background(particle.Light)); bg != want {
		t.Fatalf("background=%v want light %v", bg, want)
	}
}
