package backdrop

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pankajydv07/portfolio/internal/cursor"
	"github.com/pankajydv07/portfolio/internal/particle"
)

const fps = 60

// App wires a tcell screen to a particle loop: mouse motion becomes the
// pointer, terminal resizes become canvas resizes, and a spring cursor is
// drawn over every frame.
type App struct {
	screen  tcell.Screen
	surface *Surface
	loop    *particle.Loop
	cursor  *cursor.Cursor
	theme   particle.Theme
}

// New builds an app on an initialised screen.
func New(screen tcell.Screen, theme particle.Theme) *App {
	w, h := screen.Size()
	a := &App{
		screen:  screen,
		surface: NewSurface(screen, theme),
		cursor:  cursor.New(fps),
		theme:   theme,
	}
	field := particle.New(float64(w*CellWidth), float64(h*CellHeight), theme, nil)
	a.loop = particle.NewLoop(field,
		particle.WithInterval(time.Second/fps),
		particle.WithPrepareHook(a.prepare),
		particle.WithFrameHook(a.overlay),
	)
	return a
}

// prepare runs on the loop goroutine before each frame, so the clear
// already uses the field's current background.
func (a *App) prepare(f *particle.Field) {
	a.surface.SetTheme(f.Theme())
}

// overlay runs on the loop goroutine after each frame.
func (a *App) overlay(f *particle.Field) {
	p := f.Pointer()
	a.cursor.MoveTo(p.X, p.Y)
	a.cursor.Step()

	accent := f.Theme().Palette().Particle
	ring, dot := a.cursor.Ring(), a.cursor.Dot()
	a.surface.Mark(r2.Vec{X: ring.X, Y: ring.Y}, '○', accent)
	a.surface.Mark(r2.Vec{X: dot.X, Y: dot.Y}, '●', accent)
}

// Run animates until ctx is cancelled or the user quits with q, Esc or
// Ctrl-C. t toggles the theme.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.screen.EnableMouse(tcell.MouseMotionEvents)
	defer a.screen.DisableMouse()

	loopErr := make(chan error, 1)
	go func() { loopErr <- a.loop.Run(ctx, a.surface) }()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return waitLoop(loopErr)
		case err := <-loopErr:
			return err
		case ev := <-events:
			if !a.handle(ev) {
				cancel()
				return waitLoop(loopErr)
			}
		}
	}
}

func waitLoop(errc <-chan error) error {
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// handle reports false when the app should quit.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 't':
			a.toggleTheme()
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		a.loop.MovePointer(float64(x*CellWidth+CellWidth/2), float64(y*CellHeight+CellHeight/2))
	case *tcell.EventResize:
		a.screen.Sync()
		w, h := ev.Size()
		a.loop.Resize(float64(w*CellWidth), float64(h*CellHeight))
	}
	return true
}

func (a *App) toggleTheme() {
	if a.theme == particle.Dark {
		a.theme = particle.Light
	} else {
		a.theme = particle.Dark
	}
	a.loop.SetTheme(a.theme)
}

// Loop exposes the particle loop, e.g. to inspect the field.
func (a *App) Loop() *particle.Loop {
	return a.loop
}
