package particle

import (
	"context"
	"errors"
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrStopped is returned by Loop.Do once Run has returned.
var ErrStopped = errors.New("particle: loop stopped")

// DefaultInterval paces frames at roughly 60 per second.
const DefaultInterval = 16 * time.Millisecond

// Loop runs a field on a single goroutine. Pointer, resize and theme
// updates may come from any goroutine; they are parked in a mailbox and
// applied at the start of the next frame, the latest value winning.
type Loop struct {
	field    *Field
	interval time.Duration
	onFrame  func(*Field)
	prepare  func(*Field)

	mu      sync.Mutex
	pointer *r2.Vec
	size    *r2.Vec
	theme   *Theme

	calls chan call
	done  chan struct{}
}

type call struct {
	fn   func(*Field)
	done chan struct{}
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithInterval sets the time between frames.
func WithInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithFrameHook runs fn on the loop goroutine after every frame, before the
// surface is flushed, so fn may draw overlays.
func WithFrameHook(fn func(*Field)) LoopOption {
	return func(l *Loop) { l.onFrame = fn }
}

// WithPrepareHook runs fn on the loop goroutine before every frame, after
// pending updates are applied and before the surface is cleared.
func WithPrepareHook(fn func(*Field)) LoopOption {
	return func(l *Loop) { l.prepare = fn }
}

// NewLoop wraps f. The loop owns f from here on.
func NewLoop(f *Field, opts ...LoopOption) *Loop {
	l := &Loop{
		field:    f,
		interval: DefaultInterval,
		calls:    make(chan call),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run draws a frame on s every interval until ctx is cancelled. It must
// be called once.
func (l *Loop) Run(ctx context.Context, s Surface) error {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-l.calls:
			l.applyPending()
			c.fn(l.field)
			close(c.done)
		case <-ticker.C:
			l.applyPending()
			if l.prepare != nil {
				l.prepare(l.field)
			}
			l.field.Frame(s)
			if l.onFrame != nil {
				l.onFrame(l.field)
			}
			if fl, ok := s.(Flusher); ok {
				fl.Flush()
			}
		}
	}
}

// Do runs fn on the loop goroutine between frames and waits for it.
func (l *Loop) Do(ctx context.Context, fn func(*Field)) error {
	c := call{fn: fn, done: make(chan struct{})}
	select {
	case l.calls <- c:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MovePointer queues a pointer position for the next frame.
func (l *Loop) MovePointer(x, y float64) {
	l.mu.Lock()
	l.pointer = &r2.Vec{X: x, Y: y}
	l.mu.Unlock()
}

// Resize queues new canvas bounds for the next frame.
func (l *Loop) Resize(width, height float64) {
	l.mu.Lock()
	l.size = &r2.Vec{X: width, Y: height}
	l.mu.Unlock()
}

// SetTheme queues a palette switch for the next frame.
func (l *Loop) SetTheme(t Theme) {
	l.mu.Lock()
	l.theme = &t
	l.mu.Unlock()
}

func (l *Loop) applyPending() {
	l.mu.Lock()
	pointer, size, theme := l.pointer, l.size, l.theme
	l.pointer, l.size, l.theme = nil, nil, nil
	l.mu.Unlock()

	if pointer != nil {
		l.field.SetPointer(pointer.X, pointer.Y)
	}
	if size != nil {
		l.field.Resize(size.X, size.Y)
	}
	if theme != nil {
		l.field.SetTheme(*theme)
	}
}
