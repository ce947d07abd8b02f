//go:build js && wasm

// Command backdrop-wasm runs the particle backdrop on the page's canvas.
// The page shell calls setBackdropTheme(dark) when the theme toggles and
// teardownBackdrop() to unmount.
package main

import (
	"fmt"
	"math"
	"syscall/js"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pankajydv07/portfolio/internal/cursor"
	"github.com/pankajydv07/portfolio/internal/particle"
)

const hoverTargets = "a, button, input, textarea, .cursor-pointer"

// canvasSurface draws through a CanvasRenderingContext2D.
type canvasSurface struct {
	canvas js.Value
	ctx    js.Value
}

func (s *canvasSurface) Clear() {
	s.ctx.Call("clearRect", 0, 0, s.canvas.Get("width"), s.canvas.Get("height"))
}

func (s *canvasSurface) Circle(c r2.Vec, radius float64, st particle.Style) {
	s.apply(st)
	s.ctx.Set("fillStyle", particle.CSS(st.Color, 1))
	s.ctx.Call("beginPath")
	s.ctx.Call("arc", c.X, c.Y, radius, 0, 2*math.Pi)
	s.ctx.Call("fill")
	s.reset()
}

func (s *canvasSurface) Line(a, b r2.Vec, st particle.Style) {
	s.apply(st)
	s.ctx.Set("strokeStyle", particle.CSS(st.Color, 1))
	s.ctx.Set("lineWidth", max(st.Width, 1))
	s.ctx.Call("beginPath")
	s.ctx.Call("moveTo", a.X, a.Y)
	s.ctx.Call("lineTo", b.X, b.Y)
	s.ctx.Call("stroke")
	s.reset()
}

func (s *canvasSurface) apply(st particle.Style) {
	s.ctx.Set("globalAlpha", st.Alpha)
	if st.Blur > 0 {
		s.ctx.Set("shadowBlur", st.Blur)
		s.ctx.Set("shadowColor", particle.CSS(st.Glow, st.GlowAlpha))
	}
}

func (s *canvasSurface) reset() {
	s.ctx.Set("shadowBlur", 0)
	s.ctx.Set("globalAlpha", 1)
}

type host struct {
	window  js.Value
	surface *canvasSurface
	field   *particle.Field
	cursor  *cursor.Cursor
	dot     js.Value
	ring    js.Value

	frameID   js.Value
	frame     js.Func
	onMove    js.Func
	onResize  js.Func
	callbacks []js.Func
	done      chan struct{}
}

func main() {
	window := js.Global()
	doc := window.Get("document")

	canvas := doc.Call("getElementById", "backdrop")
	if canvas.IsNull() {
		fmt.Println("backdrop: no #backdrop canvas, nothing to do")
		return
	}
	canvas.Set("width", window.Get("innerWidth"))
	canvas.Set("height", window.Get("innerHeight"))

	theme := particle.Light
	if doc.Get("documentElement").Get("classList").Call("contains", "dark").Bool() {
		theme = particle.Dark
	}

	h := &host{
		window:  window,
		surface: &canvasSurface{canvas: canvas, ctx: canvas.Call("getContext", "2d")},
		field:   particle.New(canvas.Get("width").Float(), canvas.Get("height").Float(), theme, nil),
		cursor:  cursor.New(60),
		dot:     doc.Call("getElementById", "cursor-dot"),
		ring:    doc.Call("getElementById", "cursor-ring"),
		done:    make(chan struct{}),
	}
	h.mount()
	<-h.done
}

func (h *host) mount() {
	h.frame = js.FuncOf(func(js.Value, []js.Value) any {
		h.field.Frame(h.surface)
		h.drawCursor()
		h.frameID = h.window.Call("requestAnimationFrame", h.frame)
		return nil
	})

	h.onMove = js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := args[0]
		x, y := ev.Get("clientX").Float(), ev.Get("clientY").Float()
		h.field.SetPointer(x, y)
		h.cursor.MoveTo(x, y)
		target := ev.Get("target")
		h.cursor.SetHover(target.Truthy() && !target.Get("closest").IsUndefined() &&
			!target.Call("closest", hoverTargets).IsNull())
		return nil
	})

	h.onResize = js.FuncOf(func(js.Value, []js.Value) any {
		w, ht := h.window.Get("innerWidth"), h.window.Get("innerHeight")
		h.surface.canvas.Set("width", w)
		h.surface.canvas.Set("height", ht)
		h.field.Resize(w.Float(), ht.Float())
		return nil
	})

	setTheme := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 && args[0].Bool() {
			h.field.SetTheme(particle.Dark)
		} else {
			h.field.SetTheme(particle.Light)
		}
		return nil
	})

	teardown := js.FuncOf(func(js.Value, []js.Value) any {
		h.unmount()
		return nil
	})

	h.callbacks = []js.Func{h.frame, h.onMove, h.onResize, setTheme, teardown}
	h.window.Call("addEventListener", "mousemove", h.onMove)
	h.window.Call("addEventListener", "resize", h.onResize)
	h.window.Set("setBackdropTheme", setTheme)
	h.window.Set("teardownBackdrop", teardown)

	h.frameID = h.window.Call("requestAnimationFrame", h.frame)
}

func (h *host) unmount() {
	h.window.Call("cancelAnimationFrame", h.frameID)
	h.window.Call("removeEventListener", "mousemove", h.onMove)
	h.window.Call("removeEventListener", "resize", h.onResize)
	h.window.Delete("setBackdropTheme")
	h.window.Delete("teardownBackdrop")
	// Releasing from inside the teardown callback is safe; Release only
	// drops the Go side of the mapping.
	for _, cb := range h.callbacks {
		cb.Release()
	}
	close(h.done)
}

func (h *host) drawCursor() {
	if h.dot.IsNull() || h.ring.IsNull() {
		return
	}
	h.cursor.Step()
	dot, ring := h.cursor.Dot(), h.cursor.Ring()
	h.dot.Get("style").Set("transform",
		fmt.Sprintf("translate(%.1fpx, %.1fpx) scale(%.2f)", dot.X-16, dot.Y-16, h.cursor.Scale()))
	h.ring.Get("style").Set("transform",
		fmt.Sprintf("translate(%.1fpx, %.1fpx)", ring.X-16, ring.Y-16))
}
