package main

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pankajydv07/portfolio/internal/particle"
)

// The served snapshot is social-card sized.
const (
	backdropWidth  = 1200
	backdropHeight = 630
)

// newBackdrop builds the server's own field. Its loop keeps the particles
// drifting so consecutive snapshots differ.
func newBackdrop() *particle.Loop {
	f := particle.New(backdropWidth, backdropHeight, particle.Dark, nil)
	return particle.NewLoop(f, particle.WithInterval(33*time.Millisecond))
}

// handleBackdrop renders the current field state as a PNG in the requested
// theme. Rendering happens on a copy, off the loop goroutine.
func (s *site) handleBackdrop(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	var snap *particle.Field
	err := s.backdrop.Do(ctx, func(f *particle.Field) {
		snap = f.Clone()
	})
	if err != nil {
		log.Printf("Backdrop unavailable: %v", err)
		c.Status(http.StatusServiceUnavailable)
		return
	}

	snap.SetTheme(particle.ParseTheme(c.Query("theme")))
	surface := particle.NewRasterSurface(backdropWidth, backdropHeight)
	snap.Render(surface)

	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		log.Printf("Error encoding backdrop: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
