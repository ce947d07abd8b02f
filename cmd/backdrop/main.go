// Command backdrop plays the site's particle backdrop in the terminal.
// Move the mouse to push particles, press t to switch theme, q to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/pankajydv07/portfolio/internal/backdrop"
	"github.com/pankajydv07/portfolio/internal/particle"
)

func main() {
	theme := flag.String("theme", "dark", "initial theme: dark or light")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = backdrop.New(screen, particle.ParseTheme(*theme)).Run(ctx)
	stop()
	screen.Fini()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
