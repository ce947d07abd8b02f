// Command shell opens the portfolio's easter-egg terminal outside the browser.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pankajydv07/portfolio/internal/content"
	"github.com/pankajydv07/portfolio/internal/shell"
	"github.com/pankajydv07/portfolio/internal/terminal"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "site address used for links such as the resume")
	flag.Parse()

	p, err := content.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	first := strings.ToLower(strings.Fields(p.Profile.Name)[0])
	model := shell.New(terminal.New(p), first+"@portfolio:~", *baseURL)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
