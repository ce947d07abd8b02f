// Package shell is the terminal easter egg as a standalone TUI.
package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pankajydv07/portfolio/internal/terminal"
)

type Model struct {
	sh      *terminal.Shell
	input   textinput.Model
	lines   []terminal.Line
	host    string
	baseURL string
	status  string
	width   int
	height  int
}

// New builds the model. baseURL prefixes paths the shell asks to open.
func New(sh *terminal.Shell, host, baseURL string) Model {
	ti := textinput.New()
	ti.Prompt = renderLine(terminal.Line{{Text: "$ ", Tone: terminal.Accent}})
	ti.CharLimit = 256
	ti.Focus()

	return Model{
		sh:      sh,
		input:   ti,
		lines:   sh.Welcome(),
		host:    host,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle(m.host))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(10, msg.Width-4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "`", "~":
			return m, tea.Quit
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	r := m.sh.Run(m.input.Value())
	m.input.Reset()
	m.status = ""

	switch {
	case r.Exit:
		return m, tea.Quit
	case r.Clear:
		m.lines = nil
		return m, nil
	}
	m.lines = append(m.lines, r.Lines...)
	if r.Open != "" {
		m.status = "open " + m.baseURL + r.Open + " in your browser"
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleBarStyle.Render(m.host))
	b.WriteString("\n")

	lines := m.lines
	if m.height > 0 {
		// title, prompt, status, footer
		if room := m.height - 4; room >= 0 && len(lines) > room {
			lines = lines[len(lines)-room:]
		}
	}
	for _, l := range lines {
		b.WriteString(renderLine(l))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Press ") + keyStyle.Render("ESC") +
		footerStyle.Render(" or ") + keyStyle.Render("`") + footerStyle.Render(" to close"))
	return b.String()
}

// Lines returns the scrollback.
func (m Model) Lines() []terminal.Line {
	return m.lines
}
