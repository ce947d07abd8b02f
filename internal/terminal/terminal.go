// Package terminal answers the portfolio's easter-egg command line. It is
// a fixed keyword table; every answer is built from the site content.
package terminal

import (
	"fmt"
	"strings"

	"github.com/pankajydv07/portfolio/internal/content"
)

// Tone tells a host how to color a span.
type Tone string

const (
	Accent Tone = "accent"
	Text   Tone = "text"
	Muted  Tone = "muted"
	OK     Tone = "ok"
	Error  Tone = "error"
)

type Span struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// Line is one row of terminal output. An empty line has no spans.
type Line []Span

func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Result is the answer to one input line.
type Result struct {
	Lines []Line `json:"lines"`
	// Clear asks the host to wipe the scrollback instead of appending.
	Clear bool `json:"clear,omitempty"`
	// Exit asks the host to close the terminal.
	Exit bool `json:"exit,omitempty"`
	// Open is a path the host should open, e.g. the resume.
	Open string `json:"open,omitempty"`
}

type command struct {
	name string
	help string
	run  func(*Shell, *Result)
}

// Shell is stateless apart from the content it describes.
type Shell struct {
	p        *content.Portfolio
	commands []command
}

func New(p *content.Portfolio) *Shell {
	s := &Shell{p: p}
	s.commands = []command{
		{"about", "Learn about " + s.firstName(), (*Shell).about},
		{"skills", "View technical skills", (*Shell).skills},
		{"projects", "List all projects", (*Shell).projects},
		{"contact", "Get contact information", (*Shell).contact},
		{"social", "View social media links", (*Shell).social},
		{"resume", "Download resume", (*Shell).resume},
		{"clear", "Clear terminal", nil},
		{"exit", "Close terminal", nil},
	}
	return s
}

// Welcome is the banner shown when the terminal opens or is cleared.
func (s *Shell) Welcome() []Line {
	return []Line{
		{{fmt.Sprintf("Welcome to %s's Portfolio Terminal v1.0", s.firstName()), Accent}},
		{{`Type "help" for available commands`, Muted}},
		{},
	}
}

// Commands lists the command names in help order.
func (s *Shell) Commands() []string {
	names := []string{"help"}
	for _, c := range s.commands {
		names = append(names, c.name)
	}
	return names
}

// Run answers one input line. Input is matched case-insensitively after
// trimming; the echoed prompt keeps it as typed.
func (s *Shell) Run(input string) Result {
	cmd := strings.ToLower(strings.TrimSpace(input))
	switch cmd {
	case "clear":
		return Result{Clear: true}
	case "exit":
		return Result{Exit: true}
	}

	r := Result{Lines: []Line{{{"$", Accent}, {" " + input, Text}}}}
	switch cmd {
	case "":
	case "help":
		s.help(&r)
	default:
		found := false
		for _, c := range s.commands {
			if c.name == cmd && c.run != nil {
				c.run(s, &r)
				found = true
				break
			}
		}
		if !found {
			r.add(Line{{"Command not found: " + cmd, Error}})
			r.add(Line{{`Type "help" for available commands`, Muted}})
		}
	}
	r.add(Line{})
	return r
}

func (r *Result) add(l Line) { r.Lines = append(r.Lines, l) }

func (s *Shell) firstName() string {
	if f := strings.Fields(s.p.Profile.Name); len(f) > 0 {
		return f[0]
	}
	return "me"
}

func (s *Shell) help(r *Result) {
	r.add(Line{{"Available commands:", Text}})
	for _, c := range s.commands {
		r.add(Line{{"  ", Text}, {fmt.Sprintf("%-9s", c.name), Accent}, {" - " + c.help, Text}})
	}
}

func (s *Shell) about(r *Result) {
	pr := s.p.Profile
	r.add(Line{{"👨‍💻 " + pr.Name, Text}})
	r.add(Line{{pr.Role, Muted}})
	r.add(Line{{pr.Focus, Muted}})
}

func (s *Shell) skills(r *Result) {
	for _, g := range s.p.Skills {
		r.add(Line{{g.Category + ":", Accent}, {" " + strings.Join(g.Items, ", "), Text}})
	}
}

func (s *Shell) projects(r *Result) {
	r.add(Line{{"Featured Projects:", Text}})
	for i, p := range s.p.Projects {
		r.add(Line{{fmt.Sprintf("  %d. ", i+1), Text}, {p.TerminalName(), Accent}, {" - " + p.Short, Text}})
	}
}

func (s *Shell) contact(r *Result) {
	r.add(Line{{"Email:", Accent}, {" " + s.p.Profile.Email, Text}})
	r.add(Line{{"Location:", Accent}, {" " + s.p.Profile.Location, Text}})
}

func (s *Shell) social(r *Result) {
	for _, so := range s.p.Socials {
		r.add(Line{{so.Name + ":", Accent}, {" " + so.Handle, Text}})
	}
}

func (s *Shell) resume(r *Result) {
	r.add(Line{{"✓ Opening resume...", OK}})
	r.Open = s.p.Profile.Resume
}
