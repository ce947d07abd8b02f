// Package content holds the hand-edited portfolio text: profile, projects,
// experience and skills.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var raw []byte

type Profile struct {
	Name     string   `yaml:"name" json:"name"`
	Initials string   `yaml:"initials" json:"initials"`
	Headline string   `yaml:"headline" json:"headline"`
	Role     string   `yaml:"role" json:"role"`
	Focus    string   `yaml:"focus" json:"focus"`
	Email    string   `yaml:"email" json:"email"`
	Location string   `yaml:"location" json:"location"`
	Resume   string   `yaml:"resume" json:"resume"`
	Intro    string   `yaml:"intro" json:"intro"`
	About    []string `yaml:"about" json:"about"`
}

type Social struct {
	Name   string `yaml:"name" json:"name"`
	URL    string `yaml:"url" json:"url"`
	Handle string `yaml:"handle" json:"handle"`
}

type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Short       string   `yaml:"short" json:"short"`
	Terminal    string   `yaml:"terminal,omitempty" json:"-"`
	Description string   `yaml:"description" json:"description"`
	Tags        []string `yaml:"tags" json:"tags"`
	Link        string   `yaml:"link" json:"link"`
	GitHub      string   `yaml:"github" json:"github"`
}

// TerminalName is the name the terminal lists the project under.
func (p Project) TerminalName() string {
	if p.Terminal != "" {
		return p.Terminal
	}
	return p.Title
}

type Experience struct {
	Company      string   `yaml:"company" json:"company"`
	Role         string   `yaml:"role" json:"role"`
	Period       string   `yaml:"period" json:"period"`
	Description  []string `yaml:"description" json:"description"`
	Technologies []string `yaml:"technologies" json:"technologies"`
}

// SkillGroup keeps categories in the order they are written.
type SkillGroup struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

type SkillLevel struct {
	Name  string `yaml:"name" json:"name"`
	Level int    `yaml:"level" json:"level"`
}

type Portfolio struct {
	Profile     Profile      `yaml:"profile" json:"profile"`
	Socials     []Social     `yaml:"socials" json:"socials"`
	Projects    []Project    `yaml:"projects" json:"projects"`
	Experiences []Experience `yaml:"experiences" json:"experiences"`
	Skills      []SkillGroup `yaml:"skills" json:"skills"`
	SkillLevels []SkillLevel `yaml:"skill_levels" json:"skillLevels"`
}

// Load decodes the embedded content.
func Load() (*Portfolio, error) {
	return Parse(raw)
}

// Parse decodes and validates a content document.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Portfolio) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Profile.Name) == "" {
		errs = append(errs, errors.New("profile: missing name"))
	}
	if p.Profile.Email == "" {
		errs = append(errs, errors.New("profile: missing email"))
	}
	for i, pr := range p.Projects {
		if pr.Title == "" {
			errs = append(errs, fmt.Errorf("project %d: missing title", i))
		}
	}
	for i, e := range p.Experiences {
		if e.Company == "" || e.Role == "" {
			errs = append(errs, fmt.Errorf("experience %d: missing company or role", i))
		}
	}
	for _, s := range p.SkillLevels {
		if s.Level < 0 || s.Level > 100 {
			errs = append(errs, fmt.Errorf("skill %q: level %d outside 0..100", s.Name, s.Level))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid content: %w", err)
	}
	return nil
}
