package main

import (
	"html/template"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pankajydv07/portfolio/internal/content"
)

// Page copy that is not part of the portfolio content.
const (
	footerNote   = "Built with Go, Gin and HTMX."
	terminalHint = "Press ` to open the terminal"
)

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"firstName": func(name string) string {
		if f := strings.Fields(name); len(f) > 0 {
			return f[0]
		}
		return name
	},
	// percent keeps skill bars inside their track.
	"percent": func(level int) int {
		return min(max(level, 0), 100)
	},
}

func pageData(p *content.Portfolio) gin.H {
	return gin.H{
		"title":        p.Profile.Name + " | " + p.Profile.Role,
		"description":  p.Profile.Intro,
		"profile":      p.Profile,
		"socials":      p.Socials,
		"projects":     p.Projects,
		"experiences":  p.Experiences,
		"skills":       p.Skills,
		"skillLevels":  p.SkillLevels,
		"footerNote":   footerNote,
		"terminalHint": terminalHint,
	}
}
