// internal/app/features/timetable/templates.go
package timetable

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "timetable",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
