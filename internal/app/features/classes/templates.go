// internal/app/features/classes/templates.go
package classes

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "classes",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
