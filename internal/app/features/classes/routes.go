// internal/app/features/classes/routes.go
package classes

import (
	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /classes subrouter. Everyone signed in can browse;
// only admins and teachers can change the catalog.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.List)

	r.Group(func(mr chi.Router) {
		mr.Use(sm.RequireRole(models.RoleAdmin, models.RoleTeacher))
		mr.Get("/new", h.ShowNew)
		mr.Post("/new", h.Create)
		mr.Get("/{id}/edit", h.ShowEdit)
		mr.Post("/{id}", h.Update)
		mr.Post("/{id}/delete", h.Delete)
	})

	return r
}
