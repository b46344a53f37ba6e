// internal/app/features/students/routes.go
package students

import (
	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /students subrouter. Staff can browse the roster;
// only admins add or remove accounts.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Group(func(vr chi.Router) {
		vr.Use(sm.RequireRole(models.RoleAdmin, models.RoleTeacher))
		vr.Get("/", h.List)
	})

	r.Group(func(mr chi.Router) {
		mr.Use(sm.RequireRole(models.RoleAdmin))
		mr.Get("/new", h.ShowNew)
		mr.Post("/new", h.Create)
		mr.Post("/{id}/delete", h.Delete)
	})

	return r
}
