// internal/app/features/timetable/routes.go
package timetable

import (
	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /timetable subrouter. Everyone signed in can view the
// grid; only admins and teachers edit it.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeGrid)

	r.Group(func(mr chi.Router) {
		mr.Use(sm.RequireRole(models.RoleAdmin, models.RoleTeacher))
		mr.Get("/new", h.ShowNew)
		mr.Post("/new", h.Create)
		mr.Post("/{id}/delete", h.Delete)
	})

	return r
}
