// internal/app/features/announcements/routes.go
package announcements

import (
	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /announcements subrouter. Every signed-in user can
// read; only admins write.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.List)

	r.Group(func(mr chi.Router) {
		mr.Use(sm.RequireRole(models.RoleAdmin))
		mr.Get("/new", h.ShowNew)
		mr.Post("/new", h.Create)
		mr.Get("/{id}/edit", h.ShowEdit)
		mr.Post("/{id}", h.Update)
		mr.Post("/{id}/delete", h.Delete)
	})

	r.Get("/{id}", h.Show)

	return r
}
