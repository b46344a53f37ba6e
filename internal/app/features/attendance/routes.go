// internal/app/features/attendance/routes.go
package attendance

import (
	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /attendance subrouter. Staff mark and export; every
// signed-in user can reach history, with per-student checks in the handler.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/history", h.ServeOwnHistory)
	r.Get("/history/{studentID}", h.ServeHistory)

	r.Group(func(mr chi.Router) {
		mr.Use(sm.RequireRole(models.RoleAdmin, models.RoleTeacher))
		mr.Get("/", h.ServeSheet)
		mr.Post("/", h.Save)
		mr.Get("/export", h.ExportCSV)
	})

	return r
}
