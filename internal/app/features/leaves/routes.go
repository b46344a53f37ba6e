// internal/app/features/leaves/routes.go
package leaves

import (
	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /leaves subrouter. Role checks beyond sign-in happen
// in the handlers because list and decide depend on the request's scope.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.List)
	r.Get("/new", h.ShowNew)
	r.Post("/new", h.Create)
	r.Post("/{id}/approve", h.Approve)
	r.Post("/{id}/reject", h.Reject)

	return r
}
