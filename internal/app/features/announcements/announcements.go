// internal/app/features/announcements/announcements.go
package announcements

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dmcateer/classtrack/internal/app/system/authz"
	"github.com/dmcateer/classtrack/internal/app/system/htmlsanitize"
	"github.com/dmcateer/classtrack/internal/app/system/viewdata"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// announcementRow represents an announcement in the list.
type announcementRow struct {
	ID     string
	Title  string
	Posted string
}

// ListVM is the view model for the announcements list.
type ListVM struct {
	viewdata.BaseVM
	Items   []announcementRow
	IsAdmin bool
	Success string
}

// List displays all announcements, newest first.
// GET /announcements
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.List(r.Context())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list announcements failed", err, "A database error occurred.", "/")
		return
	}

	rows := make([]announcementRow, 0, len(items))
	for _, a := range items {
		rows = append(rows, announcementRow{
			ID:     a.ID.Hex(),
			Title:  a.Title,
			Posted: a.CreatedAt.Format("Jan 2, 2006"),
		})
	}

	vm := ListVM{
		BaseVM:  viewdata.NewBaseVM(r, "Announcements", "/dashboard"),
		Items:   rows,
		IsAdmin: authz.IsAdmin(r),
	}

	switch r.URL.Query().Get("success") {
	case "created":
		vm.Success = "Announcement created successfully"
	case "updated":
		vm.Success = "Announcement updated successfully"
	case "deleted":
		vm.Success = "Announcement deleted"
	}

	templates.Render(w, r, "announcements/list", vm)
}

// ShowVM is the view model for a single announcement.
type ShowVM struct {
	viewdata.BaseVM
	ID       string
	AnnTitle string
	Content  string
	Posted   string
	IsAdmin  bool
}

// Show displays a single announcement.
// GET /announcements/{id}
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	a, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	vm := ShowVM{
		BaseVM:   viewdata.NewBaseVM(r, "View Announcement", "/announcements"),
		ID:       a.ID.Hex(),
		AnnTitle: a.Title,
		Content:  a.Content,
		Posted:   a.CreatedAt.Format("Jan 2, 2006 3:04 PM"),
		IsAdmin:  authz.IsAdmin(r),
	}

	templates.Render(w, r, "announcements/show", vm)
}

// FormVM is the view model for the new/edit forms.
type FormVM struct {
	viewdata.BaseVM
	ID       string
	AnnTitle string
	Content  string
	Error    string
}

// ShowNew displays the new announcement form.
// GET /announcements/new
func (h *Handler) ShowNew(w http.ResponseWriter, r *http.Request) {
	vm := FormVM{
		BaseVM: viewdata.NewBaseVM(r, "New Announcement", "/announcements"),
	}
	templates.Render(w, r, "announcements/new", vm)
}

// Create creates a new announcement. The content keeps basic formatting
// markup; everything else is stripped.
// POST /announcements/new
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/announcements")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("content")))

	if title == "" {
		vm := FormVM{
			BaseVM:   viewdata.NewBaseVM(r, "New Announcement", "/announcements"),
			AnnTitle: title,
			Content:  content,
			Error:    "Title is required",
		}
		templates.Render(w, r, "announcements/new", vm)
		return
	}

	_, _, userID, _ := authz.UserCtx(r)
	_, err := h.Store.Create(r.Context(), models.Announcement{
		Title:     title,
		Content:   content,
		CreatedBy: userID,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create announcement failed", err, "A database error occurred.", "/announcements")
		return
	}

	http.Redirect(w, r, "/announcements?success=created", http.StatusSeeOther)
}

// ShowEdit displays the edit form.
// GET /announcements/{id}/edit
func (h *Handler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	a, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	vm := FormVM{
		BaseVM:   viewdata.NewBaseVM(r, "Edit Announcement", "/announcements"),
		ID:       a.ID.Hex(),
		AnnTitle: a.Title,
		Content:  a.Content,
	}
	templates.Render(w, r, "announcements/edit", vm)
}

// Update applies edits to an announcement.
// POST /announcements/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/announcements")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := htmlsanitize.Sanitize(strings.TrimSpace(r.FormValue("content")))

	if title == "" {
		vm := FormVM{
			BaseVM:   viewdata.NewBaseVM(r, "Edit Announcement", "/announcements"),
			ID:       id.Hex(),
			AnnTitle: title,
			Content:  content,
			Error:    "Title is required",
		}
		templates.Render(w, r, "announcements/edit", vm)
		return
	}

	if err := h.Store.Update(r.Context(), id, title, content); err != nil {
		h.ErrLog.LogServerError(w, r, "update announcement failed", err, "A database error occurred.", "/announcements")
		return
	}

	http.Redirect(w, r, "/announcements?success=updated", http.StatusSeeOther)
}

// Delete removes an announcement.
// POST /announcements/{id}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := h.Store.Delete(r.Context(), id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete announcement failed", err, "A database error occurred.", "/announcements")
		return
	}

	http.Redirect(w, r, "/announcements?success=deleted", http.StatusSeeOther)
}
