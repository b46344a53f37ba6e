// internal/app/features/subjects/subjects.go
package subjects

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	subjectstore "github.com/dmcateer/classtrack/internal/app/store/subjects"
	"github.com/dmcateer/classtrack/internal/app/system/authz"
	"github.com/dmcateer/classtrack/internal/app/system/viewdata"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// subjectRow represents one subject in the list.
type subjectRow struct {
	ID   string
	Name string
	Code string
}

// ListVM is the view model for the subject list.
type ListVM struct {
	viewdata.BaseVM
	Items   []subjectRow
	Success string
}

// List displays all subjects alphabetically.
// GET /subjects
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListByName(r.Context())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list subjects failed", err, "A database error occurred.", "/")
		return
	}

	rows := make([]subjectRow, 0, len(items))
	for _, s := range items {
		rows = append(rows, subjectRow{
			ID:   s.ID.Hex(),
			Name: s.Name,
			Code: s.Code,
		})
	}

	vm := ListVM{
		BaseVM: viewdata.NewBaseVM(r, "Subjects", "/dashboard"),
		Items:  rows,
	}

	switch r.URL.Query().Get("success") {
	case "created":
		vm.Success = "Subject created successfully"
	case "updated":
		vm.Success = "Subject updated successfully"
	case "deleted":
		vm.Success = "Subject deleted"
	}

	templates.Render(w, r, "subjects/list", vm)
}

// FormVM is the view model for the new/edit subject forms.
type FormVM struct {
	viewdata.BaseVM
	ID          string
	SubjectName string
	Code        string
	Error       string
}

// ShowNew displays the new subject form.
// GET /subjects/new
func (h *Handler) ShowNew(w http.ResponseWriter, r *http.Request) {
	vm := FormVM{
		BaseVM: viewdata.NewBaseVM(r, "New Subject", "/subjects"),
	}
	templates.Render(w, r, "subjects/new", vm)
}

// Create creates a new subject. The catalog check repeats the route guard
// so a stale form from a demoted account cannot write.
// POST /subjects/new
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.CanManageCatalog(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/subjects")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	code := strings.TrimSpace(r.FormValue("code"))

	renderErr := func(msg string) {
		vm := FormVM{
			BaseVM:      viewdata.NewBaseVM(r, "New Subject", "/subjects"),
			SubjectName: name,
			Code:        code,
			Error:       msg,
		}
		templates.Render(w, r, "subjects/new", vm)
	}

	if name == "" {
		renderErr("Name is required")
		return
	}

	_, err := h.Store.Create(r.Context(), models.Subject{Name: name, Code: code})
	if err != nil {
		if err == subjectstore.ErrDuplicateSubjectName {
			renderErr("A subject with that name already exists")
			return
		}
		h.ErrLog.LogServerError(w, r, "create subject failed", err, "A database error occurred.", "/subjects")
		return
	}

	http.Redirect(w, r, "/subjects?success=created", http.StatusSeeOther)
}

// ShowEdit displays the edit form for a subject.
// GET /subjects/{id}/edit
func (h *Handler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	vm := FormVM{
		BaseVM:      viewdata.NewBaseVM(r, "Edit Subject", "/subjects"),
		ID:          s.ID.Hex(),
		SubjectName: s.Name,
		Code:        s.Code,
	}
	templates.Render(w, r, "subjects/edit", vm)
}

// Update applies edits to a subject.
// POST /subjects/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !authz.CanManageCatalog(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/subjects")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	code := strings.TrimSpace(r.FormValue("code"))

	if name == "" {
		vm := FormVM{
			BaseVM:      viewdata.NewBaseVM(r, "Edit Subject", "/subjects"),
			ID:          id.Hex(),
			SubjectName: name,
			Code:        code,
			Error:       "Name is required",
		}
		templates.Render(w, r, "subjects/edit", vm)
		return
	}

	if err := h.Store.UpdateInfo(r.Context(), id, name, code); err != nil {
		h.ErrLog.LogServerError(w, r, "update subject failed", err, "A database error occurred.", "/subjects")
		return
	}

	http.Redirect(w, r, "/subjects?success=updated", http.StatusSeeOther)
}

// Delete removes a subject. Timetable entries that reference it keep the
// dangling id; the grid shows them with an empty subject name.
// POST /subjects/{id}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authz.CanManageCatalog(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := h.Store.Delete(r.Context(), id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete subject failed", err, "A database error occurred.", "/subjects")
		return
	}

	http.Redirect(w, r, "/subjects?success=deleted", http.StatusSeeOther)
}
