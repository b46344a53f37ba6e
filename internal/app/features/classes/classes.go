// internal/app/features/classes/classes.go
package classes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	classstore "github.com/dmcateer/classtrack/internal/app/store/classes"
	"github.com/dmcateer/classtrack/internal/app/system/authz"
	"github.com/dmcateer/classtrack/internal/app/system/viewdata"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// classRow represents one class in the list.
type classRow struct {
	ID         string
	Name       string
	Section    string
	GradeLevel int
	Students   int64
}

// ListVM is the view model for the class list.
type ListVM struct {
	viewdata.BaseVM
	Items   []classRow
	Success string
}

// List displays all classes, highest grade first.
// GET /classes
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListByGradeDesc(r.Context())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list classes failed", err, "A database error occurred.", "/")
		return
	}

	rows := make([]classRow, 0, len(items))
	for _, c := range items {
		n, err := h.Enrollments.CountForClass(r.Context(), c.ID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "count enrollments failed", err, "A database error occurred.", "/classes")
			return
		}
		rows = append(rows, classRow{
			ID:         c.ID.Hex(),
			Name:       c.Name,
			Section:    c.Section,
			GradeLevel: c.GradeLevel,
			Students:   n,
		})
	}

	vm := ListVM{
		BaseVM: viewdata.NewBaseVM(r, "Classes", "/dashboard"),
		Items:  rows,
	}

	switch r.URL.Query().Get("success") {
	case "created":
		vm.Success = "Class created successfully"
	case "updated":
		vm.Success = "Class updated successfully"
	case "deleted":
		vm.Success = "Class deleted"
	}

	templates.Render(w, r, "classes/list", vm)
}

// FormVM is the view model for the new/edit class forms.
type FormVM struct {
	viewdata.BaseVM
	ID         string
	ClassName  string
	Section    string
	GradeLevel string
	Error      string
}

// ShowNew displays the new class form.
// GET /classes/new
func (h *Handler) ShowNew(w http.ResponseWriter, r *http.Request) {
	vm := FormVM{
		BaseVM: viewdata.NewBaseVM(r, "New Class", "/classes"),
	}
	templates.Render(w, r, "classes/new", vm)
}

// Create creates a new class. The catalog check repeats the route guard so
// a stale form from a demoted account cannot write.
// POST /classes/new
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.CanManageCatalog(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/classes")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	section := strings.TrimSpace(r.FormValue("section"))
	gradeStr := strings.TrimSpace(r.FormValue("grade_level"))

	renderErr := func(msg string) {
		vm := FormVM{
			BaseVM:     viewdata.NewBaseVM(r, "New Class", "/classes"),
			ClassName:  name,
			Section:    section,
			GradeLevel: gradeStr,
			Error:      msg,
		}
		templates.Render(w, r, "classes/new", vm)
	}

	if name == "" {
		renderErr("Name is required")
		return
	}
	grade, err := strconv.Atoi(gradeStr)
	if err != nil || grade < 1 || grade > 12 {
		renderErr("Grade level must be a number between 1 and 12")
		return
	}

	_, err = h.Store.Create(r.Context(), models.Class{
		Name:       name,
		Section:    section,
		GradeLevel: grade,
	})
	if err != nil {
		if err == classstore.ErrDuplicateClass {
			renderErr("A class with that name and section already exists")
			return
		}
		h.ErrLog.LogServerError(w, r, "create class failed", err, "A database error occurred.", "/classes")
		return
	}

	http.Redirect(w, r, "/classes?success=created", http.StatusSeeOther)
}

// ShowEdit displays the edit form for a class.
// GET /classes/{id}/edit
func (h *Handler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	c, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	vm := FormVM{
		BaseVM:     viewdata.NewBaseVM(r, "Edit Class", "/classes"),
		ID:         c.ID.Hex(),
		ClassName:  c.Name,
		Section:    c.Section,
		GradeLevel: strconv.Itoa(c.GradeLevel),
	}
	templates.Render(w, r, "classes/edit", vm)
}

// Update applies edits to a class.
// POST /classes/{id}
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
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/classes")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	section := strings.TrimSpace(r.FormValue("section"))
	grade, convErr := strconv.Atoi(strings.TrimSpace(r.FormValue("grade_level")))

	if name == "" || convErr != nil || grade < 1 || grade > 12 {
		vm := FormVM{
			BaseVM:     viewdata.NewBaseVM(r, "Edit Class", "/classes"),
			ID:         id.Hex(),
			ClassName:  name,
			Section:    section,
			GradeLevel: r.FormValue("grade_level"),
			Error:      "Name and a grade level between 1 and 12 are required",
		}
		templates.Render(w, r, "classes/edit", vm)
		return
	}

	if err := h.Store.UpdateInfo(r.Context(), id, name, section, grade); err != nil {
		h.ErrLog.LogServerError(w, r, "update class failed", err, "A database error occurred.", "/classes")
		return
	}

	http.Redirect(w, r, "/classes?success=updated", http.StatusSeeOther)
}

// Delete removes a class along with its enrollments and timetable entries.
// POST /classes/{id}/delete
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
		h.ErrLog.LogServerError(w, r, "delete class failed", err, "A database error occurred.", "/classes")
		return
	}
	if _, err := h.Enrollments.DeleteByClass(r.Context(), id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete enrollments failed", err, "A database error occurred.", "/classes")
		return
	}
	if _, err := h.Timetable.DeleteByClass(r.Context(), id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete timetable entries failed", err, "A database error occurred.", "/classes")
		return
	}

	http.Redirect(w, r, "/classes?success=deleted", http.StatusSeeOther)
}
