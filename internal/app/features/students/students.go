// internal/app/features/students/students.go
package students

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	enrollmentstore "github.com/dmcateer/classtrack/internal/app/store/enrollments"
	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"github.com/dmcateer/classtrack/internal/app/system/viewdata"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// studentRow represents one student in the roster.
type studentRow struct {
	ID      string
	Name    string
	Email   string
	Classes []string
}

// ListVM is the view model for the student roster.
type ListVM struct {
	viewdata.BaseVM
	Items   []studentRow
	Success string
}

// List displays all students with their class memberships.
// GET /students
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	students, err := h.Users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list students failed", err, "A database error occurred.", "/")
		return
	}

	classes, err := h.Classes.ListByGradeDesc(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list classes failed", err, "A database error occurred.", "/")
		return
	}
	classNames := make(map[primitive.ObjectID]string, len(classes))
	for _, c := range classes {
		classNames[c.ID] = c.DisplayName()
	}

	studentIDs := make([]primitive.ObjectID, 0, len(students))
	for _, s := range students {
		studentIDs = append(studentIDs, s.ID)
	}
	enrolled, err := h.Enrollments.ClassesForStudents(ctx, studentIDs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list enrollments failed", err, "A database error occurred.", "/students")
		return
	}

	rows := make([]studentRow, 0, len(students))
	for _, s := range students {
		var names []string
		for _, id := range enrolled[s.ID] {
			if name, ok := classNames[id]; ok {
				names = append(names, name)
			}
		}
		rows = append(rows, studentRow{
			ID:      s.ID.Hex(),
			Name:    s.FullName,
			Email:   s.Email,
			Classes: names,
		})
	}

	vm := ListVM{
		BaseVM: viewdata.NewBaseVM(r, "Students", "/dashboard"),
		Items:  rows,
	}

	switch r.URL.Query().Get("success") {
	case "created":
		vm.Success = "Student added successfully"
	case "deleted":
		vm.Success = "Student removed"
	case "enrolled":
		vm.Success = "Student enrolled"
	}

	templates.Render(w, r, "students/list", vm)
}

// classOption is one entry in the class picker.
type classOption struct {
	ID       string
	Name     string
	Selected bool
}

// NewVM is the view model for the add-student form.
type NewVM struct {
	viewdata.BaseVM
	FullName string
	Email    string
	Classes  []classOption
	Error    string
}

// ShowNew displays the add-student form. The class picker preselects the
// first class in grade order.
// GET /students/new
func (h *Handler) ShowNew(w http.ResponseWriter, r *http.Request) {
	opts, err := h.classOptions(r, "")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list classes failed", err, "A database error occurred.", "/students")
		return
	}

	vm := NewVM{
		BaseVM:  viewdata.NewBaseVM(r, "Add Student", "/students"),
		Classes: opts,
	}
	templates.Render(w, r, "students/new", vm)
}

// Create creates a student account and optionally enrolls it in a class.
// POST /students/new
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/students")
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	classID := r.FormValue("class_id")

	renderErr := func(msg string) {
		opts, optErr := h.classOptions(r, classID)
		if optErr != nil {
			h.ErrLog.LogServerError(w, r, "list classes failed", optErr, "A database error occurred.", "/students")
			return
		}
		vm := NewVM{
			BaseVM:   viewdata.NewBaseVM(r, "Add Student", "/students"),
			FullName: fullName,
			Email:    email,
			Classes:  opts,
			Error:    msg,
		}
		templates.Render(w, r, "students/new", vm)
	}

	if fullName == "" || email == "" || password == "" {
		renderErr("Name, email, and password are required")
		return
	}
	if len(password) < 8 {
		renderErr("Password must be at least 8 characters")
		return
	}

	created, err := h.Users.CreateWithPassword(r.Context(), models.User{
		FullName: fullName,
		Email:    email,
		Role:     models.RoleStudent,
	}, password)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			renderErr("An account with that email already exists")
			return
		}
		h.ErrLog.LogServerError(w, r, "create student failed", err, "A database error occurred.", "/students")
		return
	}

	if classID != "" {
		cid, err := primitive.ObjectIDFromHex(classID)
		if err != nil {
			renderErr("Invalid class selection")
			return
		}
		if _, err := h.Enrollments.Enroll(r.Context(), created.ID, cid); err != nil && !errors.Is(err, enrollmentstore.ErrAlreadyEnrolled) {
			h.ErrLog.LogServerError(w, r, "enroll student failed", err, "A database error occurred.", "/students")
			return
		}
	}

	http.Redirect(w, r, "/students?success=created", http.StatusSeeOther)
}

// Delete removes a student account and its enrollments.
// POST /students/{id}/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := h.Users.Delete(r.Context(), id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete student failed", err, "A database error occurred.", "/students")
		return
	}

	classIDs, err := h.Enrollments.ClassIDsForStudent(r.Context(), id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list enrollments failed", err, "A database error occurred.", "/students")
		return
	}
	for _, cid := range classIDs {
		if _, err := h.Enrollments.Unenroll(r.Context(), id, cid); err != nil {
			h.ErrLog.LogServerError(w, r, "unenroll student failed", err, "A database error occurred.", "/students")
			return
		}
	}

	http.Redirect(w, r, "/students?success=deleted", http.StatusSeeOther)
}

// classOptions builds the class picker, preselecting selectedID or the
// first class when selectedID is empty.
func (h *Handler) classOptions(r *http.Request, selectedID string) ([]classOption, error) {
	classes, err := h.Classes.ListByGradeDesc(r.Context())
	if err != nil {
		return nil, err
	}

	opts := make([]classOption, 0, len(classes))
	for i, c := range classes {
		sel := c.ID.Hex() == selectedID
		if selectedID == "" && i == 0 {
			sel = true
		}
		opts = append(opts, classOption{
			ID:       c.ID.Hex(),
			Name:     c.DisplayName(),
			Selected: sel,
		})
	}
	return opts, nil
}
