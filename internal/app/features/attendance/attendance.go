// internal/app/features/attendance/attendance.go
package attendance

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dmcateer/classtrack/internal/app/policy/attendancepolicy"
	attendancestore "github.com/dmcateer/classtrack/internal/app/store/attendance"
	"github.com/dmcateer/classtrack/internal/app/store/queries/attendanceview"
	"github.com/dmcateer/classtrack/internal/app/system/authz"
	"github.com/dmcateer/classtrack/internal/app/system/viewdata"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dateLayout is the wire format for attendance dates.
const dateLayout = "2006-01-02"

// classOption is one entry in the class picker.
type classOption struct {
	ID       string
	Name     string
	Selected bool
}

// rosterRow is one student line on the marking sheet.
type rosterRow struct {
	StudentID string
	Name      string
	Status    string
}

// SheetVM is the view model for the marking sheet.
type SheetVM struct {
	viewdata.BaseVM
	Classes  []classOption
	ClassID  string
	Date     string
	Roster   []rosterRow
	Statuses []string
	CanMark  bool
	Success  string
	HasClass bool
}

// ServeSheet displays the marking sheet for a class and date. The date
// defaults to today; existing statuses prefill the sheet.
// GET /attendance?class=<id>&date=YYYY-MM-DD
func (h *Handler) ServeSheet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	classes, err := h.Classes.ListByGradeDesc(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list classes failed", err, "A database error occurred.", "/")
		return
	}

	selected := r.URL.Query().Get("class")
	if selected == "" && len(classes) > 0 {
		selected = classes[0].ID.Hex()
	}
	date := r.URL.Query().Get("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		date = time.Now().UTC().Format(dateLayout)
	}

	vm := SheetVM{
		BaseVM:   viewdata.NewBaseVM(r, "Attendance", "/dashboard"),
		ClassID:  selected,
		Date:     date,
		Statuses: []string{models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate},
		CanMark:  attendancepolicy.CanMark(r),
	}
	for _, c := range classes {
		vm.Classes = append(vm.Classes, classOption{
			ID:       c.ID.Hex(),
			Name:     c.DisplayName(),
			Selected: c.ID.Hex() == selected,
		})
	}

	if r.URL.Query().Get("success") == "saved" {
		vm.Success = "Attendance saved"
	}

	if selected != "" {
		classID, err := primitive.ObjectIDFromHex(selected)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		roster, err := attendanceview.Roster(ctx, h.DB, classID, date)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "load roster failed", err, "A database error occurred.", "/attendance")
			return
		}

		vm.HasClass = true
		for _, row := range roster {
			status := row.Status
			if status == "" {
				status = models.AttendancePresent
			}
			vm.Roster = append(vm.Roster, rosterRow{
				StudentID: row.Student.ID.Hex(),
				Name:      row.Student.FullName,
				Status:    status,
			})
		}
	}

	templates.Render(w, r, "attendance/sheet", vm)
}

// Save replaces the attendance batch for a class and date with the
// submitted sheet.
// POST /attendance
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	if !attendancepolicy.CanMark(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/attendance")
		return
	}

	classID, err := primitive.ObjectIDFromHex(r.FormValue("class_id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad class id", err, "Invalid class.", "/attendance")
		return
	}
	date := r.FormValue("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad date", err, "Invalid date.", "/attendance")
		return
	}

	_, _, markerID, _ := authz.UserCtx(r)

	var entries []attendancestore.Entry
	for _, hex := range r.Form["student_id"] {
		studentID, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "bad student id", err, "Invalid form data.", "/attendance")
			return
		}
		status := r.FormValue("status_" + hex)
		entries = append(entries, attendancestore.Entry{
			StudentID: studentID,
			Status:    status,
		})
	}

	if err := h.Store.ReplaceForClassDate(r.Context(), classID, date, markerID, entries); err != nil {
		if err == attendancestore.ErrInvalidStatus {
			h.ErrLog.LogBadRequest(w, r, "invalid attendance status", err, "Invalid attendance status.", "/attendance")
			return
		}
		h.ErrLog.LogServerError(w, r, "save attendance failed", err, "A database error occurred.", "/attendance")
		return
	}

	http.Redirect(w, r, "/attendance?class="+classID.Hex()+"&date="+date+"&success=saved", http.StatusSeeOther)
}

// historyRow is one line of a student's attendance history.
type historyRow struct {
	Date      string
	Status    string
	ClassName string
}

// HistoryVM is the view model for the history page.
type HistoryVM struct {
	viewdata.BaseVM
	StudentName string
	Rows        []historyRow
}

// ServeOwnHistory redirects a student to their own history page.
// GET /attendance/history
func (h *Handler) ServeOwnHistory(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/attendance/history/"+userID.Hex(), http.StatusSeeOther)
}

// ServeHistory displays the most recent attendance records for a student.
// GET /attendance/history/{studentID}
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	studentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "studentID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if !attendancepolicy.CanViewStudentHistory(r, studentID) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	student, err := h.Users.GetByID(r.Context(), studentID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	rows, err := attendanceview.StudentHistory(r.Context(), h.DB, studentID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load attendance history failed", err, "A database error occurred.", "/dashboard")
		return
	}

	vm := HistoryVM{
		BaseVM:      viewdata.NewBaseVM(r, "Attendance History", "/dashboard"),
		StudentName: student.FullName,
	}
	for _, row := range rows {
		vm.Rows = append(vm.Rows, historyRow{
			Date:      row.Date,
			Status:    row.Status,
			ClassName: row.ClassName,
		})
	}

	templates.Render(w, r, "attendance/history", vm)
}
