// internal/app/features/timetable/timetable.go
package timetable

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dmcateer/classtrack/internal/app/store/queries/timetablegrid"
	"github.com/dmcateer/classtrack/internal/app/system/authz"
	"github.com/dmcateer/classtrack/internal/app/system/schedule"
	"github.com/dmcateer/classtrack/internal/app/system/viewdata"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pickerOption is one entry in a select box.
type pickerOption struct {
	ID       string
	Name     string
	Selected bool
}

// gridCell is one rendered cell of the timetable grid.
type gridCell struct {
	ID          string
	SubjectName string
	TeacherName string
	Room        string
}

// gridColumn is one weekday column.
type gridColumn struct {
	Day    int
	Name   string
	Abbrev string
}

// gridRow is one time-slot row across all display days.
type gridRow struct {
	Slot  string
	Label string
	Cells []*gridCell
}

// GridVM is the view model for the timetable grid page.
type GridVM struct {
	viewdata.BaseVM
	Classes  []pickerOption
	ClassID  string
	Columns  []gridColumn
	Rows     []gridRow
	Success  string
	HasClass bool

	// Teachers viewing the grid don't need the teacher name repeated in
	// every cell; everyone else sees it.
	ShowTeacher bool
}

// ServeGrid displays the weekly grid for the selected class. With no class
// query parameter the first class in grade order is shown.
// GET /timetable?class=<id>
func (h *Handler) ServeGrid(w http.ResponseWriter, r *http.Request) {
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

	vm := GridVM{
		BaseVM:      viewdata.NewBaseVM(r, "Timetable", "/dashboard"),
		ClassID:     selected,
		ShowTeacher: !authz.IsTeacher(r),
	}
	for _, c := range classes {
		vm.Classes = append(vm.Classes, pickerOption{
			ID:       c.ID.Hex(),
			Name:     c.DisplayName(),
			Selected: c.ID.Hex() == selected,
		})
	}

	switch r.URL.Query().Get("success") {
	case "created":
		vm.Success = "Period added to the timetable"
	case "deleted":
		vm.Success = "Period removed"
	}

	if selected != "" {
		classID, err := primitive.ObjectIDFromHex(selected)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		grid, err := timetablegrid.Assemble(ctx, h.DB, classID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "assemble timetable grid failed", err, "A database error occurred.", "/timetable")
			return
		}

		vm.HasClass = true
		for _, day := range grid.Days {
			vm.Columns = append(vm.Columns, gridColumn{
				Day:    day,
				Name:   schedule.DayName(day),
				Abbrev: schedule.DayAbbrev(day),
			})
		}
		for _, slot := range grid.Slots {
			row := gridRow{
				Slot:  slot,
				Label: schedule.FormatHour(slot),
			}
			for _, day := range grid.Days {
				if p := grid.Cell(day, slot); p != nil {
					row.Cells = append(row.Cells, &gridCell{
						ID:          p.ID.Hex(),
						SubjectName: p.SubjectName,
						TeacherName: p.TeacherName,
						Room:        p.Room,
					})
				} else {
					row.Cells = append(row.Cells, nil)
				}
			}
			vm.Rows = append(vm.Rows, row)
		}
	}

	templates.Render(w, r, "timetable/grid", vm)
}

// dayOption is one weekday in the entry form.
type dayOption struct {
	Day  int
	Name string
}

// NewVM is the view model for the add-period form.
type NewVM struct {
	viewdata.BaseVM
	ClassID  string
	Classes  []pickerOption
	Subjects []pickerOption
	Teachers []pickerOption
	Days     []dayOption
	Slots    []string
	Room     string
	Error    string
}

// ShowNew displays the add-period form.
// GET /timetable/new?class=<id>
func (h *Handler) ShowNew(w http.ResponseWriter, r *http.Request) {
	vm, err := h.buildNewVM(r, r.URL.Query().Get("class"), "")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "build timetable form failed", err, "A database error occurred.", "/timetable")
		return
	}
	templates.Render(w, r, "timetable/new", vm)
}

// Create adds a period to a class timetable. Overlapping entries are
// allowed; the grid shows whichever was stored first. The catalog check
// repeats the route guard so a stale form from a demoted account cannot
// write.
// POST /timetable/new
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.CanManageCatalog(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/timetable")
		return
	}

	classHex := r.FormValue("class_id")
	subjectHex := r.FormValue("subject_id")
	teacherHex := r.FormValue("teacher_id")
	dayStr := r.FormValue("day_of_week")
	start := strings.TrimSpace(r.FormValue("start_time"))
	end := strings.TrimSpace(r.FormValue("end_time"))
	room := strings.TrimSpace(r.FormValue("room"))

	renderErr := func(msg string) {
		vm, err := h.buildNewVM(r, classHex, msg)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "build timetable form failed", err, "A database error occurred.", "/timetable")
			return
		}
		vm.Room = room
		templates.Render(w, r, "timetable/new", vm)
	}

	classID, err := primitive.ObjectIDFromHex(classHex)
	if err != nil {
		renderErr("Please choose a class")
		return
	}
	subjectID, err := primitive.ObjectIDFromHex(subjectHex)
	if err != nil {
		renderErr("Please choose a subject")
		return
	}

	var teacherID primitive.ObjectID
	if teacherHex != "" {
		if teacherID, err = primitive.ObjectIDFromHex(teacherHex); err != nil {
			renderErr("Invalid teacher selection")
			return
		}
	}

	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 0 || day > 6 {
		renderErr("Please choose a weekday")
		return
	}
	if !validSlot(start) {
		renderErr("Please choose a start time")
		return
	}
	if end == "" {
		end = nextHour(start)
	}

	_, err = h.Store.Create(r.Context(), models.TimetableEntry{
		ClassID:   classID,
		SubjectID: subjectID,
		TeacherID: teacherID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Room:      room,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create timetable entry failed", err, "A database error occurred.", "/timetable")
		return
	}

	http.Redirect(w, r, "/timetable?class="+classHex+"&success=created", http.StatusSeeOther)
}

// Delete removes a period from the grid.
// POST /timetable/{id}/delete
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

	entry, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := h.Store.Delete(r.Context(), id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete timetable entry failed", err, "A database error occurred.", "/timetable")
		return
	}

	http.Redirect(w, r, "/timetable?class="+entry.ClassID.Hex()+"&success=deleted", http.StatusSeeOther)
}

func (h *Handler) buildNewVM(r *http.Request, selectedClass, errMsg string) (NewVM, error) {
	ctx := r.Context()

	vm := NewVM{
		BaseVM:  viewdata.NewBaseVM(r, "Add Period", "/timetable"),
		ClassID: selectedClass,
		Slots:   schedule.TimeSlots(),
		Error:   errMsg,
	}

	classes, err := h.Classes.ListByGradeDesc(ctx)
	if err != nil {
		return vm, err
	}
	if selectedClass == "" && len(classes) > 0 {
		selectedClass = classes[0].ID.Hex()
		vm.ClassID = selectedClass
	}
	for _, c := range classes {
		vm.Classes = append(vm.Classes, pickerOption{
			ID:       c.ID.Hex(),
			Name:     c.DisplayName(),
			Selected: c.ID.Hex() == selectedClass,
		})
	}

	subjects, err := h.Subjects.ListByName(ctx)
	if err != nil {
		return vm, err
	}
	for _, s := range subjects {
		vm.Subjects = append(vm.Subjects, pickerOption{ID: s.ID.Hex(), Name: s.Name})
	}

	teachers, err := h.Users.ListByRole(ctx, models.RoleTeacher)
	if err != nil {
		return vm, err
	}
	for _, u := range teachers {
		vm.Teachers = append(vm.Teachers, pickerOption{ID: u.ID.Hex(), Name: u.FullName})
	}

	for _, day := range schedule.DisplayDays() {
		vm.Days = append(vm.Days, dayOption{Day: day, Name: schedule.DayName(day)})
	}

	return vm, nil
}

func validSlot(t string) bool {
	for _, s := range schedule.TimeSlots() {
		if s == t {
			return true
		}
	}
	return false
}

// nextHour returns the end of the hour slot beginning at start.
func nextHour(start string) string {
	hour, err := strconv.Atoi(start[:2])
	if err != nil {
		return start
	}
	return fmt.Sprintf("%02d:00", hour+1)
}
