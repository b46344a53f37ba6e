// internal/app/features/leaves/leaves.go
package leaves

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dmcateer/classtrack/internal/app/policy/leavepolicy"
	leavestore "github.com/dmcateer/classtrack/internal/app/store/leaves"
	"github.com/dmcateer/classtrack/internal/app/store/queries/leaveview"
	"github.com/dmcateer/classtrack/internal/app/system/authz"
	"github.com/dmcateer/classtrack/internal/app/system/htmlsanitize"
	"github.com/dmcateer/classtrack/internal/app/system/viewdata"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

// leaveRow is one leave request in a list.
type leaveRow struct {
	ID          string
	StudentName string
	StartDate   string
	EndDate     string
	Reason      string
	Status      string
	SentTo      string
	DeciderName string
	Pending     bool
}

// ListVM is the view model for both the student's own list and the
// admin/teacher inbox.
type ListVM struct {
	viewdata.BaseVM
	Items     []leaveRow
	Inbox     bool
	CanFile   bool
	CanDecide bool
	Success   string
}

// List displays leave requests. Students see their own; admins and
// teachers see the inbox for their recipient scope.
// GET /leaves
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	vm := ListVM{
		BaseVM:  viewdata.NewBaseVM(r, "Leave Requests", "/dashboard"),
		CanFile: leavepolicy.CanFile(r),
	}

	switch r.URL.Query().Get("success") {
	case "filed":
		vm.Success = "Leave request submitted"
	case "approved":
		vm.Success = "Leave request approved"
	case "rejected":
		vm.Success = "Leave request rejected"
	}

	var rows []leaveview.Row
	var err error
	switch role {
	case models.RoleAdmin:
		rows, err = leaveview.ForScope(r.Context(), h.DB, models.LeaveSentToAdmin)
		vm.Inbox = true
		vm.CanDecide = true
	case models.RoleTeacher:
		rows, err = leaveview.ForScope(r.Context(), h.DB, models.LeaveSentToTeacher)
		vm.Inbox = true
		vm.CanDecide = true
	default:
		rows, err = leaveview.ForStudent(r.Context(), h.DB, userID)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list leave requests failed", err, "A database error occurred.", "/dashboard")
		return
	}

	for _, row := range rows {
		vm.Items = append(vm.Items, leaveRow{
			ID:          row.Leave.ID.Hex(),
			StudentName: row.StudentName,
			StartDate:   row.Leave.StartDate,
			EndDate:     row.Leave.EndDate,
			Reason:      row.Leave.Reason,
			Status:      row.Leave.Status,
			SentTo:      row.Leave.SentTo,
			DeciderName: row.DeciderName,
			Pending:     row.Leave.Status == models.LeavePending,
		})
	}

	templates.Render(w, r, "leaves/list", vm)
}

// NewVM is the view model for the new leave request form.
type NewVM struct {
	viewdata.BaseVM
	StartDate string
	EndDate   string
	Reason    string
	SentTo    string
	Error     string
}

// ShowNew displays the new leave request form.
// GET /leaves/new
func (h *Handler) ShowNew(w http.ResponseWriter, r *http.Request) {
	if !leavepolicy.CanFile(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	vm := NewVM{
		BaseVM: viewdata.NewBaseVM(r, "Request Leave", "/leaves"),
		SentTo: models.LeaveSentToTeacher,
	}
	templates.Render(w, r, "leaves/new", vm)
}

// Create files a leave request. The reason is stripped of any markup
// before storage.
// POST /leaves/new
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !leavepolicy.CanFile(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/leaves")
		return
	}

	_, _, studentID, _ := authz.UserCtx(r)

	start := strings.TrimSpace(r.FormValue("start_date"))
	end := strings.TrimSpace(r.FormValue("end_date"))
	reason := htmlsanitize.SanitizeText(strings.TrimSpace(r.FormValue("reason")))
	sentTo := r.FormValue("sent_to")

	renderErr := func(msg string) {
		vm := NewVM{
			BaseVM:    viewdata.NewBaseVM(r, "Request Leave", "/leaves"),
			StartDate: start,
			EndDate:   end,
			Reason:    reason,
			SentTo:    sentTo,
			Error:     msg,
		}
		templates.Render(w, r, "leaves/new", vm)
	}

	startT, err := time.Parse(dateLayout, start)
	if err != nil {
		renderErr("Start date is required")
		return
	}
	endT, err := time.Parse(dateLayout, end)
	if err != nil {
		renderErr("End date is required")
		return
	}
	if endT.Before(startT) {
		renderErr("End date must not be before the start date")
		return
	}
	if reason == "" {
		renderErr("Please give a reason")
		return
	}

	_, err = h.Store.Create(r.Context(), models.LeaveRequest{
		StudentID: studentID,
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
		SentTo:    sentTo,
	})
	if err != nil {
		if err == leavestore.ErrInvalidScope {
			renderErr("Please choose who should review the request")
			return
		}
		h.ErrLog.LogServerError(w, r, "create leave request failed", err, "A database error occurred.", "/leaves")
		return
	}

	http.Redirect(w, r, "/leaves?success=filed", http.StatusSeeOther)
}

// Approve marks a pending request approved.
// POST /leaves/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.LeaveApproved, "approved")
}

// Reject marks a pending request rejected.
// POST /leaves/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.LeaveRejected, "rejected")
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, status, successCode string) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	leave, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if !leavepolicy.CanDecide(r, leave.SentTo) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}

	_, _, deciderID, _ := authz.UserCtx(r)
	if err := h.Store.SetStatus(r.Context(), id, status, deciderID); err != nil {
		h.ErrLog.LogServerError(w, r, "set leave status failed", err, "A database error occurred.", "/leaves")
		return
	}

	http.Redirect(w, r, "/leaves?success="+successCode, http.StatusSeeOther)
}
