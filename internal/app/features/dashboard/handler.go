// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	announcementstore "github.com/dmcateer/classtrack/internal/app/store/announcements"
	attendancestore "github.com/dmcateer/classtrack/internal/app/store/attendance"
	classstore "github.com/dmcateer/classtrack/internal/app/store/classes"
	enrollmentstore "github.com/dmcateer/classtrack/internal/app/store/enrollments"
	leavestore "github.com/dmcateer/classtrack/internal/app/store/leaves"
	subjectstore "github.com/dmcateer/classtrack/internal/app/store/subjects"
	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"github.com/dmcateer/classtrack/internal/app/system/authz"
	"github.com/dmcateer/classtrack/internal/app/system/viewdata"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// recentAnnouncements is how many notices the dashboard shows.
const recentAnnouncements = 5

// Handler owns the role-aware dashboard.
type Handler struct {
	DB            *mongo.Database
	Users         *userstore.Store
	Classes       *classstore.Store
	Subjects      *subjectstore.Store
	Enrollments   *enrollmentstore.Store
	Attendance    *attendancestore.Store
	Leaves        *leavestore.Store
	Announcements *announcementstore.Store
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
}

// NewHandler constructs a dashboard Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Users:         userstore.New(db),
		Classes:       classstore.New(db),
		Subjects:      subjectstore.New(db),
		Enrollments:   enrollmentstore.New(db),
		Attendance:    attendancestore.New(db),
		Leaves:        leavestore.New(db),
		Announcements: announcementstore.New(db),
		Log:           logger,
		ErrLog:        errLog,
	}
}

type announcementRow struct {
	ID      string
	Title   string
	Posted  string
	Content string
}

// dashboardVM carries the counters for every role; the template only reads
// the section matching .Role.
type dashboardVM struct {
	viewdata.BaseVM

	// Admin counters
	StudentCount int64
	TeacherCount int64
	ParentCount  int64
	ClassCount   int64
	SubjectCount int64

	// Admin/teacher inbox counter
	PendingLeaves int64

	// Share of today's attendance records marked present, as a whole
	// percentage. MarkedToday distinguishes "0%" from "nothing marked yet".
	AttendanceRate int64
	MarkedToday    bool

	// Student counters
	EnrolledClassCount int64

	Recent []announcementRow
}

// Serve handles GET /dashboard.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx := r.Context()
	vm := dashboardVM{
		BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/"),
	}

	var err error
	switch role {
	case models.RoleAdmin:
		if vm.StudentCount, err = h.Users.CountByRole(ctx, models.RoleStudent); err != nil {
			h.ErrLog.LogServerError(w, r, "count students failed", err, "A database error occurred.", "/")
			return
		}
		if vm.TeacherCount, err = h.Users.CountByRole(ctx, models.RoleTeacher); err != nil {
			h.ErrLog.LogServerError(w, r, "count teachers failed", err, "A database error occurred.", "/")
			return
		}
		if vm.ParentCount, err = h.Users.CountByRole(ctx, models.RoleParent); err != nil {
			h.ErrLog.LogServerError(w, r, "count parents failed", err, "A database error occurred.", "/")
			return
		}
		if vm.ClassCount, err = h.Classes.Count(ctx); err != nil {
			h.ErrLog.LogServerError(w, r, "count classes failed", err, "A database error occurred.", "/")
			return
		}
		if vm.SubjectCount, err = h.Subjects.Count(ctx); err != nil {
			h.ErrLog.LogServerError(w, r, "count subjects failed", err, "A database error occurred.", "/")
			return
		}
		if vm.PendingLeaves, err = h.Leaves.CountPendingForScope(ctx, models.LeaveSentToAdmin); err != nil {
			h.ErrLog.LogServerError(w, r, "count pending leaves failed", err, "A database error occurred.", "/")
			return
		}
		if err := h.fillAttendanceRate(ctx, &vm); err != nil {
			h.ErrLog.LogServerError(w, r, "count today's attendance failed", err, "A database error occurred.", "/")
			return
		}

	case models.RoleTeacher:
		if vm.ClassCount, err = h.Classes.Count(ctx); err != nil {
			h.ErrLog.LogServerError(w, r, "count classes failed", err, "A database error occurred.", "/")
			return
		}
		if vm.SubjectCount, err = h.Subjects.Count(ctx); err != nil {
			h.ErrLog.LogServerError(w, r, "count subjects failed", err, "A database error occurred.", "/")
			return
		}
		if vm.PendingLeaves, err = h.Leaves.CountPendingForScope(ctx, models.LeaveSentToTeacher); err != nil {
			h.ErrLog.LogServerError(w, r, "count pending leaves failed", err, "A database error occurred.", "/")
			return
		}
		if err := h.fillAttendanceRate(ctx, &vm); err != nil {
			h.ErrLog.LogServerError(w, r, "count today's attendance failed", err, "A database error occurred.", "/")
			return
		}

	case models.RoleStudent:
		classIDs, err := h.Enrollments.ClassIDsForStudent(ctx, userID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "list enrollments failed", err, "A database error occurred.", "/")
			return
		}
		vm.EnrolledClassCount = int64(len(classIDs))
	}

	recent, err := h.Announcements.Recent(ctx, recentAnnouncements)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load recent announcements failed", err, "A database error occurred.", "/")
		return
	}
	for _, a := range recent {
		vm.Recent = append(vm.Recent, announcementRow{
			ID:      a.ID.Hex(),
			Title:   a.Title,
			Posted:  a.CreatedAt.Format("Jan 2, 2006"),
			Content: a.Content,
		})
	}

	templates.Render(w, r, "dashboard", vm)
}

// fillAttendanceRate computes the percentage of today's records marked
// present across all classes.
func (h *Handler) fillAttendanceRate(ctx context.Context, vm *dashboardVM) error {
	today := time.Now().UTC().Format("2006-01-02")
	present, total, err := h.Attendance.DayStatusCounts(ctx, today)
	if err != nil {
		return err
	}
	if total > 0 {
		vm.MarkedToday = true
		vm.AttendanceRate = present * 100 / total
	}
	return nil
}
