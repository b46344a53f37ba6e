package attendancepolicy

import (
	"net/http"

	"github.com/dmcateer/classtrack/internal/app/system/authz"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanMark reports whether the current request user may record attendance.
// Teachers and admins mark; everyone else is read-only. Checked on the save
// path even though the routes are already role-guarded, so a stale form
// from a demoted account cannot write.
func CanMark(r *http.Request) bool {
	return authz.CanMarkAttendance(r)
}

// CanViewStudentHistory reports whether the current request user may see a
// student's attendance history. Students see their own; parents see their
// children's (any student, in this trust model); staff see everyone's.
func CanViewStudentHistory(r *http.Request, studentID primitive.ObjectID) bool {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case models.RoleAdmin, models.RoleTeacher, models.RoleParent:
		return true
	case models.RoleStudent:
		return uid == studentID
	}
	return false
}
