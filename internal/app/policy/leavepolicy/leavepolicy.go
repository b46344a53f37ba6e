package leavepolicy

import (
	"net/http"

	"github.com/dmcateer/classtrack/internal/app/system/authz"
	"github.com/dmcateer/classtrack/internal/domain/models"
)

// CanDecide reports whether the current request user may approve or reject
// a leave request addressed to sentTo. The role must match the request's
// scope exactly: admins decide admin-scoped requests, teachers decide
// teacher-scoped ones. Admins never see teacher-scoped requests, so they
// cannot decide them either.
func CanDecide(r *http.Request, sentTo string) bool {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	switch sentTo {
	case models.LeaveSentToAdmin:
		return role == models.RoleAdmin
	case models.LeaveSentToTeacher:
		return role == models.RoleTeacher
	}
	return false
}

// CanFile reports whether the current request user may submit a leave
// request. Only students file leaves.
func CanFile(r *http.Request) bool {
	return authz.IsStudent(r)
}

// CanViewInbox reports whether the current request user sees the inbox for
// the given recipient kind.
func CanViewInbox(r *http.Request, sentTo string) bool {
	return CanDecide(r, sentTo)
}
