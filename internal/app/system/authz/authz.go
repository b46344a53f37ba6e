package authz

import (
	"net/http"
	"strings"

	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// "visitor", "", NilObjectID, false, so ok=true always means a valid,
// authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsTeacher reports whether the current request's user is a teacher.
func IsTeacher(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleTeacher
}

// IsStudent reports whether the current request's user is a student.
func IsStudent(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleStudent
}

// IsParent reports whether the current request's user is a parent.
func IsParent(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleParent
}

// HasAnyRole reports whether the current user's role is one of the given roles.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// CanMarkAttendance reports whether the current user may record attendance.
// Only teachers and admins mark attendance; students and parents see it
// read-only.
func CanMarkAttendance(r *http.Request) bool {
	return HasAnyRole(r, models.RoleAdmin, models.RoleTeacher)
}

// CanManageCatalog reports whether the current user may create or edit
// classes, subjects, and timetable entries.
func CanManageCatalog(r *http.Request) bool {
	return HasAnyRole(r, models.RoleAdmin, models.RoleTeacher)
}
