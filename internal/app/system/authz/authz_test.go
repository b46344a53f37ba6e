package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"github.com/dmcateer/classtrack/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func reqWithRole(role string) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test User",
		Email: "test@example.com",
		Role:  role,
	})
}

func TestUserCtx_NoUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	role, name, userID, ok := authz.UserCtx(r)
	if ok {
		t.Error("expected ok=false for anonymous request")
	}
	if role != "visitor" {
		t.Errorf("expected role 'visitor', got %q", role)
	}
	if name != "" || !userID.IsZero() {
		t.Errorf("expected empty name and nil ID, got %q, %v", name, userID)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{ID: "not-a-hex-id", Role: "admin"})

	_, _, _, ok := authz.UserCtx(r)
	if ok {
		t.Error("expected ok=false for malformed user ID")
	}
}

func TestUserCtx_NormalizesRole(t *testing.T) {
	role, _, _, ok := authz.UserCtx(reqWithRole("Teacher"))
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "teacher" {
		t.Errorf("expected lowercased role, got %q", role)
	}
}

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		role      string
		isAdmin   bool
		isTeacher bool
		isStudent bool
		isParent  bool
	}{
		{"admin", true, false, false, false},
		{"teacher", false, true, false, false},
		{"student", false, false, true, false},
		{"parent", false, false, false, true},
	}
	for _, tc := range tests {
		r := reqWithRole(tc.role)
		if got := authz.IsAdmin(r); got != tc.isAdmin {
			t.Errorf("IsAdmin(%s) = %v", tc.role, got)
		}
		if got := authz.IsTeacher(r); got != tc.isTeacher {
			t.Errorf("IsTeacher(%s) = %v", tc.role, got)
		}
		if got := authz.IsStudent(r); got != tc.isStudent {
			t.Errorf("IsStudent(%s) = %v", tc.role, got)
		}
		if got := authz.IsParent(r); got != tc.isParent {
			t.Errorf("IsParent(%s) = %v", tc.role, got)
		}
	}
}

func TestCanMarkAttendance(t *testing.T) {
	if !authz.CanMarkAttendance(reqWithRole("teacher")) {
		t.Error("teacher should be able to mark attendance")
	}
	if !authz.CanMarkAttendance(reqWithRole("admin")) {
		t.Error("admin should be able to mark attendance")
	}
	if authz.CanMarkAttendance(reqWithRole("student")) {
		t.Error("student must not mark attendance")
	}
	if authz.CanMarkAttendance(httptest.NewRequest("GET", "/", nil)) {
		t.Error("anonymous must not mark attendance")
	}
}
