package attendancepolicy_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmcateer/classtrack/internal/app/policy/attendancepolicy"
	"github.com/dmcateer/classtrack/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func reqWithUser(id primitive.ObjectID, role string) *http.Request {
	r := httptest.NewRequest("GET", "/attendance", nil)
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:   id.Hex(),
		Name: "Test User",
		Role: role,
	})
}

func TestCanMark(t *testing.T) {
	id := primitive.NewObjectID()
	if !attendancepolicy.CanMark(reqWithUser(id, "teacher")) {
		t.Error("teacher should mark attendance")
	}
	if !attendancepolicy.CanMark(reqWithUser(id, "admin")) {
		t.Error("admin should mark attendance")
	}
	if attendancepolicy.CanMark(reqWithUser(id, "student")) {
		t.Error("student must not mark attendance")
	}
	if attendancepolicy.CanMark(httptest.NewRequest("GET", "/", nil)) {
		t.Error("anonymous must not mark attendance")
	}
}

func TestCanViewStudentHistory(t *testing.T) {
	self := primitive.NewObjectID()
	other := primitive.NewObjectID()

	if !attendancepolicy.CanViewStudentHistory(reqWithUser(self, "student"), self) {
		t.Error("student should see their own history")
	}
	if attendancepolicy.CanViewStudentHistory(reqWithUser(self, "student"), other) {
		t.Error("student must not see another student's history")
	}
	if !attendancepolicy.CanViewStudentHistory(reqWithUser(self, "teacher"), other) {
		t.Error("teacher should see any student's history")
	}
	if !attendancepolicy.CanViewStudentHistory(reqWithUser(self, "parent"), other) {
		t.Error("parent should see student history")
	}
	if attendancepolicy.CanViewStudentHistory(httptest.NewRequest("GET", "/", nil), other) {
		t.Error("anonymous must not see history")
	}
}
