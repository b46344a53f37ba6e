package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmcateer/classtrack/internal/app/features/dashboard"
	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	"github.com/dmcateer/classtrack/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*dashboard.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	return dashboard.NewHandler(db, errLog, logger), db
}

func TestServe_AnonymousRedirectsToLogin(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	rec := httptest.NewRecorder()

	h.Serve(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location: got %q, want %q", loc, "/login")
	}
}

func TestServe_AdminLoadsCounters(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	f.CreateStudent(ctx, "S One", "s1@example.com")
	f.CreateStudent(ctx, "S Two", "s2@example.com")
	f.CreateTeacher(ctx, "T One", "t1@example.com")
	f.CreateClass(ctx, "Grade 10", "A", 10)

	req := testutil.NewAuthenticatedRequest("GET", "/dashboard", testutil.AdminUser())
	rec := httptest.NewRecorder()

	h.Serve(rec, req)

	if rec.Code == http.StatusSeeOther {
		t.Error("signed-in admin must not be redirected")
	}
	if rec.Code == http.StatusInternalServerError {
		t.Errorf("unexpected server error: %s", rec.Body.String())
	}
}

func TestServe_StudentLoadsEnrollments(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	student := f.CreateStudent(ctx, "Sam Student", "sam@example.com")
	class := f.CreateClass(ctx, "Grade 9", "B", 9)
	f.Enroll(ctx, student.ID, class.ID)

	user := testutil.UserFor(student.ID, student.FullName, student.Email, student.Role)
	req := testutil.NewAuthenticatedRequest("GET", "/dashboard", user)
	rec := httptest.NewRecorder()

	h.Serve(rec, req)

	if rec.Code == http.StatusSeeOther {
		t.Error("signed-in student must not be redirected")
	}
}
