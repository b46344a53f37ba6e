package students_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	"github.com/dmcateer/classtrack/internal/app/features/students"
	enrollmentstore "github.com/dmcateer/classtrack/internal/app/store/enrollments"
	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"github.com/dmcateer/classtrack/internal/app/system/indexes"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/dmcateer/classtrack/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*students.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	return students.NewHandler(db, errLog, logger), db
}

func postForm(target string, form url.Values, user testutil.TestUser) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return testutil.WithUser(req, user)
}

func TestCreate_WithEnrollment(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	class := f.CreateClass(ctx, "Grade 10", "A", 10)

	form := url.Values{
		"full_name": {"Sam Student"},
		"email":     {"sam@example.com"},
		"password":  {"longenoughpw"},
		"class_id":  {class.ID.Hex()},
	}
	rec := httptest.NewRecorder()

	h.Create(rec, postForm("/students/new", form, testutil.AdminUser()))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}

	u, err := userstore.New(db).GetByEmail(ctx, "sam@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.Role != models.RoleStudent {
		t.Errorf("role: got %q, want %q", u.Role, models.RoleStudent)
	}

	classIDs, err := enrollmentstore.New(db).ClassIDsForStudent(ctx, u.ID)
	if err != nil {
		t.Fatalf("ClassIDsForStudent: %v", err)
	}
	if len(classIDs) != 1 || classIDs[0] != class.ID {
		t.Errorf("enrollments after create: %v", classIDs)
	}
}

func TestCreate_WithoutClass(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"full_name": {"Sam Student"},
		"email":     {"sam@example.com"},
		"password":  {"longenoughpw"},
		"class_id":  {""},
	}
	rec := httptest.NewRecorder()

	h.Create(rec, postForm("/students/new", form, testutil.AdminUser()))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}

	u, err := userstore.New(db).GetByEmail(ctx, "sam@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	classIDs, err := enrollmentstore.New(db).ClassIDsForStudent(ctx, u.ID)
	if err != nil {
		t.Fatalf("ClassIDsForStudent: %v", err)
	}
	if len(classIDs) != 0 {
		t.Errorf("expected no enrollments, got %v", classIDs)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	f := testutil.NewFixtures(t, db)
	f.CreateStudent(ctx, "Sam Student", "sam@example.com")

	form := url.Values{
		"full_name": {"Other Sam"},
		"email":     {"SAM@example.com"},
		"password":  {"longenoughpw"},
	}
	rec := httptest.NewRecorder()

	h.Create(rec, postForm("/students/new", form, testutil.AdminUser()))

	if rec.Code == http.StatusSeeOther {
		t.Error("duplicate email must not report success")
	}
	n, err := userstore.New(db).CountByRole(ctx, models.RoleStudent)
	if err != nil {
		t.Fatalf("CountByRole: %v", err)
	}
	if n != 1 {
		t.Errorf("student count: got %d, want 1", n)
	}
}

func TestDelete_RemovesAccountAndEnrollments(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	student := f.CreateStudent(ctx, "Sam Student", "sam@example.com")
	class := f.CreateClass(ctx, "Grade 10", "A", 10)
	f.Enroll(ctx, student.ID, class.ID)

	req := postForm("/students/"+student.ID.Hex()+"/delete", url.Values{}, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", student.ID.Hex())
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}

	if _, err := userstore.New(db).GetByID(ctx, student.ID); err == nil {
		t.Error("student should be gone after delete")
	}
	classIDs, err := enrollmentstore.New(db).ClassIDsForStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("ClassIDsForStudent: %v", err)
	}
	if len(classIDs) != 0 {
		t.Errorf("enrollments after delete: %v", classIDs)
	}
}
