package classes_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dmcateer/classtrack/internal/app/features/classes"
	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	classstore "github.com/dmcateer/classtrack/internal/app/store/classes"
	enrollmentstore "github.com/dmcateer/classtrack/internal/app/store/enrollments"
	timetablestore "github.com/dmcateer/classtrack/internal/app/store/timetable"
	"github.com/dmcateer/classtrack/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*classes.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	return classes.NewHandler(db, errLog, logger), db
}

func postForm(target string, form url.Values, user testutil.TestUser) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return testutil.WithUser(req, user)
}

func TestCreate_Success(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"name":        {"Grade 10"},
		"section":     {"A"},
		"grade_level": {"10"},
	}
	rec := httptest.NewRecorder()

	h.Create(rec, postForm("/classes/new", form, testutil.AdminUser()))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/classes?success=created" {
		t.Errorf("Location: got %q, want %q", loc, "/classes?success=created")
	}

	items, err := classstore.New(db).ListByGradeDesc(ctx)
	if err != nil {
		t.Fatalf("ListByGradeDesc: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Grade 10" || items[0].GradeLevel != 10 {
		t.Errorf("unexpected classes after create: %+v", items)
	}
}

func TestCreate_InvalidGrade(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"name":        {"Grade 10"},
		"grade_level": {"thirteen"},
	}
	rec := httptest.NewRecorder()

	h.Create(rec, postForm("/classes/new", form, testutil.AdminUser()))

	if rec.Code == http.StatusSeeOther {
		t.Error("invalid grade must not create a class")
	}

	n, err := classstore.New(db).Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("class count: got %d, want 0", n)
	}
}

func TestCreate_StudentForbidden(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := url.Values{
		"name":        {"Grade 10"},
		"section":     {"A"},
		"grade_level": {"10"},
	}
	rec := httptest.NewRecorder()

	h.Create(rec, postForm("/classes/new", form, testutil.StudentUser()))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/forbidden" {
		t.Errorf("Location: got %q, want %q", loc, "/forbidden")
	}

	n, err := classstore.New(db).Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("class count after forbidden create: got %d, want 0", n)
	}
}

func TestUpdate_ChangesFields(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	class := f.CreateClass(ctx, "Grade 10", "A", 10)

	form := url.Values{
		"name":        {"Grade 11"},
		"section":     {"B"},
		"grade_level": {"11"},
	}
	req := postForm("/classes/"+class.ID.Hex(), form, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", class.ID.Hex())
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}

	got, err := classstore.New(db).GetByID(ctx, class.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Grade 11" || got.Section != "B" || got.GradeLevel != 11 {
		t.Errorf("class after update: %+v", got)
	}
}

func TestDelete_RemovesClassAndMemberships(t *testing.T) {
	h, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	class := f.CreateClass(ctx, "Grade 10", "A", 10)
	student := f.CreateStudent(ctx, "Sam Student", "sam@example.com")
	subject := f.CreateSubject(ctx, "Physics", "PHY")
	teacher := f.CreateTeacher(ctx, "Dana Teacher", "dana@example.com")
	f.Enroll(ctx, student.ID, class.ID)
	f.CreateTimetableEntry(ctx, class.ID, subject.ID, teacher.ID, 1, "09:00", "10:00")

	req := postForm("/classes/"+class.ID.Hex()+"/delete", url.Values{}, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", class.ID.Hex())
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}

	if n, _ := classstore.New(db).Count(ctx); n != 0 {
		t.Errorf("class count after delete: got %d, want 0", n)
	}
	if n, _ := enrollmentstore.New(db).CountForClass(ctx, class.ID); n != 0 {
		t.Errorf("enrollments after delete: got %d, want 0", n)
	}
	if entries, _ := timetablestore.New(db).ListForClass(ctx, class.ID); len(entries) != 0 {
		t.Errorf("timetable entries after delete: got %d, want 0", len(entries))
	}
}
