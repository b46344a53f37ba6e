package attendanceview_test

import (
	"testing"

	"github.com/dmcateer/classtrack/internal/app/store/queries/attendanceview"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/dmcateer/classtrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStudentHistory_DecoratedWithClassName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	class := fixtures.CreateClass(ctx, "Grade 10", "A", 10)
	student := fixtures.CreateStudent(ctx, "Ana", "ana@example.com")

	fixtures.CreateAttendance(ctx, student.ID, class.ID, "2026-03-02", models.AttendancePresent)
	fixtures.CreateAttendance(ctx, student.ID, class.ID, "2026-03-03", models.AttendanceLate)

	rows, err := attendanceview.StudentHistory(ctx, db, student.ID)
	if err != nil {
		t.Fatalf("StudentHistory failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Date != "2026-03-03" {
		t.Errorf("expected newest first, got %s", rows[0].Date)
	}
	if rows[0].ClassName != "Grade 10" {
		t.Errorf("expected class name decoration, got %q", rows[0].ClassName)
	}
}

func TestStudentHistory_DeletedClassShowsNA(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Ana", "ana@example.com")
	fixtures.CreateAttendance(ctx, student.ID, primitive.NewObjectID(), "2026-03-02", models.AttendancePresent)

	rows, err := attendanceview.StudentHistory(ctx, db, student.ID)
	if err != nil {
		t.Fatalf("StudentHistory failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ClassName != attendanceview.UnknownClassName {
		t.Errorf("expected %q for deleted class, got %q", attendanceview.UnknownClassName, rows[0].ClassName)
	}
}

func TestRoster_SortedAndPrefilled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	class := fixtures.CreateClass(ctx, "Grade 10", "A", 10)
	zoe := fixtures.CreateStudent(ctx, "Zoe Adams", "zoe@example.com")
	amir := fixtures.CreateStudent(ctx, "Amir Khan", "amir@example.com")
	fixtures.Enroll(ctx, zoe.ID, class.ID)
	fixtures.Enroll(ctx, amir.ID, class.ID)

	fixtures.CreateAttendance(ctx, zoe.ID, class.ID, "2026-03-02", models.AttendanceAbsent)

	rows, err := attendanceview.Roster(ctx, db, class.ID, "2026-03-02")
	if err != nil {
		t.Fatalf("Roster failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Student.FullName != "Amir Khan" {
		t.Errorf("expected name order, got %q first", rows[0].Student.FullName)
	}
	if rows[0].Status != "" {
		t.Errorf("expected unmarked student to have empty status, got %q", rows[0].Status)
	}
	if rows[1].Status != models.AttendanceAbsent {
		t.Errorf("expected saved status prefilled, got %q", rows[1].Status)
	}
}

func TestRoster_EmptyClass(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	class := fixtures.CreateClass(ctx, "Grade 10", "A", 10)

	rows, err := attendanceview.Roster(ctx, db, class.ID, "2026-03-02")
	if err != nil {
		t.Fatalf("Roster failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty roster, got %d rows", len(rows))
	}
}
