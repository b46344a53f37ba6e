package attendancestore_test

import (
	"fmt"
	"testing"

	attendancestore "github.com/dmcateer/classtrack/internal/app/store/attendance"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/dmcateer/classtrack/internal/testutil"
)

func TestStore_ReplaceForClassDate_FullReplace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	class := fixtures.CreateClass(ctx, "Grade 10", "A", 10)
	teacher := fixtures.CreateTeacher(ctx, "Mr. Chen", "chen@example.com")
	s1 := fixtures.CreateStudent(ctx, "Ana", "ana@example.com")
	s2 := fixtures.CreateStudent(ctx, "Ben", "ben@example.com")

	first := []attendancestore.Entry{
		{StudentID: s1.ID, Status: models.AttendancePresent},
		{StudentID: s2.ID, Status: models.AttendanceAbsent},
	}
	if err := store.ReplaceForClassDate(ctx, class.ID, "2026-03-02", teacher.ID, first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	// Saving again for the same (class, date) must fully replace the sheet.
	second := []attendancestore.Entry{
		{StudentID: s1.ID, Status: models.AttendanceLate},
		{StudentID: s2.ID, Status: models.AttendancePresent},
	}
	if err := store.ReplaceForClassDate(ctx, class.ID, "2026-03-02", teacher.ID, second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	records, err := store.ListForClassDate(ctx, class.ID, "2026-03-02")
	if err != nil {
		t.Fatalf("ListForClassDate failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected exactly 2 records after resave, got %d", len(records))
	}

	statuses, err := store.MapForClassDate(ctx, class.ID, "2026-03-02")
	if err != nil {
		t.Fatalf("MapForClassDate failed: %v", err)
	}
	if statuses[s1.ID] != models.AttendanceLate || statuses[s2.ID] != models.AttendancePresent {
		t.Errorf("expected later sheet to win, got %v", statuses)
	}
}

func TestStore_ReplaceForClassDate_OtherDatesUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	class := fixtures.CreateClass(ctx, "Grade 10", "A", 10)
	teacher := fixtures.CreateTeacher(ctx, "Mr. Chen", "chen@example.com")
	s1 := fixtures.CreateStudent(ctx, "Ana", "ana@example.com")

	fixtures.CreateAttendance(ctx, s1.ID, class.ID, "2026-03-01", models.AttendancePresent)

	entries := []attendancestore.Entry{{StudentID: s1.ID, Status: models.AttendanceAbsent}}
	if err := store.ReplaceForClassDate(ctx, class.ID, "2026-03-02", teacher.ID, entries); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	prev, err := store.ListForClassDate(ctx, class.ID, "2026-03-01")
	if err != nil {
		t.Fatalf("ListForClassDate failed: %v", err)
	}
	if len(prev) != 1 {
		t.Errorf("expected the other date's record to survive, got %d records", len(prev))
	}
}

func TestStore_ReplaceForClassDate_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	class := fixtures.CreateClass(ctx, "Grade 10", "A", 10)
	teacher := fixtures.CreateTeacher(ctx, "Mr. Chen", "chen@example.com")
	s1 := fixtures.CreateStudent(ctx, "Ana", "ana@example.com")

	entries := []attendancestore.Entry{{StudentID: s1.ID, Status: "vacationing"}}
	err := store.ReplaceForClassDate(ctx, class.ID, "2026-03-02", teacher.ID, entries)
	if err != attendancestore.ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestStore_ListForStudent_CappedAndNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	class := fixtures.CreateClass(ctx, "Grade 10", "A", 10)
	student := fixtures.CreateStudent(ctx, "Ana", "ana@example.com")

	// 35 days of history; only the 30 newest should come back.
	for day := 1; day <= 35; day++ {
		date := fmt.Sprintf("2026-01-%02d", day)
		if day > 30 {
			date = fmt.Sprintf("2026-02-%02d", day-30)
		}
		fixtures.CreateAttendance(ctx, student.ID, class.ID, date, models.AttendancePresent)
	}

	records, err := store.ListForStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("ListForStudent failed: %v", err)
	}
	if len(records) != attendancestore.StudentHistoryLimit {
		t.Fatalf("expected %d records, got %d", attendancestore.StudentHistoryLimit, len(records))
	}
	if records[0].Date != "2026-02-05" {
		t.Errorf("expected newest date first, got %s", records[0].Date)
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date > records[i-1].Date {
			t.Fatalf("records not in date-descending order at %d: %s > %s",
				i, records[i].Date, records[i-1].Date)
		}
	}
}

func TestStore_ReplaceForClassDate_EmptySheetClears(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	class := fixtures.CreateClass(ctx, "Grade 10", "A", 10)
	teacher := fixtures.CreateTeacher(ctx, "Mr. Chen", "chen@example.com")
	s1 := fixtures.CreateStudent(ctx, "Ana", "ana@example.com")

	entries := []attendancestore.Entry{{StudentID: s1.ID, Status: models.AttendancePresent}}
	if err := store.ReplaceForClassDate(ctx, class.ID, "2026-03-02", teacher.ID, entries); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.ReplaceForClassDate(ctx, class.ID, "2026-03-02", teacher.ID, nil); err != nil {
		t.Fatalf("empty save failed: %v", err)
	}

	records, err := store.ListForClassDate(ctx, class.ID, "2026-03-02")
	if err != nil {
		t.Fatalf("ListForClassDate failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty sheet, got %d records", len(records))
	}
}

func TestStore_DayStatusCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := attendancestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	classA := fixtures.CreateClass(ctx, "Grade 10", "A", 10)
	classB := fixtures.CreateClass(ctx, "Grade 9", "B", 9)
	teacher := fixtures.CreateTeacher(ctx, "Mr. Chen", "chen@example.com")
	s1 := fixtures.CreateStudent(ctx, "Ana", "ana@example.com")
	s2 := fixtures.CreateStudent(ctx, "Ben", "ben@example.com")
	s3 := fixtures.CreateStudent(ctx, "Cai", "cai@example.com")

	err := store.ReplaceForClassDate(ctx, classA.ID, "2026-03-02", teacher.ID, []attendancestore.Entry{
		{StudentID: s1.ID, Status: models.AttendancePresent},
		{StudentID: s2.ID, Status: models.AttendanceAbsent},
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	err = store.ReplaceForClassDate(ctx, classB.ID, "2026-03-02", teacher.ID, []attendancestore.Entry{
		{StudentID: s3.ID, Status: models.AttendancePresent},
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	// A different date must not count.
	err = store.ReplaceForClassDate(ctx, classA.ID, "2026-03-03", teacher.ID, []attendancestore.Entry{
		{StudentID: s1.ID, Status: models.AttendanceLate},
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	present, total, err := store.DayStatusCounts(ctx, "2026-03-02")
	if err != nil {
		t.Fatalf("DayStatusCounts failed: %v", err)
	}
	if present != 2 || total != 3 {
		t.Errorf("counts: got present=%d total=%d, want present=2 total=3", present, total)
	}
}
