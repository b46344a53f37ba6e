package timetablestore_test

import (
	"testing"

	timetablestore "github.com/dmcateer/classtrack/internal/app/store/timetable"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/dmcateer/classtrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_ListForClass_Ordering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := timetablestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	class := fixtures.CreateClass(ctx, "Grade 10", "A", 10)
	other := fixtures.CreateClass(ctx, "Grade 9", "A", 9)
	math := fixtures.CreateSubject(ctx, "Mathematics", "MATH")
	teacher := fixtures.CreateTeacher(ctx, "Mr. Chen", "chen@example.com")

	// Inserted deliberately out of order.
	fixtures.CreateTimetableEntry(ctx, class.ID, math.ID, teacher.ID, 3, "10:00", "11:00")
	fixtures.CreateTimetableEntry(ctx, class.ID, math.ID, teacher.ID, 1, "13:00", "14:00")
	fixtures.CreateTimetableEntry(ctx, class.ID, math.ID, teacher.ID, 1, "08:00", "09:00")
	fixtures.CreateTimetableEntry(ctx, other.ID, math.ID, teacher.ID, 1, "08:00", "09:00")

	entries, err := store.ListForClass(ctx, class.ID)
	if err != nil {
		t.Fatalf("ListForClass failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantDay := []int{1, 1, 3}
	wantStart := []string{"08:00", "13:00", "10:00"}
	for i := range entries {
		if entries[i].DayOfWeek != wantDay[i] || entries[i].StartTime != wantStart[i] {
			t.Errorf("entries[%d] = day %d start %s, want day %d start %s",
				i, entries[i].DayOfWeek, entries[i].StartTime, wantDay[i], wantStart[i])
		}
	}
}

func TestStore_CreateUpdateDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := timetablestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	class := fixtures.CreateClass(ctx, "Grade 10", "A", 10)
	math := fixtures.CreateSubject(ctx, "Mathematics", "MATH")
	physics := fixtures.CreateSubject(ctx, "Physics", "PHY")
	teacher := fixtures.CreateTeacher(ctx, "Mr. Chen", "chen@example.com")

	created, err := store.Create(ctx, models.TimetableEntry{
		ClassID:   class.ID,
		SubjectID: math.ID,
		TeacherID: teacher.ID,
		DayOfWeek: 2,
		StartTime: "09:00",
		EndTime:   "10:00",
		Room:      "B12",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}

	created.SubjectID = physics.ID
	created.StartTime = "11:00"
	created.EndTime = "12:00"
	if err := store.Update(ctx, created.ID, created); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.SubjectID != physics.ID || got.StartTime != "11:00" {
		t.Errorf("update not applied: %+v", got)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil || n != 1 {
		t.Errorf("Delete = (%d, %v), want (1, nil)", n, err)
	}
}

func TestStore_ListForTeacher(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := timetablestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c1 := fixtures.CreateClass(ctx, "Grade 10", "A", 10)
	c2 := fixtures.CreateClass(ctx, "Grade 9", "A", 9)
	math := fixtures.CreateSubject(ctx, "Mathematics", "MATH")
	teacher := fixtures.CreateTeacher(ctx, "Mr. Chen", "chen@example.com")
	colleague := fixtures.CreateTeacher(ctx, "Ms. Lopez", "lopez@example.com")

	fixtures.CreateTimetableEntry(ctx, c1.ID, math.ID, teacher.ID, 1, "08:00", "09:00")
	fixtures.CreateTimetableEntry(ctx, c2.ID, math.ID, teacher.ID, 2, "09:00", "10:00")
	fixtures.CreateTimetableEntry(ctx, c1.ID, math.ID, colleague.ID, 1, "10:00", "11:00")

	entries, err := store.ListForTeacher(ctx, teacher.ID)
	if err != nil {
		t.Fatalf("ListForTeacher failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}
