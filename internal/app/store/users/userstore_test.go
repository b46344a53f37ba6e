package userstore_test

import (
	"testing"

	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"github.com/dmcateer/classtrack/internal/app/system/indexes"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/dmcateer/classtrack/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateWithPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.CreateWithPassword(ctx, models.User{
		FullName: "Priya Sharma",
		Email:    "Priya@Example.com",
		Role:     models.RoleStudent,
	}, "correct horse battery staple")
	if err != nil {
		t.Fatalf("CreateWithPassword failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.EmailCI == "" || created.FullNameCI == "" {
		t.Error("expected folded fields to be set")
	}
	if created.PasswordHash == "" || created.PasswordHash == "correct horse battery staple" {
		t.Error("expected password to be hashed")
	}
	if created.Status != "active" {
		t.Errorf("expected default status 'active', got %q", created.Status)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	if !store.VerifyPassword(&created, "correct horse battery staple") {
		t.Error("expected password to verify")
	}
	if store.VerifyPassword(&created, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestStore_CreateWithPassword_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.CreateWithPassword(ctx, models.User{
		FullName: "Nobody",
		Email:    "nobody@example.com",
		Role:     "janitor",
	}, "pw")
	if err != userstore.ErrInvalidRole {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestStore_CreateWithPassword_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	u := models.User{FullName: "First", Email: "same@example.com", Role: models.RoleTeacher}
	if _, err := store.CreateWithPassword(ctx, u, "pw1"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// Same email with different case must still collide on email_ci.
	u2 := models.User{FullName: "Second", Email: "SAME@example.com", Role: models.RoleTeacher}
	if _, err := store.CreateWithPassword(ctx, u2, "pw2"); err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fixtures.CreateTeacher(ctx, "Ms. Lopez", "lopez@school.example")

	got, err := store.GetByEmail(ctx, "LOPEZ@School.Example")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got user %v, want %v", got.ID, created.ID)
	}
}

func TestStore_ListByRole_SortedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateStudent(ctx, "Zoe Adams", "zoe@example.com")
	fixtures.CreateStudent(ctx, "Amir Khan", "amir@example.com")
	fixtures.CreateTeacher(ctx, "Mr. Chen", "chen@example.com")

	students, err := store.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		t.Fatalf("ListByRole failed: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}
	if students[0].FullName != "Amir Khan" || students[1].FullName != "Zoe Adams" {
		t.Errorf("expected name order [Amir Khan, Zoe Adams], got [%s, %s]",
			students[0].FullName, students[1].FullName)
	}
}

func TestStore_DisplayNames(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateStudent(ctx, "Ana", "ana@example.com")
	b := fixtures.CreateStudent(ctx, "Ben", "ben@example.com")
	missing := primitive.NewObjectID()

	names, err := store.DisplayNames(ctx, []primitive.ObjectID{a.ID, b.ID, missing})
	if err != nil {
		t.Fatalf("DisplayNames failed: %v", err)
	}
	if names[a.ID] != "Ana" || names[b.ID] != "Ben" {
		t.Errorf("unexpected names map: %v", names)
	}
	if _, ok := names[missing]; ok {
		t.Error("expected missing ID to be absent from map")
	}
}

func TestFetcher_FetchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateTeacher(ctx, "Mr. Chen", "chen@example.com")

	f := userstore.NewFetcher(db)
	su := f.FetchUser(ctx, u.ID.Hex())
	if su == nil {
		t.Fatal("expected session user")
	}
	if su.Role != models.RoleTeacher || su.Name != "Mr. Chen" {
		t.Errorf("unexpected session user: %+v", su)
	}

	if got := f.FetchUser(ctx, primitive.NewObjectID().Hex()); got != nil {
		t.Error("expected nil for unknown user")
	}
	if got := f.FetchUser(ctx, "not-hex"); got != nil {
		t.Error("expected nil for malformed ID")
	}
}
