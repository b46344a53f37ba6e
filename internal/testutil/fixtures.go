package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		EmailCI:    text.Fold(email),
		Role:       role,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdmin)
}

// CreateTeacher creates a test teacher user.
func (f *Fixtures) CreateTeacher(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleTeacher)
}

// CreateStudent creates a test student user.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleStudent)
}

// CreateClass creates a test class.
func (f *Fixtures) CreateClass(ctx context.Context, name, section string, gradeLevel int) models.Class {
	f.t.Helper()

	now := time.Now().UTC()
	class := models.Class{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     text.Fold(name),
		Section:    section,
		GradeLevel: gradeLevel,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("classes").InsertOne(ctx, class); err != nil {
		f.t.Fatalf("failed to create test class: %v", err)
	}
	return class
}

// CreateSubject creates a test subject.
func (f *Fixtures) CreateSubject(ctx context.Context, name, code string) models.Subject {
	f.t.Helper()

	now := time.Now().UTC()
	subject := models.Subject{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("subjects").InsertOne(ctx, subject); err != nil {
		f.t.Fatalf("failed to create test subject: %v", err)
	}
	return subject
}

// Enroll places a student in a class.
func (f *Fixtures) Enroll(ctx context.Context, studentID, classID primitive.ObjectID) models.Enrollment {
	f.t.Helper()

	enr := models.Enrollment{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		ClassID:   classID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("enrollments").InsertOne(ctx, enr); err != nil {
		f.t.Fatalf("failed to create test enrollment: %v", err)
	}
	return enr
}

// CreateTimetableEntry creates one scheduled period for a class.
func (f *Fixtures) CreateTimetableEntry(ctx context.Context, classID, subjectID, teacherID primitive.ObjectID, day int, start, end string) models.TimetableEntry {
	f.t.Helper()

	now := time.Now().UTC()
	entry := models.TimetableEntry{
		ID:        primitive.NewObjectID(),
		ClassID:   classID,
		SubjectID: subjectID,
		TeacherID: teacherID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("timetable_entries").InsertOne(ctx, entry); err != nil {
		f.t.Fatalf("failed to create test timetable entry: %v", err)
	}
	return entry
}

// CreateAttendance records one attendance row directly.
func (f *Fixtures) CreateAttendance(ctx context.Context, studentID, classID primitive.ObjectID, date, status string) models.AttendanceRecord {
	f.t.Helper()

	rec := models.AttendanceRecord{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		ClassID:   classID,
		Date:      date,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("attendance").InsertOne(ctx, rec); err != nil {
		f.t.Fatalf("failed to create test attendance record: %v", err)
	}
	return rec
}

// CreateLeave creates a leave request with the given status and scope.
func (f *Fixtures) CreateLeave(ctx context.Context, studentID primitive.ObjectID, sentTo, status string) models.LeaveRequest {
	f.t.Helper()

	leave := models.LeaveRequest{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Reason:    "family trip",
		Status:    status,
		SentTo:    sentTo,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("leaves").InsertOne(ctx, leave); err != nil {
		f.t.Fatalf("failed to create test leave request: %v", err)
	}
	return leave
}

// CreateAnnouncement creates a test announcement.
func (f *Fixtures) CreateAnnouncement(ctx context.Context, title, content string, createdBy primitive.ObjectID) models.Announcement {
	f.t.Helper()

	now := time.Now().UTC()
	ann := models.Announcement{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   content,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("announcements").InsertOne(ctx, ann); err != nil {
		f.t.Fatalf("failed to create test announcement: %v", err)
	}
	return ann
}
