package attendancestore

import (
	"context"
	"errors"
	"time"

	"github.com/dmcateer/classtrack/internal/app/system/txn"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StudentHistoryLimit caps a student's attendance history view at the most
// recent records.
const StudentHistoryLimit = 30

type Store struct {
	c      *mongo.Collection
	client *mongo.Client
}

var ErrInvalidStatus = errors.New("invalid attendance status")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("attendance"), client: db.Client()}
}

// Entry is one row of a class attendance sheet being saved.
type Entry struct {
	StudentID primitive.ObjectID
	Status    string
}

// ReplaceForClassDate atomically replaces the whole attendance sheet for a
// class on a date: existing records for (class, date) are deleted, then the
// given entries are inserted. Saving twice leaves exactly the later sheet.
//
// The delete and insert run in a multi-document transaction when the server
// supports one. On standalone servers the operations run sequentially,
// which leaves a small window where a concurrent reader sees the sheet
// empty.
func (s *Store) ReplaceForClassDate(ctx context.Context, classID primitive.ObjectID, date string, markedBy primitive.ObjectID, entries []Entry) error {
	for _, e := range entries {
		if !models.ValidAttendanceStatus(e.Status) {
			return ErrInvalidStatus
		}
	}

	docs := make([]interface{}, 0, len(entries))
	now := time.Now().UTC()
	for _, e := range entries {
		docs = append(docs, models.AttendanceRecord{
			ID:        primitive.NewObjectID(),
			StudentID: e.StudentID,
			ClassID:   classID,
			Date:      date,
			Status:    e.Status,
			MarkedBy:  markedBy,
			CreatedAt: now,
		})
	}

	replace := func(ctx context.Context) error {
		if _, err := s.c.DeleteMany(ctx, bson.M{"class_id": classID, "date": date}); err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		_, err := s.c.InsertMany(ctx, docs)
		return err
	}

	err := txn.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) error {
		return replace(sc)
	})
	if err != nil && txn.IsNotSupported(err) {
		return replace(ctx)
	}
	return err
}

// ListForClassDate returns the saved sheet for a class on a date.
func (s *Store) ListForClassDate(ctx context.Context, classID primitive.ObjectID, date string) ([]models.AttendanceRecord, error) {
	cur, err := s.c.Find(ctx, bson.M{"class_id": classID, "date": date})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []models.AttendanceRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MapForClassDate returns the saved sheet keyed by student ID, for
// prefilling the marking form.
func (s *Store) MapForClassDate(ctx context.Context, classID primitive.ObjectID, date string) (map[primitive.ObjectID]string, error) {
	records, err := s.ListForClassDate(ctx, classID, date)
	if err != nil {
		return nil, err
	}
	statuses := make(map[primitive.ObjectID]string, len(records))
	for _, rec := range records {
		statuses[rec.StudentID] = rec.Status
	}
	return statuses, nil
}

// ListForStudent returns a student's attendance history, newest date first,
// capped at StudentHistoryLimit records.
func (s *Store) ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.AttendanceRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(StudentHistoryLimit)
	cur, err := s.c.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []models.AttendanceRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CountByStatus returns how many records a class has with the given status
// on a date.
func (s *Store) CountByStatus(ctx context.Context, classID primitive.ObjectID, date, status string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"class_id": classID, "date": date, "status": status})
}

// DayStatusCounts returns how many attendance records exist across all
// classes on a date and how many of them are "present". Feeds the
// dashboard's attendance-rate counter.
func (s *Store) DayStatusCounts(ctx context.Context, date string) (present, total int64, err error) {
	total, err = s.c.CountDocuments(ctx, bson.M{"date": date})
	if err != nil {
		return 0, 0, err
	}
	present, err = s.c.CountDocuments(ctx, bson.M{"date": date, "status": models.AttendancePresent})
	if err != nil {
		return 0, 0, err
	}
	return present, total, nil
}
