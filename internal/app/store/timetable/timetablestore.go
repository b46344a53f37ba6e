package timetablestore

import (
	"context"
	"time"

	"github.com/dmcateer/classtrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("timetable_entries")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.TimetableEntry, error) {
	var e models.TimetableEntry
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.TimetableEntry{}, err
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, e models.TimetableEntry) (models.TimetableEntry, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.TimetableEntry{}, err
	}
	return e, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, e models.TimetableEntry) error {
	set := bson.M{
		"subject_id":  e.SubjectID,
		"teacher_id":  e.TeacherID,
		"day_of_week": e.DayOfWeek,
		"start_time":  e.StartTime,
		"end_time":    e.EndTime,
		"room":        e.Room,
		"updated_at":  time.Now().UTC(),
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// ListForClass returns a class's full week ordered by day then start time.
// This fetch order decides which entry wins when duplicates share a slot.
func (s *Store) ListForClass(ctx context.Context, classID primitive.ObjectID) ([]models.TimetableEntry, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "day_of_week", Value: 1},
		{Key: "start_time", Value: 1},
		{Key: "_id", Value: 1},
	})
	cur, err := s.c.Find(ctx, bson.M{"class_id": classID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.TimetableEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListForTeacher returns a teacher's periods across all classes ordered by
// day then start time.
func (s *Store) ListForTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]models.TimetableEntry, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "day_of_week", Value: 1},
		{Key: "start_time", Value: 1},
	})
	cur, err := s.c.Find(ctx, bson.M{"teacher_id": teacherID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.TimetableEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes an entry by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByClass removes all entries for a class. Returns the number deleted.
func (s *Store) DeleteByClass(ctx context.Context, classID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"class_id": classID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
