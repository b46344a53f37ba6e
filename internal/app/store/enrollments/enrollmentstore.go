package enrollmentstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrAlreadyEnrolled = errors.New("student is already enrolled in this class")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("enrollments")}
}

// Enroll places a student in a class. Enrolling twice in the same class
// returns ErrAlreadyEnrolled.
func (s *Store) Enroll(ctx context.Context, studentID, classID primitive.ObjectID) (models.Enrollment, error) {
	enr := models.Enrollment{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		ClassID:   classID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, enr); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Enrollment{}, ErrAlreadyEnrolled
		}
		return models.Enrollment{}, err
	}
	return enr, nil
}

// Unenroll removes a student from a class. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Unenroll(ctx context.Context, studentID, classID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"student_id": studentID, "class_id": classID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// StudentIDsForClass returns the IDs of every student enrolled in a class.
func (s *Store) StudentIDsForClass(ctx context.Context, classID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"class_id": classID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var enr models.Enrollment
		if err := cur.Decode(&enr); err != nil {
			return nil, err
		}
		ids = append(ids, enr.StudentID)
	}
	return ids, cur.Err()
}

// ClassIDsForStudent returns the IDs of every class a student is enrolled in.
func (s *Store) ClassIDsForStudent(ctx context.Context, studentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"student_id": studentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var enr models.Enrollment
		if err := cur.Decode(&enr); err != nil {
			return nil, err
		}
		ids = append(ids, enr.ClassID)
	}
	return ids, cur.Err()
}

// ClassesForStudents returns the class IDs for each of the given students
// in one batched $in query. Students with no enrollments are absent from
// the returned map.
func (s *Store) ClassesForStudents(ctx context.Context, studentIDs []primitive.ObjectID) (map[primitive.ObjectID][]primitive.ObjectID, error) {
	byStudent := make(map[primitive.ObjectID][]primitive.ObjectID, len(studentIDs))
	if len(studentIDs) == 0 {
		return byStudent, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"student_id": bson.M{"$in": studentIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var enr models.Enrollment
		if err := cur.Decode(&enr); err != nil {
			return nil, err
		}
		byStudent[enr.StudentID] = append(byStudent[enr.StudentID], enr.ClassID)
	}
	return byStudent, cur.Err()
}

// CountForClass returns the number of students enrolled in a class.
func (s *Store) CountForClass(ctx context.Context, classID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"class_id": classID})
}

// DeleteByClass removes all enrollments for a class, used when a class is
// deleted. Returns the number of documents deleted.
func (s *Store) DeleteByClass(ctx context.Context, classID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"class_id": classID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
