package leavestore

import (
	"context"
	"errors"
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

var (
	ErrInvalidScope  = errors.New("leave must be sent to teacher or admin")
	ErrInvalidStatus = errors.New("invalid leave status")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("leaves")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.LeaveRequest, error) {
	var l models.LeaveRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return models.LeaveRequest{}, err
	}
	return l, nil
}

// Create files a new leave request. Status always starts pending.
func (s *Store) Create(ctx context.Context, l models.LeaveRequest) (models.LeaveRequest, error) {
	if l.SentTo != models.LeaveSentToTeacher && l.SentTo != models.LeaveSentToAdmin {
		return models.LeaveRequest{}, ErrInvalidScope
	}

	l.ID = primitive.NewObjectID()
	l.Status = models.LeavePending
	l.ApprovedBy = nil
	l.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.LeaveRequest{}, err
	}
	return l, nil
}

// ListForStudent returns a student's own requests, newest first.
func (s *Store) ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.LeaveRequest, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

// ListForScope returns every request addressed to the given recipient kind
// ("teacher" or "admin"), newest first. Scoping is by sent_to alone: a
// request sent to "teacher" is visible to every teacher.
func (s *Store) ListForScope(ctx context.Context, sentTo string) ([]models.LeaveRequest, error) {
	if sentTo != models.LeaveSentToTeacher && sentTo != models.LeaveSentToAdmin {
		return nil, ErrInvalidScope
	}
	return s.list(ctx, bson.M{"sent_to": sentTo})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var leaves []models.LeaveRequest
	if err := cur.All(ctx, &leaves); err != nil {
		return nil, err
	}
	return leaves, nil
}

// SetStatus decides a pending request, recording who decided it.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string, decidedBy primitive.ObjectID) error {
	if status != models.LeaveApproved && status != models.LeaveRejected {
		return ErrInvalidStatus
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":      status,
		"approved_by": decidedBy,
	}})
	return err
}

// CountPendingForScope returns how many undecided requests await a
// recipient kind.
func (s *Store) CountPendingForScope(ctx context.Context, sentTo string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"sent_to": sentTo, "status": models.LeavePending})
}
