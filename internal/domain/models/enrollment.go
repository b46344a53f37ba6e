package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment links a student to a class. One document per membership;
// a unique index on (student_id, class_id) prevents duplicates.
type Enrollment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	StudentID primitive.ObjectID `bson:"student_id" json:"student_id"`
	ClassID   primitive.ObjectID `bson:"class_id" json:"class_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
