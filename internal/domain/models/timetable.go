package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimetableEntry is one scheduled period for a class.
//
// DayOfWeek is the raw weekday integer 0=Sunday..6=Saturday; display order
// (Monday first) is a rendering concern, not a storage one. StartTime and
// EndTime are naive wall-clock "HH:MM" strings with no timezone handling.
//
// Nothing prevents two entries from sharing (class, day, start); the grid
// lookup shows the first one in fetch order and shadows the rest.
type TimetableEntry struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	ClassID   primitive.ObjectID `bson:"class_id" json:"class_id"`
	SubjectID primitive.ObjectID `bson:"subject_id" json:"subject_id"`
	TeacherID primitive.ObjectID `bson:"teacher_id,omitempty" json:"teacher_id,omitempty"`
	DayOfWeek int                `bson:"day_of_week" json:"day_of_week"`
	StartTime string             `bson:"start_time" json:"start_time"`
	EndTime   string             `bson:"end_time" json:"end_time"`
	Room      string             `bson:"room,omitempty" json:"room,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
