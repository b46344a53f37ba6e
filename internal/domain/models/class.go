package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Class represents a cohort of students (e.g. "Grade 10 - A").
// Student membership is stored in the enrollments collection.
type Class struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"name_ci"`
	Section    string             `bson:"section,omitempty" json:"section,omitempty"`
	GradeLevel int                `bson:"grade_level" json:"grade_level"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DisplayName is the "Name - Section" label used in pickers and tables.
func (c Class) DisplayName() string {
	if c.Section == "" {
		return c.Name
	}
	return c.Name + " - " + c.Section
}
