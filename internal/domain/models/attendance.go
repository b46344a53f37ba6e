package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// ValidAttendanceStatus reports whether s is one of the known statuses.
func ValidAttendanceStatus(s string) bool {
	return s == AttendancePresent || s == AttendanceAbsent || s == AttendanceLate
}

// AttendanceRecord is one student's status for one class on one date.
// Date is a "YYYY-MM-DD" string with one record per (student, class, date).
// The save path replaces the whole (class, date) batch rather than merging
// row by row.
type AttendanceRecord struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	StudentID primitive.ObjectID `bson:"student_id" json:"student_id"`
	ClassID   primitive.ObjectID `bson:"class_id" json:"class_id"`
	Date      string             `bson:"date" json:"date"`
	Status    string             `bson:"status" json:"status"` // present | absent | late
	MarkedBy  primitive.ObjectID `bson:"marked_by,omitempty" json:"marked_by,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
