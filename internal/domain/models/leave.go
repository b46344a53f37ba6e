package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Leave request statuses and scopes.
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"

	LeaveSentToTeacher = "teacher"
	LeaveSentToAdmin   = "admin"
)

// LeaveRequest is a student's request for absence. SentTo is the only
// scoping field: a request addressed to "teacher" is visible to every
// teacher, not just the student's own.
type LeaveRequest struct {
	ID         primitive.ObjectID  `bson:"_id" json:"id"`
	StudentID  primitive.ObjectID  `bson:"student_id" json:"student_id"`
	StartDate  string              `bson:"start_date" json:"start_date"`
	EndDate    string              `bson:"end_date" json:"end_date"`
	Reason     string              `bson:"reason" json:"reason"`
	Status     string              `bson:"status" json:"status"`   // pending | approved | rejected
	SentTo     string              `bson:"sent_to" json:"sent_to"` // teacher | admin
	ApprovedBy *primitive.ObjectID `bson:"approved_by,omitempty" json:"approved_by,omitempty"`
	CreatedAt  time.Time           `bson:"created_at" json:"created_at"`
}
