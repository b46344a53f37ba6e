// Package leaveview decorates leave requests with the display names the
// leave pages show.
package leaveview

import (
	"context"

	leavestore "github.com/dmcateer/classtrack/internal/app/store/leaves"
	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UnknownName is shown when a referenced user no longer resolves.
const UnknownName = "Unknown"

// Row is one leave request with names resolved.
type Row struct {
	Leave       models.LeaveRequest
	StudentName string
	DeciderName string
}

// ForScope returns the inbox for a recipient kind ("teacher" or "admin"),
// newest first, with student and decider names resolved.
func ForScope(ctx context.Context, db *mongo.Database, sentTo string) ([]Row, error) {
	leaves, err := leavestore.New(db).ListForScope(ctx, sentTo)
	if err != nil {
		return nil, err
	}
	return decorate(ctx, db, leaves)
}

// ForStudent returns a student's own requests, newest first, decorated.
func ForStudent(ctx context.Context, db *mongo.Database, studentID primitive.ObjectID) ([]Row, error) {
	leaves, err := leavestore.New(db).ListForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return decorate(ctx, db, leaves)
}

func decorate(ctx context.Context, db *mongo.Database, leaves []models.LeaveRequest) ([]Row, error) {
	ids := make([]primitive.ObjectID, 0, len(leaves)*2)
	for _, l := range leaves {
		ids = append(ids, l.StudentID)
		if l.ApprovedBy != nil {
			ids = append(ids, *l.ApprovedBy)
		}
	}

	names, err := userstore.New(db).DisplayNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(leaves))
	for _, l := range leaves {
		row := Row{Leave: l, StudentName: UnknownName}
		if name, ok := names[l.StudentID]; ok && name != "" {
			row.StudentName = name
		}
		if l.ApprovedBy != nil {
			row.DeciderName = UnknownName
			if name, ok := names[*l.ApprovedBy]; ok && name != "" {
				row.DeciderName = name
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
