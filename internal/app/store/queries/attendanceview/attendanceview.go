// Package attendanceview builds the read models for the attendance pages:
// the class roster a teacher marks against and a student's decorated
// history.
package attendanceview

import (
	"context"

	attendancestore "github.com/dmcateer/classtrack/internal/app/store/attendance"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UnknownClassName is shown when an attendance record references a class
// that no longer exists.
const UnknownClassName = "N/A"

// HistoryRow is one line of a student's attendance history.
type HistoryRow struct {
	Date      string `bson:"date"`
	Status    string `bson:"status"`
	ClassName string `bson:"class_name"`
}

// RosterRow is one student on the marking sheet, prefilled with any saved
// status for the selected date.
type RosterRow struct {
	Student models.User
	Status  string
}

// StudentHistory returns a student's records decorated with class names,
// newest date first, capped at the history limit. Records whose class was
// deleted show UnknownClassName.
func StudentHistory(ctx context.Context, db *mongo.Database, studentID primitive.ObjectID) ([]HistoryRow, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"student_id": studentID}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}}},
		bson.D{{Key: "$limit", Value: attendancestore.StudentHistoryLimit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "classes",
			"localField":   "class_id",
			"foreignField": "_id",
			"as":           "class",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$class",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"date":       1,
			"status":     1,
			"class_name": "$class.name",
		}}},
	}

	cur, err := db.Collection("attendance").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []HistoryRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].ClassName == "" {
			rows[i].ClassName = UnknownClassName
		}
	}
	return rows, nil
}

// Roster returns the students enrolled in a class ordered by folded name,
// each prefilled with the status already saved for the date (empty when the
// sheet has not been marked yet).
func Roster(ctx context.Context, db *mongo.Database, classID primitive.ObjectID, date string) ([]RosterRow, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"class_id": classID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "student_id",
			"foreignField": "_id",
			"as":           "student",
		}}},
		bson.D{{Key: "$unwind", Value: "$student"}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "student.full_name_ci", Value: 1},
			{Key: "student._id", Value: 1},
		}}},
		bson.D{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$student"}}},
	}

	cur, err := db.Collection("enrollments").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var students []models.User
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}

	statuses, err := attendancestore.New(db).MapForClassDate(ctx, classID, date)
	if err != nil {
		return nil, err
	}

	rows := make([]RosterRow, 0, len(students))
	for _, s := range students {
		rows = append(rows, RosterRow{Student: s, Status: statuses[s.ID]})
	}
	return rows, nil
}
