// Package timetablegrid assembles a class's timetable entries into the
// fixed day-by-slot grid the timetable pages render.
package timetablegrid

import (
	"context"

	"github.com/dmcateer/classtrack/internal/app/system/schedule"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Period is one scheduled entry joined with its subject and teacher.
type Period struct {
	ID        primitive.ObjectID `bson:"_id"`
	DayOfWeek int                `bson:"day_of_week"`
	StartTime string             `bson:"start_time"`
	EndTime   string             `bson:"end_time"`
	Room      string             `bson:"room"`

	SubjectName string `bson:"subject_name"`
	TeacherName string `bson:"teacher_name"`
}

type cellKey struct {
	day  int
	slot string
}

// Grid is the assembled week: fixed columns (Monday..Saturday, Sunday) and
// fixed hourly rows. Entries whose start time falls outside the slot set
// are not shown; when two entries share a (day, slot) the first in fetch
// order wins and the rest are shadowed.
type Grid struct {
	Days  []int
	Slots []string

	cells map[cellKey]*Period
}

// Cell returns the period shown at (day, slot), or nil for a free slot.
func (g *Grid) Cell(day int, slot string) *Period {
	return g.cells[cellKey{day: day, slot: slot}]
}

// Assemble fetches a class's entries joined with subjects and teachers and
// lays them out on the fixed grid. Fetch order is day, then start time,
// then insertion order, which fixes which duplicate wins a contested slot.
func Assemble(ctx context.Context, db *mongo.Database, classID primitive.ObjectID) (*Grid, error) {
	periods, err := ListPeriods(ctx, db, classID)
	if err != nil {
		return nil, err
	}

	grid := &Grid{
		Days:  schedule.DisplayDays(),
		Slots: schedule.TimeSlots(),
		cells: make(map[cellKey]*Period),
	}

	for i := range periods {
		p := &periods[i]
		key := cellKey{day: p.DayOfWeek, slot: schedule.TruncateToSlot(p.StartTime)}
		if _, taken := grid.cells[key]; taken {
			continue
		}
		grid.cells[key] = p
	}
	return grid, nil
}

// ListPeriods returns a class's week joined with subject and teacher names,
// ordered by day then start time.
func ListPeriods(ctx context.Context, db *mongo.Database, classID primitive.ObjectID) ([]Period, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"class_id": classID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "subjects",
			"localField":   "subject_id",
			"foreignField": "_id",
			"as":           "subject",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$subject",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "teacher_id",
			"foreignField": "_id",
			"as":           "teacher",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$teacher",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "day_of_week", Value: 1},
			{Key: "start_time", Value: 1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"day_of_week":  1,
			"start_time":   1,
			"end_time":     1,
			"room":         1,
			"subject_name": "$subject.name",
			"teacher_name": "$teacher.full_name",
		}}},
	}

	cur, err := db.Collection("timetable_entries").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var periods []Period
	if err := cur.All(ctx, &periods); err != nil {
		return nil, err
	}
	return periods, nil
}
