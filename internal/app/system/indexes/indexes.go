package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureClasses(ctx, db); err != nil {
		problems = append(problems, "classes: "+err.Error())
	}
	if err := ensureSubjects(ctx, db); err != nil {
		problems = append(problems, "subjects: "+err.Error())
	}
	if err := ensureEnrollments(ctx, db); err != nil {
		problems = append(problems, "enrollments: "+err.Error())
	}
	if err := ensureTimetableEntries(ctx, db); err != nil {
		problems = append(problems, "timetable_entries: "+err.Error())
	}
	if err := ensureAttendance(ctx, db); err != nil {
		problems = append(problems, "attendance: "+err.Error())
	}
	if err := ensureLeaves(ctx, db); err != nil {
		problems = append(problems, "leaves: "+err.Error())
	}
	if err := ensureAnnouncements(ctx, db); err != nil {
		problems = append(problems, "announcements: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: ensure a set of desired indexes for one collection            */
/* -------------------------------------------------------------------------- */

// Mongo returns IndexOptionsConflict when an index with the same keys exists
// under a different name or with different options.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var unique bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				unique = *m.Options.Unique
			}
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		_, err := coll.Indexes().CreateOne(ctx, m)
		if err == nil {
			zap.L().Info("index ensured",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", sig),
				zap.Bool("unique", unique),
				zap.String("took", time.Since(start).String()))
			continue
		}

		if isOptionsConflictErr(err) {
			// Same keys exist under a different name or options. Drop the
			// conflicting index and recreate with the desired definition.
			if dropErr := dropBySig(ctx, coll, sig); dropErr != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): conflict drop failed: %v", coll.Name(), desiredName, dropErr))
				continue
			}
			if _, err2 := coll.Indexes().CreateOne(ctx, m); err2 != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): recreate failed: %v", coll.Name(), desiredName, err2))
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", sig),
				zap.Bool("unique", unique),
				zap.String("took", time.Since(start).String()))
			continue
		}

		if isDuplicateKeyErr(err) && unique {
			errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index, duplicates present", coll.Name(), desiredName))
			continue
		}

		zap.L().Warn("index ensure failed",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", sig),
			zap.Error(err))
		errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func dropBySig(ctx context.Context, coll *mongo.Collection, sig string) error {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var idx struct {
			Name string `bson:"name"`
			Key  bson.D `bson:"key"`
		}
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if keySig(idx.Key) == sig {
			_, err := coll.Indexes().DropOne(ctx, idx.Name)
			return err
		}
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all users (case/diacritics folded).
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_emailci"),
		},
		// Role lists sorted by name (students picker, teacher directory).
		{
			Keys: bson.D{
				{Key: "role", Value: 1},
				{Key: "full_name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_users_role_fullnameci_id"),
		},
	})
}

func ensureClasses(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("classes")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Class pickers list by grade level, highest first.
		{
			Keys:    bson.D{{Key: "grade_level", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_classes_gradelevel_id"),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "section", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_classes_nameci_section"),
		},
	})
}

func ensureSubjects(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("subjects")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_subjects_nameci"),
		},
	})
}

func ensureEnrollments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("enrollments")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// A student appears at most once per class.
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "class_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_enrollments_student_class"),
		},
		// Roster lookups by class.
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}},
			Options: options.Index().SetName("idx_enrollments_class"),
		},
	})
}

func ensureTimetableEntries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("timetable_entries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Grid assembly fetches a class's week ordered by day then start time.
		{
			Keys: bson.D{
				{Key: "class_id", Value: 1},
				{Key: "day_of_week", Value: 1},
				{Key: "start_time", Value: 1},
			},
			Options: options.Index().SetName("idx_timetable_class_day_start"),
		},
		// Teacher schedule views.
		{
			Keys:    bson.D{{Key: "teacher_id", Value: 1}, {Key: "day_of_week", Value: 1}},
			Options: options.Index().SetName("idx_timetable_teacher_day"),
		},
	})
}

func ensureAttendance(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("attendance")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// The save path deletes and reinserts the whole (class, date) batch.
		{
			Keys:    bson.D{{Key: "class_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_attendance_class_date"),
		},
		// Student history reads newest dates first.
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("idx_attendance_student_date"),
		},
	})
}

func ensureLeaves(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("leaves")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Teacher/admin inboxes are scoped by sent_to, newest first.
		{
			Keys:    bson.D{{Key: "sent_to", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_leaves_sentto_created"),
		},
		// A student's own requests, newest first.
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_leaves_student_created"),
		},
	})
}

func ensureAnnouncements(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("announcements")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_announcements_created"),
		},
	})
}
