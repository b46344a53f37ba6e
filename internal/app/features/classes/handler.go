// internal/app/features/classes/handler.go
package classes

import (
	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	classstore "github.com/dmcateer/classtrack/internal/app/store/classes"
	enrollmentstore "github.com/dmcateer/classtrack/internal/app/store/enrollments"
	timetablestore "github.com/dmcateer/classtrack/internal/app/store/timetable"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all class catalog handlers.
type Handler struct {
	DB          *mongo.Database
	Store       *classstore.Store
	Enrollments *enrollmentstore.Store
	Timetable   *timetablestore.Store
	Log         *zap.Logger
	ErrLog      *uierrors.ErrorLogger
}

// NewHandler constructs a classes Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Store:       classstore.New(db),
		Enrollments: enrollmentstore.New(db),
		Timetable:   timetablestore.New(db),
		Log:         logger,
		ErrLog:      errLog,
	}
}
