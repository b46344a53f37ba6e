// internal/app/features/timetable/handler.go
package timetable

import (
	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	classstore "github.com/dmcateer/classtrack/internal/app/store/classes"
	subjectstore "github.com/dmcateer/classtrack/internal/app/store/subjects"
	timetablestore "github.com/dmcateer/classtrack/internal/app/store/timetable"
	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the timetable grid and entry handlers.
type Handler struct {
	DB       *mongo.Database
	Store    *timetablestore.Store
	Classes  *classstore.Store
	Subjects *subjectstore.Store
	Users    *userstore.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

// NewHandler constructs a timetable Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Store:    timetablestore.New(db),
		Classes:  classstore.New(db),
		Subjects: subjectstore.New(db),
		Users:    userstore.New(db),
		Log:      logger,
		ErrLog:   errLog,
	}
}
