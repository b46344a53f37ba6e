// internal/app/features/attendance/handler.go
package attendance

import (
	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	attendancestore "github.com/dmcateer/classtrack/internal/app/store/attendance"
	classstore "github.com/dmcateer/classtrack/internal/app/store/classes"
	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the attendance marking and history handlers.
type Handler struct {
	DB      *mongo.Database
	Store   *attendancestore.Store
	Classes *classstore.Store
	Users   *userstore.Store
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
}

// NewHandler constructs an attendance Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Store:   attendancestore.New(db),
		Classes: classstore.New(db),
		Users:   userstore.New(db),
		Log:     logger,
		ErrLog:  errLog,
	}
}
