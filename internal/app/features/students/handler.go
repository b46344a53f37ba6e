// internal/app/features/students/handler.go
package students

import (
	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	classstore "github.com/dmcateer/classtrack/internal/app/store/classes"
	enrollmentstore "github.com/dmcateer/classtrack/internal/app/store/enrollments"
	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the student roster handlers.
type Handler struct {
	DB          *mongo.Database
	Users       *userstore.Store
	Classes     *classstore.Store
	Enrollments *enrollmentstore.Store
	Log         *zap.Logger
	ErrLog      *uierrors.ErrorLogger
}

// NewHandler constructs a students Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Users:       userstore.New(db),
		Classes:     classstore.New(db),
		Enrollments: enrollmentstore.New(db),
		Log:         logger,
		ErrLog:      errLog,
	}
}
