// internal/app/features/subjects/handler.go
package subjects

import (
	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	subjectstore "github.com/dmcateer/classtrack/internal/app/store/subjects"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns all subject catalog handlers.
type Handler struct {
	DB     *mongo.Database
	Store  *subjectstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a subjects Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  subjectstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}
