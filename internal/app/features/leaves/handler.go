// internal/app/features/leaves/handler.go
package leaves

import (
	uierrors "github.com/dmcateer/classtrack/internal/app/features/errors"
	leavestore "github.com/dmcateer/classtrack/internal/app/store/leaves"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the leave request handlers.
type Handler struct {
	DB     *mongo.Database
	Store  *leavestore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a leaves Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  leavestore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}
