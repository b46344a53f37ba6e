// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dmcateer/classtrack/internal/app/resources"
	userstore "github.com/dmcateer/classtrack/internal/app/store/users"
	"github.com/dmcateer/classtrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to load shared resources (like templates), warm caches, or perform
// any app-wide setup that depends on config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, appCfg.AdminPassword, logger); err != nil {
			return err
		}
	}

	return nil
}

// ensureAdmin guarantees an admin account exists for the configured email.
// An existing account with a different role is promoted; a missing account
// is created when a bootstrap password is configured. Without a password
// there is nothing to create, so the account is left alone and a warning
// is logged.
func ensureAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	u, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.Role == models.RoleAdmin {
			return nil
		}
		_, err := deps.MongoDatabase.Collection("users").UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{
			"role":       models.RoleAdmin,
			"status":     "active",
			"updated_at": time.Now().UTC(),
		}})
		if err != nil {
			return err
		}
		logger.Info("promoted existing user to admin", zap.String("email", email))
		return nil

	case errors.Is(err, mongo.ErrNoDocuments):
		if password == "" {
			logger.Warn("admin account does not exist and admin_password is not set; skipping bootstrap",
				zap.String("email", email))
			return nil
		}
		_, err := users.CreateWithPassword(ctx, models.User{
			FullName: "Administrator",
			Email:    email,
			Role:     models.RoleAdmin,
			Status:   "active",
		}, password)
		if err != nil {
			return err
		}
		logger.Info("created bootstrap admin account", zap.String("email", email))
		return nil

	default:
		return err
	}
}
