// server/internal/database/seeder.go
package database

import (
	"context"
	"fmt"
	"time"

	"global-track-api-server/config"
	"global-track-api-server/internal/auth"
	"global-track-api-server/internal/models"
	"global-track-api-server/internal/store"

	"go.uber.org/zap"
)

// SeedAdmin creates the first admin account from config when the users
// collection is empty, so a fresh deployment can be logged into.
func SeedAdmin(ctx context.Context, st store.Store, cfg config.AdminConfig, logger *zap.Logger) error {
	count, err := st.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("admin account already exists, seeding skipped")
		return nil
	}

	if cfg.Email == "" || cfg.Password == "" {
		return fmt.Errorf("no users exist and admin.email/admin.password are not configured")
	}

	hashedPassword, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:     cfg.Email,
		Name:      cfg.Name,
		Password:  hashedPassword,
		Role:      "superadmin",
		Status:    "active",
		CreatedAt: time.Now(),
	}
	if err := st.InsertUser(ctx, &admin); err != nil {
		return err
	}

	logger.Info("admin account seeded", zap.String("email", cfg.Email))
	return nil
}
