// Package seed creates the default accounts a fresh install needs
package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/internhub/backend/internal/app/models"
	"github.com/internhub/backend/internal/app/repositories"
	"github.com/internhub/backend/internal/pkg/apperrors"
	"github.com/internhub/backend/internal/pkg/auth"
)

const defaultAdminEmail = "admin@internhub.app"

// CreateDefaultData ensures a default admin account exists so a fresh
// database is usable. The password comes from ADMIN_PASSWORD, falling
// back to a development default.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin user")
		return err
	}
	if exists {
		lgr.Debug().Msg("Default admin user already exists, skipping seed")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
		lgr.Warn().Msg("ADMIN_PASSWORD not set, seeding admin with development default")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &models.User{
		Email:     defaultAdminEmail,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Administrator",
		Phone:     "0000000000",
		RoleType:  models.RoleAdmin,
		IsActive:  true,
	}

	adminID, err := userRepo.CreateUser(ctx, nil, admin)
	if err != nil {
		// A concurrent instance may have seeded first
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	lgr.Info().Int64("adminID", adminID).Str("email", defaultAdminEmail).Msg("Default admin user created")
	return nil
}
