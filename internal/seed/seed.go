package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/mvidal/agenda/internal/app/models"
	appRepos "github.com/mvidal/agenda/internal/app/repositories"
	"github.com/mvidal/agenda/internal/pkg/apperrors"
	"github.com/mvidal/agenda/internal/pkg/auth"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
)

// CreateDefaultData seeds the default admin account when no admin exists.
// The install would otherwise have no account able to create others.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default admin account...")

	admins, err := userRepo.ListByRole(ctx, appModels.RoleAdmin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing admin accounts")
		return err
	}
	if len(admins) > 0 {
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		Username:     defaultAdminUsername,
		PasswordHash: hash,
		Role:         appModels.RoleAdmin,
	}
	if _, err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			// Another instance seeded it first
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Warn().Str("username", defaultAdminUsername).Msg("Default admin account created, change its password")
	return nil
}
