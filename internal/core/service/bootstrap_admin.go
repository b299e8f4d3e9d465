package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-manager/internal/core/domain"
	"github.com/sweetshop/sweet-shop-manager/internal/core/ports"
)

// BootstrapAdmin provisions the configured admin account on startup.
// It does nothing when credentials are not configured or an admin exists.
func BootstrapAdmin(ctx context.Context, repo ports.UserRepository, auth *AuthService, in ports.RegisterInput, log zerolog.Logger) error {
	if in.Email == "" || in.Password == "" {
		log.Debug().Msg("admin bootstrap: no credentials configured, skipping")
		return nil
	}

	exists, err := repo.HasAdmin(ctx)
	if err != nil {
		return fmt.Errorf("admin bootstrap: %w", err)
	}
	if exists {
		log.Debug().Msg("admin bootstrap: admin already present")
		return nil
	}

	if in.Name == "" {
		in.Name = "Administrator"
	}
	if _, err := auth.ProvisionAdmin(ctx, in); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return fmt.Errorf("admin bootstrap: email %s already belongs to a non-admin user: %w", in.Email, err)
		}
		return fmt.Errorf("admin bootstrap: %w", err)
	}
	return nil
}
