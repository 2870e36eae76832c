package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/srm-logistics/delivery-service/internal/auth"
	"github.com/srm-logistics/delivery-service/internal/entities"

	"golang.org/x/crypto/bcrypt"
)

type AdminRepo interface {
	GetAdminByUsername(ctx context.Context, username string) (entities.Admin, error)
}

type adminService struct {
	logger *slog.Logger
	repo   AdminRepo
	tokens TokenIssuer
}

func NewAdminService(logger *slog.Logger, repo AdminRepo, tokens TokenIssuer) *adminService {
	return &adminService{
		logger: logger.With(slog.String("service", "admin")),
		repo:   repo,
		tokens: tokens,
	}
}

// Login verifies the portal operator's password and issues an admin token.
// The token is what opens the admin-gated order and rider routes.
func (s *adminService) Login(ctx context.Context, username, password string) (entities.Admin, string, error) {
	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		return entities.Admin{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return entities.Admin{}, "", entities.ErrInvalidCredentials
		}
		return entities.Admin{}, "", fmt.Errorf("failed to compare password: %w", err)
	}

	token, err := s.tokens.Issue(admin.Username, auth.RoleAdmin)
	if err != nil {
		return entities.Admin{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("admin logged in", slog.String("username", admin.Username))
	return admin, token, nil
}
