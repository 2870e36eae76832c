package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/srm-logistics/delivery-service/internal/auth"
	"github.com/srm-logistics/delivery-service/internal/blob"
	"github.com/srm-logistics/delivery-service/internal/entities"

	"golang.org/x/crypto/bcrypt"
)

type RiderRepo interface {
	SaveRider(ctx context.Context, rider entities.Rider) error
	ContactConflict(ctx context.Context, email, mobile, altMobile, cnic string) (string, error)

	GetRiderByMobile(ctx context.Context, mobile string) (entities.Rider, error)
	GetRiderByCNIC(ctx context.Context, cnic string) (entities.Rider, error)
	GetRiderByUID(ctx context.Context, riderUID string) (entities.Rider, error)
	ListRiders(ctx context.Context) ([]entities.Rider, error)
	ListActiveRiders(ctx context.Context) ([]entities.Rider, error)
	RiderUIDExists(ctx context.Context, riderUID string) (bool, error)

	UpdateCurrentStatus(ctx context.Context, riderUID, status string) error
	UpdateFCMToken(ctx context.Context, riderUID, token string) error
	HireRider(ctx context.Context, h entities.HireRequest) error
	UpdateEmploymentStatus(ctx context.Context, cnic, status, actionTaken, actionTakenBy string) error
	DeleteRiderByCNIC(ctx context.Context, cnic string) error
}

// TokenIssuer signs a bearer token for an authenticated identity.
type TokenIssuer interface {
	Issue(subject, role string) (string, error)
}

type riderService struct {
	logger *slog.Logger
	repo   RiderRepo
	blobs  blob.Storage
	tokens TokenIssuer
}

func NewRiderService(logger *slog.Logger, repo RiderRepo, blobs blob.Storage, tokens TokenIssuer) *riderService {
	return &riderService{
		logger: logger.With(slog.String("service", "rider")),
		repo:   repo,
		blobs:  blobs,
		tokens: tokens,
	}
}

// Register stores a new rider in the New-Registration state. The profile
// image, when present, goes to the blob store first and only its URL is
// persisted. Returns entities.ErrRiderExists wrapped with the conflicting
// field when a contact detail is already registered.
func (s *riderService) Register(ctx context.Context, rider entities.Rider, password string, profileImage []byte) error {
	conflict, err := s.repo.ContactConflict(ctx, rider.Email, rider.MobileNumber, rider.AltMobileNumber, rider.CNIC)
	if err != nil {
		return err
	}
	if conflict != "" {
		return fmt.Errorf("%w: %s", entities.ErrRiderExists, conflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	rider.PasswordHash = string(hash)

	if len(profileImage) > 0 {
		url, err := s.blobs.Store(ctx, profileImage, "riders/profile", rider.CNIC+"-profile")
		if err != nil {
			return fmt.Errorf("failed to store profile image: %w", err)
		}
		rider.ProfileImageURL = url
	}

	rider.EmploymentStatus = entities.EmploymentNewRegistration

	if err := s.repo.SaveRider(ctx, rider); err != nil {
		return err
	}

	s.logger.Info("rider registered", slog.String("cnic", rider.CNIC))
	return nil
}

// CheckAvailability reports whether any of the contact details are taken.
func (s *riderService) CheckAvailability(ctx context.Context, email, mobile, altMobile, cnic string) error {
	conflict, err := s.repo.ContactConflict(ctx, email, mobile, altMobile, cnic)
	if err != nil {
		return err
	}
	if conflict != "" {
		return fmt.Errorf("%w: %s", entities.ErrRiderExists, conflict)
	}
	return nil
}

// Login verifies the password of an Active rider and issues a bearer token.
// Riders still in registration, or suspended, cannot log in.
func (s *riderService) Login(ctx context.Context, mobile, password string) (entities.Rider, string, error) {
	rider, err := s.repo.GetRiderByMobile(ctx, mobile)
	if err != nil {
		return entities.Rider{}, "", err
	}

	if rider.EmploymentStatus != entities.EmploymentActive {
		return entities.Rider{}, "", entities.ErrRiderNotActive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rider.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return entities.Rider{}, "", entities.ErrInvalidCredentials
		}
		return entities.Rider{}, "", fmt.Errorf("failed to compare password: %w", err)
	}

	token, err := s.tokens.Issue(rider.RiderUID, auth.RoleRider)
	if err != nil {
		return entities.Rider{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return rider, token, nil
}

func (s *riderService) UpdateStatus(ctx context.Context, riderUID, status string) error {
	return s.repo.UpdateCurrentStatus(ctx, riderUID, status)
}

func (s *riderService) UpdateFCMToken(ctx context.Context, riderUID, token string) error {
	return s.repo.UpdateFCMToken(ctx, riderUID, token)
}

func (s *riderService) ListRiders(ctx context.Context) ([]entities.Rider, error) {
	return s.repo.ListRiders(ctx)
}

func (s *riderService) ListActiveRiders(ctx context.Context) ([]entities.Rider, error) {
	return s.repo.ListActiveRiders(ctx)
}

func (s *riderService) GetRiderByUID(ctx context.Context, riderUID string) (entities.Rider, error) {
	return s.repo.GetRiderByUID(ctx, riderUID)
}

// Hire assigns the operational UID to a registered rider and activates the
// account. The UID must be unused and the CNIC must belong to a known rider.
func (s *riderService) Hire(ctx context.Context, h entities.HireRequest) error {
	if _, err := s.repo.GetRiderByCNIC(ctx, h.CNIC); err != nil {
		return err
	}

	taken, err := s.repo.RiderUIDExists(ctx, h.RiderUID)
	if err != nil {
		return err
	}
	if taken {
		return entities.ErrRiderUIDTaken
	}

	if err := s.repo.HireRider(ctx, h); err != nil {
		return err
	}

	s.logger.Info("rider hired", slog.String("cnic", h.CNIC), slog.String("rider_uid", h.RiderUID))
	return nil
}

// ChangeEmployment suspends or reactivates a hired rider. Only the Active
// and Suspended states can be set through this path, the registration and
// hiring states are managed by their own flows.
func (s *riderService) ChangeEmployment(ctx context.Context, cnic, status, actionTaken, actionTakenBy string) error {
	if status != entities.EmploymentActive && status != entities.EmploymentSuspended {
		return fmt.Errorf("%w: %q", entities.ErrInvalidEmployment, status)
	}

	if err := s.repo.UpdateEmploymentStatus(ctx, cnic, status, actionTaken, actionTakenBy); err != nil {
		return err
	}

	s.logger.Info("rider employment changed",
		slog.String("cnic", cnic),
		slog.String("status", status),
	)
	return nil
}

func (s *riderService) Delete(ctx context.Context, cnic string) error {
	return s.repo.DeleteRiderByCNIC(ctx, cnic)
}
