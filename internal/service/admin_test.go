package service_test

import (
	"context"
	"testing"

	"github.com/srm-logistics/delivery-service/internal/auth"
	"github.com/srm-logistics/delivery-service/internal/entities"
	"github.com/srm-logistics/delivery-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) GetAdminByUsername(ctx context.Context, username string) (entities.Admin, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(entities.Admin), args.Error(1)
}

// recordingIssuer remembers the role it was asked to sign.
type recordingIssuer struct {
	subject string
	role    string
}

func (r *recordingIssuer) Issue(subject, role string) (string, error) {
	r.subject = subject
	r.role = role
	return "signed-" + subject, nil
}

func TestAdminService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := entities.Admin{ID: 1, Username: "ops-admin", FullName: "Ops Admin", PasswordHash: string(hash)}

	t.Run("OK issues an admin token", func(t *testing.T) {
		repo := new(mockAdminRepo)
		repo.On("GetAdminByUsername", mock.Anything, "ops-admin").Return(stored, nil)

		issuer := &recordingIssuer{}
		svc := service.NewAdminService(discardLogger(), repo, issuer)

		admin, token, err := svc.Login(context.Background(), "ops-admin", "secret")
		require.NoError(t, err)
		assert.Equal(t, "signed-ops-admin", token)
		assert.Equal(t, "ops-admin", admin.Username)
		assert.Equal(t, auth.RoleAdmin, issuer.role)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockAdminRepo)
		repo.On("GetAdminByUsername", mock.Anything, "ops-admin").Return(stored, nil)

		issuer := &recordingIssuer{}
		svc := service.NewAdminService(discardLogger(), repo, issuer)

		_, _, err := svc.Login(context.Background(), "ops-admin", "not-secret")
		require.ErrorIs(t, err, entities.ErrInvalidCredentials)
		assert.Empty(t, issuer.role)
	})

	t.Run("unknown username", func(t *testing.T) {
		repo := new(mockAdminRepo)
		repo.On("GetAdminByUsername", mock.Anything, "ghost").Return(entities.Admin{}, entities.ErrAdminNotFound)

		svc := service.NewAdminService(discardLogger(), repo, &recordingIssuer{})

		_, _, err := svc.Login(context.Background(), "ghost", "secret")
		require.ErrorIs(t, err, entities.ErrAdminNotFound)
	})
}
