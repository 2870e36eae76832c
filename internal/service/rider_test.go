package service_test

import (
	"context"
	"testing"

	"github.com/srm-logistics/delivery-service/internal/entities"
	"github.com/srm-logistics/delivery-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRiderRepo struct {
	mock.Mock
}

func (m *mockRiderRepo) SaveRider(ctx context.Context, rider entities.Rider) error {
	return m.Called(ctx, rider).Error(0)
}

func (m *mockRiderRepo) ContactConflict(ctx context.Context, email, mobile, altMobile, cnic string) (string, error) {
	args := m.Called(ctx, email, mobile, altMobile, cnic)
	return args.String(0), args.Error(1)
}

func (m *mockRiderRepo) GetRiderByMobile(ctx context.Context, mobile string) (entities.Rider, error) {
	args := m.Called(ctx, mobile)
	return args.Get(0).(entities.Rider), args.Error(1)
}

func (m *mockRiderRepo) GetRiderByCNIC(ctx context.Context, cnic string) (entities.Rider, error) {
	args := m.Called(ctx, cnic)
	return args.Get(0).(entities.Rider), args.Error(1)
}

func (m *mockRiderRepo) GetRiderByUID(ctx context.Context, riderUID string) (entities.Rider, error) {
	args := m.Called(ctx, riderUID)
	return args.Get(0).(entities.Rider), args.Error(1)
}

func (m *mockRiderRepo) ListRiders(ctx context.Context) ([]entities.Rider, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Rider), args.Error(1)
}

func (m *mockRiderRepo) ListActiveRiders(ctx context.Context) ([]entities.Rider, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Rider), args.Error(1)
}

func (m *mockRiderRepo) RiderUIDExists(ctx context.Context, riderUID string) (bool, error) {
	args := m.Called(ctx, riderUID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRiderRepo) UpdateCurrentStatus(ctx context.Context, riderUID, status string) error {
	return m.Called(ctx, riderUID, status).Error(0)
}

func (m *mockRiderRepo) UpdateFCMToken(ctx context.Context, riderUID, token string) error {
	return m.Called(ctx, riderUID, token).Error(0)
}

func (m *mockRiderRepo) HireRider(ctx context.Context, h entities.HireRequest) error {
	return m.Called(ctx, h).Error(0)
}

func (m *mockRiderRepo) UpdateEmploymentStatus(ctx context.Context, cnic, status, actionTaken, actionTakenBy string) error {
	return m.Called(ctx, cnic, status, actionTaken, actionTakenBy).Error(0)
}

func (m *mockRiderRepo) DeleteRiderByCNIC(ctx context.Context, cnic string) error {
	return m.Called(ctx, cnic).Error(0)
}

type fakeBlobStorage struct {
	stored map[string][]byte
}

func newFakeBlobStorage() *fakeBlobStorage {
	return &fakeBlobStorage{stored: make(map[string][]byte)}
}

func (f *fakeBlobStorage) Store(ctx context.Context, data []byte, folder, name string) (string, error) {
	key := folder + "/" + name
	f.stored[key] = data
	return "https://img.example.com/" + key, nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(subject, role string) (string, error) {
	return "token-for-" + subject, nil
}

func TestRiderService_Register(t *testing.T) {
	rider := entities.Rider{
		FullName:     "Bilal Khan",
		Email:        "bilal@example.com",
		MobileNumber: "03001234567",
		CNIC:         "35202-1234567-1",
	}

	t.Run("OK", func(t *testing.T) {
		repo := new(mockRiderRepo)
		repo.On("ContactConflict", mock.Anything, rider.Email, rider.MobileNumber, "", rider.CNIC).Return("", nil)
		repo.On("SaveRider", mock.Anything, mock.MatchedBy(func(r entities.Rider) bool {
			return r.EmploymentStatus == entities.EmploymentNewRegistration &&
				r.PasswordHash != "" && r.PasswordHash != "secret" &&
				r.ProfileImageURL == "https://img.example.com/riders/profile/35202-1234567-1-profile"
		})).Return(nil)

		blobs := newFakeBlobStorage()
		svc := service.NewRiderService(discardLogger(), repo, blobs, fakeTokenIssuer{})

		err := svc.Register(context.Background(), rider, "secret", []byte{0xFF, 0xD8})
		require.NoError(t, err)
		assert.Len(t, blobs.stored, 1)
		repo.AssertExpectations(t)
	})

	t.Run("conflicting contact", func(t *testing.T) {
		repo := new(mockRiderRepo)
		repo.On("ContactConflict", mock.Anything, rider.Email, rider.MobileNumber, "", rider.CNIC).Return("mobileNumber", nil)

		svc := service.NewRiderService(discardLogger(), repo, newFakeBlobStorage(), fakeTokenIssuer{})

		err := svc.Register(context.Background(), rider, "secret", nil)
		require.ErrorIs(t, err, entities.ErrRiderExists)
		assert.Contains(t, err.Error(), "mobileNumber")
		repo.AssertExpectations(t)
	})

	t.Run("no image skips the blob store", func(t *testing.T) {
		repo := new(mockRiderRepo)
		repo.On("ContactConflict", mock.Anything, rider.Email, rider.MobileNumber, "", rider.CNIC).Return("", nil)
		repo.On("SaveRider", mock.Anything, mock.MatchedBy(func(r entities.Rider) bool {
			return r.ProfileImageURL == ""
		})).Return(nil)

		blobs := newFakeBlobStorage()
		svc := service.NewRiderService(discardLogger(), repo, blobs, fakeTokenIssuer{})

		require.NoError(t, svc.Register(context.Background(), rider, "secret", nil))
		assert.Empty(t, blobs.stored)
	})
}

func TestRiderService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	active := entities.Rider{
		RiderUID:         "RDR-77",
		MobileNumber:     "03001234567",
		PasswordHash:     string(hash),
		EmploymentStatus: entities.EmploymentActive,
	}

	testCases := []struct {
		name         string
		password     string
		mockBehavior func(repo *mockRiderRepo)
		wantErr      error
		wantToken    string
	}{
		{
			name:     "OK",
			password: "secret",
			mockBehavior: func(repo *mockRiderRepo) {
				repo.On("GetRiderByMobile", mock.Anything, "03001234567").Return(active, nil)
			},
			wantToken: "token-for-RDR-77",
		},
		{
			name:     "wrong password",
			password: "not-secret",
			mockBehavior: func(repo *mockRiderRepo) {
				repo.On("GetRiderByMobile", mock.Anything, "03001234567").Return(active, nil)
			},
			wantErr: entities.ErrInvalidCredentials,
		},
		{
			name:     "unknown mobile",
			password: "secret",
			mockBehavior: func(repo *mockRiderRepo) {
				repo.On("GetRiderByMobile", mock.Anything, "03001234567").Return(entities.Rider{}, entities.ErrRiderNotFound)
			},
			wantErr: entities.ErrRiderNotFound,
		},
		{
			name:     "not yet hired",
			password: "secret",
			mockBehavior: func(repo *mockRiderRepo) {
				pending := active
				pending.EmploymentStatus = entities.EmploymentNewRegistration
				repo.On("GetRiderByMobile", mock.Anything, "03001234567").Return(pending, nil)
			},
			wantErr: entities.ErrRiderNotActive,
		},
		{
			name:     "suspended",
			password: "secret",
			mockBehavior: func(repo *mockRiderRepo) {
				suspended := active
				suspended.EmploymentStatus = entities.EmploymentSuspended
				repo.On("GetRiderByMobile", mock.Anything, "03001234567").Return(suspended, nil)
			},
			wantErr: entities.ErrRiderNotActive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockRiderRepo)
			tc.mockBehavior(repo)

			svc := service.NewRiderService(discardLogger(), repo, newFakeBlobStorage(), fakeTokenIssuer{})

			rider, token, err := svc.Login(context.Background(), "03001234567", tc.password)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantToken, token)
			assert.Equal(t, "RDR-77", rider.RiderUID)
		})
	}
}

func TestRiderService_Hire(t *testing.T) {
	hire := entities.HireRequest{CNIC: "35202-1234567-1", RiderUID: "RDR-88"}

	t.Run("OK", func(t *testing.T) {
		repo := new(mockRiderRepo)
		repo.On("GetRiderByCNIC", mock.Anything, hire.CNIC).Return(entities.Rider{CNIC: hire.CNIC}, nil)
		repo.On("RiderUIDExists", mock.Anything, "RDR-88").Return(false, nil)
		repo.On("HireRider", mock.Anything, hire).Return(nil)

		svc := service.NewRiderService(discardLogger(), repo, newFakeBlobStorage(), fakeTokenIssuer{})

		require.NoError(t, svc.Hire(context.Background(), hire))
		repo.AssertExpectations(t)
	})

	t.Run("unknown cnic", func(t *testing.T) {
		repo := new(mockRiderRepo)
		repo.On("GetRiderByCNIC", mock.Anything, hire.CNIC).Return(entities.Rider{}, entities.ErrRiderNotFound)

		svc := service.NewRiderService(discardLogger(), repo, newFakeBlobStorage(), fakeTokenIssuer{})

		require.ErrorIs(t, svc.Hire(context.Background(), hire), entities.ErrRiderNotFound)
	})

	t.Run("uid already taken", func(t *testing.T) {
		repo := new(mockRiderRepo)
		repo.On("GetRiderByCNIC", mock.Anything, hire.CNIC).Return(entities.Rider{CNIC: hire.CNIC}, nil)
		repo.On("RiderUIDExists", mock.Anything, "RDR-88").Return(true, nil)

		svc := service.NewRiderService(discardLogger(), repo, newFakeBlobStorage(), fakeTokenIssuer{})

		require.ErrorIs(t, svc.Hire(context.Background(), hire), entities.ErrRiderUIDTaken)
		repo.AssertNotCalled(t, "HireRider", mock.Anything, mock.Anything)
	})
}

func TestRiderService_ChangeEmployment(t *testing.T) {
	const cnic = "35202-1234567-1"

	t.Run("suspends a rider", func(t *testing.T) {
		repo := new(mockRiderRepo)
		repo.On("UpdateEmploymentStatus", mock.Anything, cnic, entities.EmploymentSuspended, "Suspended", "admin").Return(nil)

		svc := service.NewRiderService(discardLogger(), repo, newFakeBlobStorage(), fakeTokenIssuer{})

		require.NoError(t, svc.ChangeEmployment(context.Background(), cnic, entities.EmploymentSuspended, "Suspended", "admin"))
		repo.AssertExpectations(t)
	})

	t.Run("reactivates a rider", func(t *testing.T) {
		repo := new(mockRiderRepo)
		repo.On("UpdateEmploymentStatus", mock.Anything, cnic, entities.EmploymentActive, "", "").Return(nil)

		svc := service.NewRiderService(discardLogger(), repo, newFakeBlobStorage(), fakeTokenIssuer{})

		require.NoError(t, svc.ChangeEmployment(context.Background(), cnic, entities.EmploymentActive, "", ""))
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown status before touching the repo", func(t *testing.T) {
		repo := new(mockRiderRepo)
		svc := service.NewRiderService(discardLogger(), repo, newFakeBlobStorage(), fakeTokenIssuer{})

		err := svc.ChangeEmployment(context.Background(), cnic, "Fired", "", "")
		require.ErrorIs(t, err, entities.ErrInvalidEmployment)
		repo.AssertNotCalled(t, "UpdateEmploymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown cnic", func(t *testing.T) {
		repo := new(mockRiderRepo)
		repo.On("UpdateEmploymentStatus", mock.Anything, cnic, entities.EmploymentSuspended, "", "").Return(entities.ErrRiderNotFound)

		svc := service.NewRiderService(discardLogger(), repo, newFakeBlobStorage(), fakeTokenIssuer{})

		require.ErrorIs(t, svc.ChangeEmployment(context.Background(), cnic, entities.EmploymentSuspended, "", ""), entities.ErrRiderNotFound)
	})
}
