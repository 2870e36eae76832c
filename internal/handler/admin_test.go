package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/srm-logistics/delivery-service/internal/auth"
	"github.com/srm-logistics/delivery-service/internal/entities"
	"github.com/srm-logistics/delivery-service/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAdminService struct {
	mock.Mock
}

func (m *mockAdminService) Login(ctx context.Context, username, password string) (entities.Admin, string, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(entities.Admin), args.String(1), args.Error(2)
}

func newAdminRouter(svc handler.AdminService) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chi.NewRouter()
	handler.NewAdminHandler(logger, svc).Init(router)
	return router
}

func TestAdminHandler_Login(t *testing.T) {
	stored := entities.Admin{ID: 1, Username: "ops-admin", FullName: "Ops Admin"}

	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mockAdminService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "success",
			body: `{"userName": "ops-admin", "password": "secret"}`,
			mockBehavior: func(svc *mockAdminService) {
				svc.On("Login", mock.Anything, "ops-admin", "secret").Return(stored, "signed-admin-token", nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"token":"signed-admin-token"`,
		},
		{
			name: "unknown username",
			body: `{"userName": "ghost", "password": "secret"}`,
			mockBehavior: func(svc *mockAdminService) {
				svc.On("Login", mock.Anything, "ghost", "secret").
					Return(entities.Admin{}, "", entities.ErrAdminNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `User does not exist`,
		},
		{
			name: "wrong password",
			body: `{"userName": "ops-admin", "password": "oops"}`,
			mockBehavior: func(svc *mockAdminService) {
				svc.On("Login", mock.Anything, "ops-admin", "oops").
					Return(entities.Admin{}, "", entities.ErrInvalidCredentials).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `Invalid password`,
		},
		{
			name:         "missing credentials",
			body:         `{"userName": "ops-admin"}`,
			mockBehavior: func(svc *mockAdminService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `missingFields`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockAdminService)
			tc.mockBehavior(svc)
			router := newAdminRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/admin-login", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
			svc.AssertExpectations(t)
		})
	}
}

// A token minted for an admin login must open the admin-gated routes.
func TestAdminHandler_TokenOpensAdminRoutes(t *testing.T) {
	adminSvc := new(mockAdminService)
	token, err := testTokens.Issue("ops-admin", auth.RoleAdmin)
	assert.NoError(t, err)
	adminSvc.On("Login", mock.Anything, "ops-admin", "secret").
		Return(entities.Admin{Username: "ops-admin"}, token, nil).Once()
	adminRouter := newAdminRouter(adminSvc)

	req := httptest.NewRequest(http.MethodPost, "/admin-login", strings.NewReader(`{"userName": "ops-admin", "password": "secret"}`))
	rec := httptest.NewRecorder()
	adminRouter.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	riderSvc := new(mockRiderService)
	riderSvc.On("ListRiders", mock.Anything).
		Return([]entities.Rider{{RiderUID: "RDR-77", FullName: "Bilal Khan"}}, nil).Once()
	riderRouter := newRiderRouter(riderSvc)

	req = httptest.NewRequest(http.MethodGet, "/all-riders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	riderRouter.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "RDR-77")
}
