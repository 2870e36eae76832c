package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/srm-logistics/delivery-service/internal/entities"
	"github.com/srm-logistics/delivery-service/pkg/utils"
)

type AdminService interface {
	Login(ctx context.Context, username, password string) (entities.Admin, string, error)
}

type AdminHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      AdminService
}

func NewAdminHandler(logger *slog.Logger, svc AdminService) *AdminHandler {
	return &AdminHandler{
		logger:   logger.With(slog.String("handler", "admin")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *AdminHandler) Init(r chi.Router) {
	r.Post("/admin-login", h.Login)
}

// Login проверяет пароль оператора и выдаёт админский токен.
// @Summary      Admin portal login
// @Tags         admin
// @Accept       json
// @Param        credentials  body      AdminLoginRequest  true  "Username and password"
// @Success      200  {object}  utils.Response{data=AdminLoginResponse}
// @Failure      400  {object}  utils.MissingFieldsResponse "Missing credentials"
// @Failure      401  {object}  utils.Response "Invalid password"
// @Failure      404  {object}  utils.Response "Unknown username"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /admin-login [post]
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AdminLoginRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var missing []string
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			for _, fe := range vErrs {
				missing = append(missing, fe.Field())
			}
		}
		utils.WriteMissingFields(w, missing)
		return
	}

	admin, token, err := h.svc.Login(ctx, req.Username, req.Password)

	switch {
	case errors.Is(err, entities.ErrAdminNotFound):
		utils.WriteError(w, "User does not exist", http.StatusNotFound)
		return
	case errors.Is(err, entities.ErrInvalidCredentials):
		utils.WriteError(w, "Invalid password", http.StatusUnauthorized)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to log admin in", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteData(w, AdminLoginResponse{Token: token, Admin: AdminEntityToJSON(admin)})
}
