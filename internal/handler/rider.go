package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/srm-logistics/delivery-service/internal/auth"
	"github.com/srm-logistics/delivery-service/internal/entities"
	"github.com/srm-logistics/delivery-service/internal/middleware"
	"github.com/srm-logistics/delivery-service/pkg/utils"
)

// 5 MB is enough for a single profile photo.
const maxRegisterFormSize = 5 << 20

type RiderService interface {
	Register(ctx context.Context, rider entities.Rider, password string, profileImage []byte) error
	CheckAvailability(ctx context.Context, email, mobile, altMobile, cnic string) error
	Login(ctx context.Context, mobile, password string) (entities.Rider, string, error)
	UpdateStatus(ctx context.Context, riderUID, status string) error
	UpdateFCMToken(ctx context.Context, riderUID, token string) error
	ListRiders(ctx context.Context) ([]entities.Rider, error)
	ListActiveRiders(ctx context.Context) ([]entities.Rider, error)
	Hire(ctx context.Context, h entities.HireRequest) error
	ChangeEmployment(ctx context.Context, cnic, status, actionTaken, actionTakenBy string) error
	Delete(ctx context.Context, cnic string) error
}

type RiderHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      RiderService
	verifier middleware.TokenVerifier
}

func NewRiderHandler(logger *slog.Logger, svc RiderService, verifier middleware.TokenVerifier) *RiderHandler {
	return &RiderHandler{
		logger:   logger.With(slog.String("handler", "rider")),
		validate: validator.New(),
		svc:      svc,
		verifier: verifier,
	}
}

func (h *RiderHandler) Init(r chi.Router) {
	r.Post("/rider-register", h.Register)
	r.Post("/rider-exist", h.CheckAvailability)
	r.Post("/rider-login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(h.verifier))

		r.With(middleware.RequireRole(auth.RoleRider, auth.RoleAdmin)).
			Put("/status-update-rider", h.UpdateStatus)
		r.With(middleware.RequireRole(auth.RoleRider, auth.RoleAdmin)).
			Put("/fcm-token-update", h.UpdateFCMToken)

		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/all-riders", h.ListRiders)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/active-riders", h.ListActiveRiders)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/hire-rider-direct", h.Hire)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/rider-change-status", h.ChangeEmployment)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/rider-delete-admin", h.Delete)
	})
}

// Register регистрирует нового райдера с фотографией профиля.
// @Summary      Register a rider
// @Description  Accepts a multipart form with rider details and a profile image
// @Tags         riders
// @Accept       multipart/form-data
// @Success      201  {object}  utils.Response
// @Failure      400  {object}  utils.MissingFieldsResponse "Missing fields or contact already registered"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /rider-register [post]
func (h *RiderHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxRegisterFormSize); err != nil {
		utils.WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	form := r.FormValue
	rider := entities.Rider{
		FullName:        form("fullName"),
		Email:           form("email"),
		MobileNumber:    form("mobileNumber"),
		AltMobileNumber: form("altMobileNumber"),
		CNIC:            form("cnicNumber"),
		DateOfBirth:     form("dob"),
		CNICIssueDate:   form("doi"),
		CNICAddress:     form("cnicAddress"),
		CurrentAddress:  form("currentAddress"),
		BloodGroup:      form("riderBloodGroup"),
		BranchName:      form("branchNameAF"),

		HasLicense:     form("riderHaveLicense") == "Yes",
		LicenseNumber:  form("licenseNo"),
		LicenseIssued:  form("licenseIssueDate"),
		LicenseExpires: form("licenseExpDate"),

		HasBike:       form("riderHaveBike") == "Yes",
		BikeName:      form("bikeName"),
		BikeNumber:    form("bikeNumber"),
		BikeModelYear: form("bikeModelY"),

		RegistrationDate: form("registrationSubmitDate"),
	}
	password := form("password")

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"fullName", rider.FullName},
		{"email", rider.Email},
		{"mobileNumber", rider.MobileNumber},
		{"cnicNumber", rider.CNIC},
		{"password", password},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		utils.WriteMissingFields(w, missing)
		return
	}

	profileImage, err := readFormFile(r, "profileImage")
	if err != nil {
		utils.WriteError(w, "profileImage is required", http.StatusBadRequest)
		return
	}

	err = h.svc.Register(ctx, rider, password, profileImage)

	if errors.Is(err, entities.ErrRiderExists) {
		utils.WriteError(w, conflictMessage(err), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to register rider", slog.Any("error", err), slog.String("cnic", rider.CNIC))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ridersRegistered.Inc()
	utils.WriteMessage(w, "Rider registered successfully", http.StatusCreated)
}

// CheckAvailability проверяет, свободны ли контактные данные.
// @Summary      Check contact availability
// @Tags         riders
// @Accept       json
// @Param        contacts  body      CheckRiderRequest  true  "Contacts to check"
// @Success      200  {object}  utils.Response
// @Failure      400  {object}  utils.Response "Contact already registered"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /rider-exist [post]
func (h *RiderHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CheckRiderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.svc.CheckAvailability(ctx, req.Email, req.MobileNumber, req.AltMobileNumber, req.CNIC)

	if errors.Is(err, entities.ErrRiderExists) {
		utils.WriteError(w, conflictMessage(err), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check rider availability", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteMessage(w, "Rider details are available", http.StatusOK)
}

// Login проверяет пароль райдера и выдаёт токен.
// @Summary      Rider login
// @Tags         riders
// @Accept       json
// @Param        credentials  body      LoginRequest  true  "Mobile number and password"
// @Success      200  {object}  utils.Response{data=LoginResponse}
// @Failure      400  {object}  utils.MissingFieldsResponse "Missing credentials"
// @Failure      401  {object}  utils.Response "Invalid credentials or inactive account"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /rider-login [post]
func (h *RiderHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
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

	rider, token, err := h.svc.Login(ctx, req.MobileNumber, req.Password)

	switch {
	case errors.Is(err, entities.ErrInvalidCredentials):
		riderLogins.WithLabelValues("rejected").Inc()
		utils.WriteError(w, "Invalid mobile number or password", http.StatusUnauthorized)
		return
	case errors.Is(err, entities.ErrRiderNotActive):
		riderLogins.WithLabelValues("inactive").Inc()
		utils.WriteError(w, "Rider account is not active", http.StatusUnauthorized)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to log rider in", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	riderLogins.WithLabelValues("ok").Inc()
	utils.WriteData(w, LoginResponse{Token: token, Rider: RiderEntityToJSON(rider)})
}

// UpdateStatus обновляет текущий статус райдера.
// @Summary      Update rider availability status
// @Tags         riders
// @Security     BearerAuth
// @Param        riderId  query     string  true  "Rider UID"
// @Param        status   query     string  true  "New status"
// @Success      200  {object}  utils.Response
// @Failure      404  {object}  utils.Response "Rider not found"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /status-update-rider [put]
func (h *RiderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	riderUID := r.URL.Query().Get("riderId")
	status := r.URL.Query().Get("status")
	if riderUID == "" || status == "" {
		utils.WriteError(w, "riderId and status are required", http.StatusBadRequest)
		return
	}

	err := h.svc.UpdateStatus(ctx, riderUID, status)

	if errors.Is(err, entities.ErrRiderNotFound) {
		utils.WriteError(w, "Rider not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update rider status", slog.Any("error", err), slog.String("rider_uid", riderUID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteMessage(w, "Rider status updated", http.StatusOK)
}

// UpdateFCMToken сохраняет пуш-токен устройства райдера.
// @Summary      Update rider FCM token
// @Tags         riders
// @Security     BearerAuth
// @Param        riderId   query     string  true  "Rider UID"
// @Param        fcmToken  query     string  true  "FCM device token"
// @Success      200  {object}  utils.Response
// @Failure      404  {object}  utils.Response "Rider not found"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /fcm-token-update [put]
func (h *RiderHandler) UpdateFCMToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	riderUID := r.URL.Query().Get("riderId")
	token := r.URL.Query().Get("fcmToken")
	if riderUID == "" || token == "" {
		utils.WriteError(w, "riderId and fcmToken are required", http.StatusBadRequest)
		return
	}

	err := h.svc.UpdateFCMToken(ctx, riderUID, token)

	if errors.Is(err, entities.ErrRiderNotFound) {
		utils.WriteError(w, "Rider not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update fcm token", slog.Any("error", err), slog.String("rider_uid", riderUID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteMessage(w, "FCM token updated", http.StatusOK)
}

// ListRiders возвращает всех зарегистрированных райдеров.
// @Summary      List every rider
// @Tags         riders
// @Security     BearerAuth
// @Success      200  {object}  utils.Response{data=[]Rider}
// @Failure      404  {object}  utils.Response "No riders registered"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /all-riders [get]
func (h *RiderHandler) ListRiders(w http.ResponseWriter, r *http.Request) {
	h.writeRiderList(w, r, h.svc.ListRiders)
}

// ListActiveRiders возвращает только действующих райдеров.
// @Summary      List active riders
// @Tags         riders
// @Security     BearerAuth
// @Success      200  {object}  utils.Response{data=[]Rider}
// @Failure      404  {object}  utils.Response "No active riders"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /active-riders [get]
func (h *RiderHandler) ListActiveRiders(w http.ResponseWriter, r *http.Request) {
	h.writeRiderList(w, r, h.svc.ListActiveRiders)
}

func (h *RiderHandler) writeRiderList(w http.ResponseWriter, r *http.Request, list func(context.Context) ([]entities.Rider, error)) {
	ctx := r.Context()

	riders, err := list(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list riders", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if len(riders) == 0 {
		utils.WriteError(w, "No riders found", http.StatusNotFound)
		return
	}

	utils.WriteData(w, RidersEntityToJSON(riders))
}

// Hire переводит зарегистрированного райдера в действующие.
// @Summary      Hire a registered rider
// @Tags         riders
// @Security     BearerAuth
// @Accept       json
// @Param        decision  body      HireRiderRequest  true  "Hire decision"
// @Success      200  {object}  utils.Response
// @Failure      400  {object}  utils.Response "UID already assigned"
// @Failure      404  {object}  utils.Response "Rider not found"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /hire-rider-direct [put]
func (h *RiderHandler) Hire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req HireRiderRequest
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

	err := h.svc.Hire(ctx, entities.HireRequest{
		CNIC:          req.CNIC,
		RiderUID:      req.RiderUID,
		JoiningDate:   req.JoiningDate,
		RecordUpdated: req.RecordUpdated,
		CheckedBy:     req.CheckedBy,
		ActionTakenBy: req.ActionTakenBy,
	})

	switch {
	case errors.Is(err, entities.ErrRiderNotFound):
		utils.WriteError(w, "Rider not found", http.StatusNotFound)
		return
	case errors.Is(err, entities.ErrRiderUIDTaken):
		utils.WriteError(w, "Rider UID is already assigned", http.StatusBadRequest)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to hire rider", slog.Any("error", err), slog.String("cnic", req.CNIC))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteMessage(w, "Rider hired successfully", http.StatusOK)
}

// ChangeEmployment приостанавливает или восстанавливает райдера.
// @Summary      Change rider employment status
// @Tags         riders
// @Security     BearerAuth
// @Param        riderCNIC      query     string  true   "Rider CNIC"
// @Param        status         query     string  true   "Active or Suspended"
// @Param        actionTaken    query     string  false  "Action description"
// @Param        actionTakenBy  query     string  false  "Acting admin"
// @Success      200  {object}  utils.Response
// @Failure      400  {object}  utils.Response "Unknown employment status"
// @Failure      404  {object}  utils.Response "Rider not found"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /rider-change-status [put]
func (h *RiderHandler) ChangeEmployment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	cnic := q.Get("riderCNIC")
	status := q.Get("status")
	if cnic == "" || status == "" {
		utils.WriteError(w, "riderCNIC and status are required", http.StatusBadRequest)
		return
	}

	err := h.svc.ChangeEmployment(ctx, cnic, status, q.Get("actionTaken"), q.Get("actionTakenBy"))

	switch {
	case errors.Is(err, entities.ErrInvalidEmployment):
		utils.WriteError(w, "Unknown employment status", http.StatusBadRequest)
		return
	case errors.Is(err, entities.ErrRiderNotFound):
		utils.WriteError(w, "Rider not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to change rider employment", slog.Any("error", err), slog.String("cnic", cnic))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteMessage(w, "Rider employment status updated", http.StatusOK)
}

// Delete удаляет райдера по CNIC.
// @Summary      Delete a rider
// @Tags         riders
// @Security     BearerAuth
// @Param        riderCNIC  query     string  true  "Rider CNIC"
// @Success      200  {object}  utils.Response
// @Failure      404  {object}  utils.Response "Rider not found"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /rider-delete-admin [delete]
func (h *RiderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cnic := r.URL.Query().Get("riderCNIC")
	if cnic == "" {
		utils.WriteError(w, "riderCNIC is required", http.StatusBadRequest)
		return
	}

	err := h.svc.Delete(ctx, cnic)

	if errors.Is(err, entities.ErrRiderNotFound) {
		utils.WriteError(w, "Rider not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete rider", slog.Any("error", err), slog.String("cnic", cnic))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteMessage(w, "Rider deleted successfully", http.StatusOK)
}

func readFormFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// conflictMessage turns the wrapped conflict field into the client message.
func conflictMessage(err error) string {
	_, field, found := strings.Cut(err.Error(), ": ")
	if !found {
		return "Rider details already registered"
	}
	return "Rider with this " + field + " is already registered"
}
