package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/srm-logistics/delivery-service/internal/auth"
	"github.com/srm-logistics/delivery-service/internal/entities"
	"github.com/srm-logistics/delivery-service/internal/middleware"
	"github.com/srm-logistics/delivery-service/pkg/utils"
)

type OrderService interface {
	CreateOrder(ctx context.Context, order entities.Order) error
	GetOrderByID(ctx context.Context, orderID int) (entities.Order, error)
	GetOrderByInvoice(ctx context.Context, invoiceNumber string) (entities.Order, error)
	GetOrdersByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error)
	GetOrdersByRider(ctx context.Context, riderUID string) ([]entities.Order, error)
	GetOrdersForDelivery(ctx context.Context, riderUID string) ([]entities.Order, error)
	GetAllOrders(ctx context.Context) ([]entities.Order, error)
	AssignOrder(ctx context.Context, orderID int, riderUID string) error
}

type OrderHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
	verifier middleware.TokenVerifier
}

func NewOrderHandler(logger *slog.Logger, svc OrderService, verifier middleware.TokenVerifier) *OrderHandler {
	return &OrderHandler{
		logger:   logger.With(slog.String("handler", "order")),
		validate: validator.New(),
		svc:      svc,
		verifier: verifier,
	}
}

func (h *OrderHandler) Init(r chi.Router) {
	r.Post("/create-order", h.CreateOrder)
	r.Get("/orders-byId", h.GetOrderByID)
	r.Get("/orders-byInvoiceNumber", h.GetOrderByInvoice)
	r.Get("/orders-byRiderUID", h.GetOrdersByRider)
	r.Get("/orders-status", h.GetOrdersByStatus)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(h.verifier))
		r.With(middleware.RequireRole(auth.RoleRider, auth.RoleAdmin)).
			Get("/orders-for-delivery", h.GetOrdersForDelivery)
		r.With(middleware.RequireRole(auth.RoleAdmin)).
			Get("/orders-all", h.GetAllOrders)
		r.With(middleware.RequireRole(auth.RoleAdmin)).
			Put("/orders/assign", h.AssignOrder)
	})
}

// CreateOrder регистрирует новый заказ вместе с позициями.
// @Summary      Create an order
// @Description  Persists the order and its items atomically
// @Tags         orders
// @Accept       json
// @Param        order  body      Order  true  "Order payload"
// @Success      201  {object}  utils.Response
// @Failure      400  {object}  utils.MissingFieldsResponse "Missing fields or duplicate order id"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /create-order [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req Order
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if missing := req.MissingFields(); len(missing) > 0 {
		utils.WriteMissingFields(w, missing)
		return
	}

	err := h.svc.CreateOrder(ctx, OrderJSONToEntity(req))

	if errors.Is(err, entities.ErrOrderExists) {
		utils.WriteError(w, "Order with this OrderID already exists", http.StatusBadRequest)
		return
	}
	if errors.Is(err, entities.ErrInvalidOrder) {
		utils.WriteError(w, "Invalid order status", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create order", slog.Any("error", err), slog.Int("order_id", req.OrderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ordersCreated.Inc()
	utils.WriteJSON(w, utils.Response{
		Success: true,
		Message: "Order created successfully",
		Data:    map[string]int{"OrderID": req.OrderID},
	}, http.StatusCreated)
}

// GetOrderByID возвращает заказ по числовому идентификатору.
// @Summary      Get an order by id
// @Tags         orders
// @Param        orderId  query     int  true  "Order id"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.Response "Invalid order id"
// @Failure      404  {object}  utils.Response "Order not found"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /orders-byId [get]
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := strconv.Atoi(r.URL.Query().Get("orderId"))
	if err != nil || orderID <= 0 {
		utils.WriteError(w, "orderId must be a positive integer", http.StatusBadRequest)
		return
	}

	order, err := h.svc.GetOrderByID(ctx, orderID)

	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order", slog.Any("error", err), slog.Int("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteData(w, OrderEntityToJSON(order))
}

// GetOrderByInvoice возвращает заказ по номеру счёта.
// @Summary      Get an order by invoice number
// @Tags         orders
// @Param        invoiceNumber  query     string  true  "Invoice number"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.Response "Missing invoice number"
// @Failure      404  {object}  utils.Response "Order not found"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /orders-byInvoiceNumber [get]
func (h *OrderHandler) GetOrderByInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	invoiceNumber := r.URL.Query().Get("invoiceNumber")
	if err := h.validate.Var(invoiceNumber, "required"); err != nil {
		utils.WriteError(w, "invoiceNumber is required", http.StatusBadRequest)
		return
	}

	order, err := h.svc.GetOrderByInvoice(ctx, invoiceNumber)

	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order by invoice", slog.Any("error", err), slog.String("invoice", invoiceNumber))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteData(w, OrderEntityToJSON(order))
}

// GetOrdersByRider возвращает все заказы, назначенные райдеру.
// @Summary      List orders assigned to a rider
// @Tags         orders
// @Param        riderUID  query     string  true  "Rider UID"
// @Success      200  {object}  utils.Response{data=[]Order}
// @Failure      400  {object}  utils.Response "Missing rider uid"
// @Failure      404  {object}  utils.Response "No orders for this rider"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /orders-byRiderUID [get]
func (h *OrderHandler) GetOrdersByRider(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	riderUID := r.URL.Query().Get("riderUID")
	if err := h.validate.Var(riderUID, "required"); err != nil {
		utils.WriteError(w, "riderUID is required", http.StatusBadRequest)
		return
	}

	orders, err := h.svc.GetOrdersByRider(ctx, riderUID)

	if errors.Is(err, entities.ErrNoOrders) {
		utils.WriteError(w, "No orders found for this rider", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list rider orders", slog.Any("error", err), slog.String("rider_uid", riderUID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteData(w, OrdersEntityToJSON(orders))
}

// GetOrdersByStatus возвращает заказы в указанном статусе.
// @Summary      List orders by status
// @Tags         orders
// @Param        status  query     string  true  "Order status"  Enums(Pending, Assigned, Delivered, Cancelled)
// @Success      200  {object}  utils.Response{data=[]Order}
// @Failure      400  {object}  utils.Response "Unknown status"
// @Failure      404  {object}  utils.Response "No orders in this status"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /orders-status [get]
func (h *OrderHandler) GetOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := entities.OrderStatus(r.URL.Query().Get("status"))
	if !status.Valid() {
		utils.WriteError(w, "Unknown order status", http.StatusBadRequest)
		return
	}

	orders, err := h.svc.GetOrdersByStatus(ctx, status)

	if errors.Is(err, entities.ErrNoOrders) {
		utils.WriteError(w, "No orders found with this status", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders by status", slog.Any("error", err), slog.String("status", status.String()))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteData(w, OrdersEntityToJSON(orders))
}

// GetOrdersForDelivery возвращает незакрытые заказы райдера.
// @Summary      List uncleared orders for delivery
// @Tags         orders
// @Security     BearerAuth
// @Param        riderId  query     string  true  "Rider UID"
// @Success      200  {object}  utils.Response{data=[]Order}
// @Failure      400  {object}  utils.Response "Missing rider id"
// @Failure      404  {object}  utils.Response "Nothing to deliver"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /orders-for-delivery [get]
func (h *OrderHandler) GetOrdersForDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	riderUID := r.URL.Query().Get("riderId")
	if err := h.validate.Var(riderUID, "required"); err != nil {
		utils.WriteError(w, "riderId is required", http.StatusBadRequest)
		return
	}

	orders, err := h.svc.GetOrdersForDelivery(ctx, riderUID)

	if errors.Is(err, entities.ErrNoOrders) {
		utils.WriteError(w, "No orders pending delivery for this rider", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list delivery orders", slog.Any("error", err), slog.String("rider_uid", riderUID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteData(w, OrdersEntityToJSON(orders))
}

// GetAllOrders возвращает все заказы.
// @Summary      List every order
// @Tags         orders
// @Security     BearerAuth
// @Success      200  {object}  utils.Response{data=[]Order}
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /orders-all [get]
func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.svc.GetAllOrders(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteData(w, OrdersEntityToJSON(orders))
}

// AssignOrder назначает заказ райдеру.
// @Summary      Assign a pending order to a rider
// @Tags         orders
// @Security     BearerAuth
// @Param        orderId  query     int     true  "Order id"
// @Param        riderId  query     string  true  "Rider UID"
// @Success      200  {object}  utils.Response
// @Failure      400  {object}  utils.Response "Order is not pending"
// @Failure      404  {object}  utils.Response "Order or rider not found"
// @Failure      500  {object}  utils.Response "Internal server error"
// @Router       /orders/assign [put]
func (h *OrderHandler) AssignOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := strconv.Atoi(r.URL.Query().Get("orderId"))
	if err != nil || orderID <= 0 {
		utils.WriteError(w, "orderId must be a positive integer", http.StatusBadRequest)
		return
	}
	riderUID := r.URL.Query().Get("riderId")
	if err := h.validate.Var(riderUID, "required"); err != nil {
		utils.WriteError(w, "riderId is required", http.StatusBadRequest)
		return
	}

	err = h.svc.AssignOrder(ctx, orderID, riderUID)

	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "Order not found", http.StatusNotFound)
		return
	case errors.Is(err, entities.ErrRiderNotFound):
		utils.WriteError(w, "Rider not found", http.StatusNotFound)
		return
	case errors.Is(err, entities.ErrOrderNotPending):
		assignConflicts.Inc()
		utils.WriteError(w, "Order is not in a pending state", http.StatusBadRequest)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to assign order", slog.Any("error", err), slog.Int("order_id", orderID), slog.String("rider_uid", riderUID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ordersAssigned.Inc()
	utils.WriteMessage(w, "Order assigned successfully", http.StatusOK)
}
