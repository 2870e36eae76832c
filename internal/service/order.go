package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/srm-logistics/delivery-service/internal/entities"
	"github.com/srm-logistics/delivery-service/pkg/trm"
	"github.com/srm-logistics/delivery-service/pkg/utils"
)

type OrderRepo interface {
	SaveOrder(ctx context.Context, o entities.Order) error
	SaveItems(ctx context.Context, orderID int, items []entities.OrderItem) error

	GetOrderByID(ctx context.Context, orderID int) (entities.Order, error)
	GetOrderByInvoice(ctx context.Context, invoiceNumber string) (entities.Order, error)
	GetOrdersByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error)
	GetOrdersByRider(ctx context.Context, riderUID string) ([]entities.Order, error)
	GetUnclearedOrdersByRider(ctx context.Context, riderUID string) ([]entities.Order, error)
	GetAllOrders(ctx context.Context) ([]entities.Order, error)

	AssignOrder(ctx context.Context, orderID int, riderUID, riderName string) error
}

// RiderDirectory supplies rider identity for assignment target validation.
type RiderDirectory interface {
	GetRiderByUID(ctx context.Context, riderUID string) (entities.Rider, error)
}

// EventPublisher is notified after successful state changes. Implementations
// must not fail the calling operation.
type EventPublisher interface {
	OrderCreated(ctx context.Context, orderID int)
	OrderAssigned(ctx context.Context, orderID int, riderUID string)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	riders    RiderDirectory
	events    EventPublisher
	cache     Cache
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, riders RiderDirectory, events EventPublisher, cache Cache) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		riders:    riders,
		events:    events,
		cache:     cache,
	}
}

var readRetry = utils.RetryConfig{
	InitialDelay: 100 * time.Millisecond,
	MaxAttempts:  3,
	Multiplier:   2,
}

// CreateOrder persists the order and all of its items as one transaction.
// An empty status defaults to Pending; a supplied status must be a member of
// the status enum. A reused order id fails with entities.ErrOrderExists and
// leaves nothing behind.
func (s *orderService) CreateOrder(ctx context.Context, order entities.Order) error {
	if order.Status == "" {
		order.Status = entities.StatusPending
	}
	if !order.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", entities.ErrInvalidOrder, order.Status)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.SaveOrder(ctx, order); err != nil {
			return err
		}
		return s.repo.SaveItems(ctx, order.OrderID, order.Items)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("order created", slog.Int("order_id", order.OrderID), slog.Int("items", len(order.Items)))
	s.events.OrderCreated(ctx, order.OrderID)
	return nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID int) (entities.Order, error) {
	key := orderKey(orderID)
	if data, ok := s.cache.Get(key); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err == nil {
			return order, nil
		}
		// недекодируемая запись бесполезна
		s.cache.Delete(key)
	}

	var order entities.Order
	err := utils.Retry(readRetry, func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, orderID)
		return err
	}, entities.ErrOrderNotFound)
	if err != nil {
		return entities.Order{}, err
	}

	if data, err := order.Marshal(); err == nil {
		s.cache.Set(key, data)
	}
	return order, nil
}

func (s *orderService) GetOrderByInvoice(ctx context.Context, invoiceNumber string) (entities.Order, error) {
	var order entities.Order
	err := utils.Retry(readRetry, func() error {
		var err error
		order, err = s.repo.GetOrderByInvoice(ctx, invoiceNumber)
		return err
	}, entities.ErrOrderNotFound)
	if err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

// GetOrdersByStatus returns entities.ErrNoOrders when nothing matches, the
// empty result is surfaced to the caller as not found.
func (s *orderService) GetOrdersByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	orders, err := s.repo.GetOrdersByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, entities.ErrNoOrders
	}
	return orders, nil
}

func (s *orderService) GetOrdersByRider(ctx context.Context, riderUID string) ([]entities.Order, error) {
	orders, err := s.repo.GetOrdersByRider(ctx, riderUID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, entities.ErrNoOrders
	}
	return orders, nil
}

func (s *orderService) GetOrdersForDelivery(ctx context.Context, riderUID string) ([]entities.Order, error) {
	orders, err := s.repo.GetUnclearedOrdersByRider(ctx, riderUID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, entities.ErrNoOrders
	}
	return orders, nil
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]entities.Order, error) {
	return s.repo.GetAllOrders(ctx)
}

// AssignOrder moves a Pending order to Assigned and records the rider. The
// rider must exist in the directory. Only the Pending -> Assigned transition
// is allowed, anything else fails with entities.ErrOrderNotPending.
func (s *orderService) AssignOrder(ctx context.Context, orderID int, riderUID string) error {
	rider, err := s.riders.GetRiderByUID(ctx, riderUID)
	if err != nil {
		return err
	}

	if err := s.repo.AssignOrder(ctx, orderID, rider.RiderUID, rider.FullName); err != nil {
		return err
	}

	s.cache.Delete(orderKey(orderID))
	s.logger.Info("order assigned", slog.Int("order_id", orderID), slog.String("rider_uid", riderUID))
	s.events.OrderAssigned(ctx, orderID, riderUID)
	return nil
}

func orderKey(orderID int) string {
	return strconv.Itoa(orderID)
}
