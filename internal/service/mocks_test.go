package service_test

import (
	"context"
	"sync"

	"github.com/srm-logistics/delivery-service/internal/entities"
	"github.com/stretchr/testify/mock"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepo) SaveItems(ctx context.Context, orderID int, items []entities.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *mockOrderRepo) GetOrderByID(ctx context.Context, orderID int) (entities.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderRepo) GetOrderByInvoice(ctx context.Context, invoiceNumber string) (entities.Order, error) {
	args := m.Called(ctx, invoiceNumber)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderRepo) GetOrdersByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderRepo) GetOrdersByRider(ctx context.Context, riderUID string) ([]entities.Order, error) {
	args := m.Called(ctx, riderUID)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderRepo) GetUnclearedOrdersByRider(ctx context.Context, riderUID string) ([]entities.Order, error) {
	args := m.Called(ctx, riderUID)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderRepo) GetAllOrders(ctx context.Context) ([]entities.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderRepo) AssignOrder(ctx context.Context, orderID int, riderUID, riderName string) error {
	return m.Called(ctx, orderID, riderUID, riderName).Error(0)
}

type mockRiderDirectory struct {
	mock.Mock
}

func (m *mockRiderDirectory) GetRiderByUID(ctx context.Context, riderUID string) (entities.Rider, error) {
	args := m.Called(ctx, riderUID)
	return args.Get(0).(entities.Rider), args.Error(1)
}

// fakeTxManager runs the callback directly, no database involved.
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *fakeCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *fakeCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// eventRecorder collects published events for assertions.
type eventRecorder struct {
	created  []int
	assigned []int
}

func (r *eventRecorder) OrderCreated(ctx context.Context, orderID int) {
	r.created = append(r.created, orderID)
}

func (r *eventRecorder) OrderAssigned(ctx context.Context, orderID int, riderUID string) {
	r.assigned = append(r.assigned, orderID)
}
