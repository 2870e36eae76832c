package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srm-logistics/delivery-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var orderColumns = []string{
	"order_id", "invoice_number", "delivery_hint", "order_date", "order_time",
	"gst_amount", "delivery_service_charge", "net_amount",
	"gst_percentage_paid", "gst_paid_amount",
	"payment_method", "payment_cleared_by", "payment_status",
	"customer_name", "customer_contact", "delivery_address", "address_type",
	"delivery_date", "delivery_time", "delivery_coordinates",
	"status", "rider_uid", "rider_name",
	"delivery_duration", "delivery_distance", "fuel_consumption",
	"customer_feedback", "cleared",
}

type orderRepo struct {
	base
}

func NewOrderRepo(db *sqlx.DB) *orderRepo {
	return &orderRepo{base: newBase(db)}
}

// SaveOrder inserts the order row. The order_id primary key makes reuse of an
// id a unique violation, which is surfaced as entities.ErrOrderExists, so two
// concurrent creates with the same id cannot both win.
func (r *orderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns(orderColumns...).
		Values(
			o.OrderID, o.InvoiceNumber, nullString(o.DeliveryHint), nullString(o.OrderDate), nullString(o.OrderTime),
			nullString(o.GSTAmount), nullString(o.DeliveryServiceCharge), nullString(o.NetAmount),
			nullString(o.GSTPercentagePaid), nullString(o.GSTPaidAmount),
			nullString(o.PaymentMethod), nullString(o.PaymentClearedBy), nullString(o.PaymentStatus),
			o.CustomerName, nullString(o.CustomerContact), o.DeliveryAddress, nullString(o.AddressType),
			nullString(o.DeliveryDate), nullString(o.DeliveryTime), nullString(o.DeliveryCoordinates),
			o.Status.String(), nullString(o.RiderUID), nullString(o.RiderName),
			nullString(o.DeliveryDuration), nullString(o.DeliveryDistance), nullFloat64(o.FuelConsumption),
			nullString(o.CustomerFeedback), o.Cleared,
		).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return entities.ErrOrderExists
	}
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// SaveItems inserts all line items of an order in one statement. It must run
// in the same transaction as SaveOrder.
func (r *orderRepo) SaveItems(ctx context.Context, orderID int, items []entities.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "description", "quantity", "rate", "amount")

	for _, it := range items {
		q = q.Values(orderID, it.Description, it.Quantity, it.Rate, it.Amount)
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}
	return nil
}

func (r *orderRepo) GetOrderByID(ctx context.Context, orderID int) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	return r.getOrder(ctx, query, args)
}

func (r *orderRepo) GetOrderByInvoice(ctx context.Context, invoiceNumber string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"invoice_number": invoiceNumber}).
		MustSql()

	return r.getOrder(ctx, query, args)
}

func (r *orderRepo) getOrder(ctx context.Context, query string, args []any) (entities.Order, error) {
	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.itemsByOrders(ctx, []int{order.OrderID})
	if err != nil {
		return entities.Order{}, err
	}

	return OrderToEntity(order, items[order.OrderID]), nil
}

func (r *orderRepo) GetOrdersByStatus(ctx context.Context, status entities.OrderStatus) ([]entities.Order, error) {
	return r.listOrders(ctx, sq.Eq{"status": status.String()})
}

func (r *orderRepo) GetOrdersByRider(ctx context.Context, riderUID string) ([]entities.Order, error) {
	return r.listOrders(ctx, sq.Eq{"rider_uid": riderUID})
}

// GetUnclearedOrdersByRider returns the rider's open workload: orders that
// are assigned to them and not yet cleared.
func (r *orderRepo) GetUnclearedOrdersByRider(ctx context.Context, riderUID string) ([]entities.Order, error) {
	return r.listOrders(ctx, sq.Eq{"rider_uid": riderUID, "cleared": false})
}

func (r *orderRepo) GetAllOrders(ctx context.Context) ([]entities.Order, error) {
	return r.listOrders(ctx, nil)
}

func (r *orderRepo) listOrders(ctx context.Context, pred any) ([]entities.Order, error) {
	q := r.qb.Select(orderColumns...).From("orders").OrderBy("order_id")
	if pred != nil {
		q = q.Where(pred)
	}
	query, args := q.MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]int, len(orders))
	for i, o := range orders {
		ids[i] = o.OrderID
	}

	itemsMap, err := r.itemsByOrders(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o, itemsMap[o.OrderID]))
	}
	return result, nil
}

// itemsByOrders fetches line items for the whole id set in one query instead
// of one lookup per order.
func (r *orderRepo) itemsByOrders(ctx context.Context, orderIDs []int) (map[int][]OrderItem, error) {
	query, args := r.qb.Select("order_id", "description", "quantity", "rate", "amount").
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id").
		MustSql()

	var items []OrderItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}

	itemsMap := make(map[int][]OrderItem, len(orderIDs))
	for _, it := range items {
		itemsMap[it.OrderID] = append(itemsMap[it.OrderID], it)
	}
	return itemsMap, nil
}

// AssignOrder moves an assignable order to Assigned and sets the rider in a
// single conditional update. The status guard lives in the WHERE clause and
// is built from the transition table, so two concurrent assignments cannot
// both succeed. When no row is updated the current status is probed to tell
// "not found" apart from "not pending".
func (r *orderRepo) AssignOrder(ctx context.Context, orderID int, riderUID, riderName string) error {
	sources := entities.TransitionSources(entities.StatusAssigned)
	from := make([]string, len(sources))
	for i, s := range sources {
		from[i] = s.String()
	}

	query, args := r.qb.Update("orders").
		Set("rider_uid", riderUID).
		Set("rider_name", riderName).
		Set("status", entities.StatusAssigned.String()).
		Where(sq.Eq{"order_id": orderID, "status": from}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to assign order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	query, args = r.qb.Select("status").
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var status string
	err = r.getContext(ctx, &status, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check order status: %w", err)
	}
	return entities.ErrOrderNotPending
}
