package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
)

// Order is a delivery order together with its line items. OrderID comes from
// the invoicing side, it is never generated here.
type Order struct {
	OrderID               int
	InvoiceNumber         string
	DeliveryHint          string
	OrderDate             string
	OrderTime             string
	GSTAmount             string
	DeliveryServiceCharge string
	NetAmount             string
	GSTPercentagePaid     string
	GSTPaidAmount         string
	PaymentMethod         string
	PaymentClearedBy      string
	PaymentStatus         string
	CustomerName          string
	CustomerContact       string
	DeliveryAddress       string
	AddressType           string
	DeliveryDate          string
	DeliveryTime          string
	DeliveryCoordinates   string
	Status                OrderStatus

	// RiderUID is empty until the order is assigned.
	RiderUID  string
	RiderName string

	DeliveryDuration string
	DeliveryDistance string
	FuelConsumption  float64
	CustomerFeedback string
	Cleared          bool

	Items []OrderItem
}

// OrderItem is a single line of an order. Amount is taken from the caller as
// is and is not recomputed from Quantity*Rate.
type OrderItem struct {
	Description string
	Quantity    int
	Rate        float64
	Amount      float64
}

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderExists     = errors.New("order id already exists")
	ErrOrderNotPending = errors.New("order is not in a pending state")
	ErrNoOrders        = errors.New("no orders found")
	ErrInvalidOrder    = errors.New("invalid order")
)

// Marshal encodes the order for the read cache.
func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(o)
}
