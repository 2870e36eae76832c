package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderMissingFields(t *testing.T) {
	t.Run("complete order", func(t *testing.T) {
		order := Order{
			OrderID:              101,
			InvoiceNumber:        "INV-101",
			CustomerFullName:     "Ahmed Raza",
			OrderDeliveryAddress: "House 12, Street 4",
			OrderItems: []OrderItem{
				{ItemDescription: "Paracetamol", ItemQuantity: 2, ItemRate: 50, ItemAmount: 100},
			},
		}
		assert.Empty(t, order.MissingFields())
	})

	t.Run("item fields carry their index", func(t *testing.T) {
		order := Order{
			OrderID:              101,
			InvoiceNumber:        "INV-101",
			CustomerFullName:     "Ahmed Raza",
			OrderDeliveryAddress: "House 12, Street 4",
			OrderItems: []OrderItem{
				{ItemDescription: "Paracetamol", ItemQuantity: 2, ItemRate: 50, ItemAmount: 100},
				{ItemDescription: "Syrup", ItemRate: 120, ItemAmount: 120},
			},
		}
		assert.Equal(t, []string{"OrderItems[1].ItemQuantity"}, order.MissingFields())
	})

	t.Run("empty order", func(t *testing.T) {
		missing := Order{}.MissingFields()
		assert.Contains(t, missing, "OrderID")
		assert.Contains(t, missing, "InvoiceNumber")
		assert.Contains(t, missing, "OrderItems")
	})
}
