package cart

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCheckout = CheckoutInfo{
	FullName:   "Asha Rao",
	Phone:      "9876543210",
	Address:    "12 MG Road",
	State:      "Karnataka",
	Pincode:    "560001",
	CardNumber: "4111111111111111",
	CardName:   "ASHA RAO",
}

// ============================================
// CreateOrder Tests
// ============================================

func TestSynchronizer_CreateOrder(t *testing.T) {
	sync, resources, sessions := newTestCart(t)
	user := loginTestUser(sessions)
	ctx := context.Background()

	require.NoError(t, sync.Add(ctx, widget))
	require.NoError(t, sync.Add(ctx, widget))

	order, err := sync.CreateOrder(ctx, testCheckout)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderID, "ORD"))
	assert.Len(t, order.OrderID, 9)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, "Asha Rao", order.UserName)
	assert.Equal(t, user.Email, order.UserEmail)
	assert.Equal(t, "9876543210", order.UserPhone)
	assert.Equal(t, "12 MG Road", order.ShippingAddress.Address)
	assert.Equal(t, "Karnataka", order.ShippingAddress.State)
	assert.Equal(t, "560001", order.ShippingAddress.Pincode)
	assert.Equal(t, "card", order.PaymentMethod)
	assert.Equal(t, "1111", order.PaymentDetails.CardLastFour)
	assert.Equal(t, "ASHA RAO", order.PaymentDetails.CardName)
	assert.Equal(t, "confirmed", order.Status)
	assert.NotEmpty(t, order.OrderDate)
	assert.NotEmpty(t, order.ID)

	require.Len(t, order.Items, 1)
	assert.Equal(t, widget.ID, order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 200.0, order.Subtotal)
	assert.Equal(t, 40.0, order.Shipping)
	assert.Equal(t, 240.0, order.Total)

	// Snapshot was persisted to the orders collection
	assert.Len(t, resources.Records("orders"), 1)
	// Placing an order does not clear the cart by itself
	assert.Equal(t, 2, sync.TotalItems())
}

func TestSynchronizer_CreateOrder_Anonymous(t *testing.T) {
	sync, resources, _ := newTestCart(t)

	order, err := sync.CreateOrder(context.Background(), testCheckout)

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Nil(t, order)
	assert.Empty(t, resources.CreateCalls)
}

func TestSynchronizer_CreateOrder_PropagatesFailure(t *testing.T) {
	sync, resources, sessions := newTestCart(t)
	loginTestUser(sessions)
	ctx := context.Background()

	require.NoError(t, sync.Add(ctx, widget))
	resources.CreateErr = errors.New("connection refused")

	order, err := sync.CreateOrder(ctx, testCheckout)

	require.Error(t, err)
	assert.Nil(t, order)
}

func TestSynchronizer_CreateOrder_EmptyCart_NoShipping(t *testing.T) {
	sync, _, sessions := newTestCart(t)
	loginTestUser(sessions)

	order, err := sync.CreateOrder(context.Background(), testCheckout)

	require.NoError(t, err)
	assert.Empty(t, order.Items)
	assert.Equal(t, 0.0, order.Subtotal)
	assert.Equal(t, 0.0, order.Shipping)
	assert.Equal(t, 0.0, order.Total)
}

// ============================================
// Orders History Tests
// ============================================

func TestSynchronizer_Orders_FiltersToCurrentUser(t *testing.T) {
	sync, resources, sessions := newTestCart(t)
	resources.Seed("orders",
		map[string]any{"orderId": "ORD000001", "userId": "user-1", "total": 240, "status": "confirmed"},
		map[string]any{"orderId": "ORD000002", "userId": "user-2", "total": 90, "status": "confirmed"},
	)
	loginTestUser(sessions)

	orders, err := sync.Orders(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD000001", orders[0].OrderID)
}

func TestSynchronizer_Orders_Anonymous(t *testing.T) {
	sync, _, _ := newTestCart(t)

	orders, err := sync.Orders(context.Background())

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Nil(t, orders)
}

func TestLastFour(t *testing.T) {
	tests := []struct {
		name     string
		card     string
		expected string
	}{
		{"full card number", "4111111111111111", "1111"},
		{"short input", "42", "42"},
		{"exactly four", "1234", "1234"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lastFour(tt.card))
		})
	}
}
