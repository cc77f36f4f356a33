package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/example/storefront/internal/store"
)

// ShippingCost is the flat shipping fee charged on any non-empty cart.
const ShippingCost = 40

// OrderItem is a line-item snapshot embedded in an order, captured at
// submission time.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type ShippingAddress struct {
	Address string `json:"address"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type PaymentDetails struct {
	CardLastFour string `json:"cardLastFour"`
	CardName     string `json:"cardName"`
}

// Order is the immutable checkout snapshot stored in the orders collection.
type Order struct {
	ID              string          `json:"id,omitempty"`
	OrderID         string          `json:"orderId"`
	UserID          string          `json:"userId"`
	UserName        string          `json:"userName"`
	UserEmail       string          `json:"userEmail"`
	UserPhone       string          `json:"userPhone"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentDetails  PaymentDetails  `json:"paymentDetails"`
	Items           []OrderItem     `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Total           float64         `json:"total"`
	OrderDate       string          `json:"orderDate"`
	Status          string          `json:"status"`
}

// CheckoutInfo is the shipping and payment input collected at checkout.
type CheckoutInfo struct {
	FullName   string
	Phone      string
	Address    string
	State      string
	Pincode    string
	CardNumber string
	CardName   string
}

// CreateOrder snapshots the cached cart lines into an order and posts it to
// the remote store. The failure is propagated: the caller must know whether
// the order was placed. The cart itself is not cleared here.
func (s *Synchronizer) CreateOrder(ctx context.Context, info CheckoutInfo) (*Order, error) {
	user, ok := s.sessions.Current()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	lines := s.Lines()
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Image:     l.Image,
		})
	}

	subtotal := s.TotalPrice()
	shipping := 0.0
	if len(lines) > 0 {
		shipping = ShippingCost
	}

	order := Order{
		OrderID:   newOrderID(),
		UserID:    user.ID,
		UserName:  info.FullName,
		UserEmail: user.Email,
		UserPhone: info.Phone,
		ShippingAddress: ShippingAddress{
			Address: info.Address,
			State:   info.State,
			Pincode: info.Pincode,
		},
		PaymentMethod: "card",
		PaymentDetails: PaymentDetails{
			CardLastFour: lastFour(info.CardNumber),
			CardName:     info.CardName,
		},
		Items:     items,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal + shipping,
		OrderDate: time.Now().UTC().Format(time.RFC3339),
		Status:    "confirmed",
	}

	var created Order
	if err := s.store.Create(ctx, store.CollectionOrders, order, &created); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &created, nil
}

// Orders returns the current user's order history, newest data as stored.
func (s *Synchronizer) Orders(ctx context.Context) ([]Order, error) {
	userID := s.sessions.UserID()
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	var all []Order
	if err := s.store.List(ctx, store.CollectionOrders, &all); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	mine := make([]Order, 0, len(all))
	for _, o := range all {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

// newOrderID generates ids like ORD482915, from the trailing digits of the
// current unix-millisecond clock.
func newOrderID() string {
	return fmt.Sprintf("ORD%06d", time.Now().UnixMilli()%1_000_000)
}

func lastFour(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
