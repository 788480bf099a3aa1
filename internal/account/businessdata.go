package account

import (
	"context"
	"fmt"

	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

// BusinessData aggregates one seller's records into the dashboard numbers.
// Counts are computed from live listings on every call; nothing is cached
// or denormalized.
type BusinessData struct {
	backend storage.Backend
}

func NewBusinessData(backend storage.Backend) *BusinessData {
	return &BusinessData{backend: backend}
}

// Summary is the dashboard aggregate for one seller.
type Summary struct {
	Products       int   `json:"products"`
	ActiveProducts int   `json:"activeProducts"`
	Customers      int   `json:"customers"`
	Orders         int   `json:"orders"`
	PendingOrders  int   `json:"pendingOrders"`
	PaidOrders     int   `json:"paidOrders"`
	RevenuePaise   int64 `json:"revenuePaise"`
}

// Summarize lists the seller's products, customers and orders and folds
// them into a Summary. Revenue counts paid, confirmed and shipped orders.
func (b *BusinessData) Summarize(ctx context.Context, userID string) (*Summary, error) {
	products, err := b.backend.Products().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	customers, err := b.backend.Customers().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	orders, err := b.backend.Orders().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	s := &Summary{
		Products:  len(products),
		Customers: len(customers),
		Orders:    len(orders),
	}
	for _, p := range products {
		if p.Active {
			s.ActiveProducts++
		}
	}
	for _, o := range orders {
		switch o.Status {
		case models.OrderPending, models.OrderAwaitingPayment:
			s.PendingOrders++
		case models.OrderPaid, models.OrderConfirmed, models.OrderShipped:
			s.PaidOrders++
			s.RevenuePaise += o.AmountPaise
		}
	}
	return s, nil
}
