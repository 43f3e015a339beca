package orders

import (
	"context"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WindowMetrics aggregates orders inside one trailing window.
type WindowMetrics struct {
	Orders   int     `json:"orders"`
	Amount   float64 `json:"amount"`
	Quantity int     `json:"quantity"`
}

var metricWindows = []struct {
	Name     string
	Duration time.Duration
}{
	{"last30min", 30 * time.Minute},
	{"last2hours", 2 * time.Hour},
	{"last1day", 24 * time.Hour},
	{"last1week", 7 * 24 * time.Hour},
}

type ListResult struct {
	AllOrders  []models.Order           `json:"allOrders"`
	AllMetrics WindowMetrics            `json:"allMetrics"`
	Metrics    map[string]WindowMetrics `json:"metrics"`
}

// ListOrders returns every order newest-first plus per-window aggregates.
// Windows are computed in memory over the full result set; fine at the data
// volumes this dashboard sees.
func (s *Service) ListOrders(ctx context.Context) (*ListResult, error) {
	allOrders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	now := time.Now()
	result := &ListResult{
		AllOrders: allOrders,
		Metrics:   make(map[string]WindowMetrics, len(metricWindows)),
	}

	for _, order := range allOrders {
		result.AllMetrics.Orders++
		result.AllMetrics.Amount += order.EffectiveAmount()
		result.AllMetrics.Quantity += order.TotalQuantity()
	}

	for _, window := range metricWindows {
		cutoff := now.Add(-window.Duration)
		var metrics WindowMetrics
		for _, order := range allOrders {
			if order.CreatedAt.Before(cutoff) {
				continue
			}
			metrics.Orders++
			metrics.Amount += order.EffectiveAmount()
			metrics.Quantity += order.TotalQuantity()
		}
		result.Metrics[window.Name] = metrics
	}

	return result, nil
}

type UserOrdersResult struct {
	TotalOrders    int            `json:"totalOrders"`
	CountLast60Min int            `json:"countLast60Min"`
	CountLast2Days int            `json:"countLast2Days"`
	CountLast1Week int            `json:"countLast1Week"`
	Orders         []models.Order `json:"orders"`
}

// UserOrders returns one user's orders newest-first with trailing-window
// counts. An empty history is a valid result, not an error.
func (s *Service) UserOrders(ctx context.Context, userID string) (*UserOrdersResult, error) {
	if userID == "" {
		return nil, &ValidationError{Reason: "userid is required"}
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, &ValidationError{Reason: "invalid userid format"}
	}

	orders, err := s.orders.OrdersByUser(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	now := time.Now()
	result := &UserOrdersResult{
		TotalOrders: len(orders),
		Orders:      orders,
	}
	for _, order := range orders {
		age := now.Sub(order.CreatedAt)
		if age <= time.Hour {
			result.CountLast60Min++
		}
		if age <= 2*24*time.Hour {
			result.CountLast2Days++
		}
		if age <= 7*24*time.Hour {
			result.CountLast1Week++
		}
	}

	return result, nil
}
