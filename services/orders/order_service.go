package orders

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/store"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service runs the order workflow: resolve line items against the catalog,
// take stock, persist the order, and undo taken stock when a later step
// fails.
type Service struct {
	catalog store.CatalogStore
	orders  store.OrderStore
	gateway PaymentGateway
}

func NewService(catalog store.CatalogStore, orders store.OrderStore, gateway PaymentGateway) *Service {
	return &Service{
		catalog: catalog,
		orders:  orders,
		gateway: gateway,
	}
}

type RequestItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type PlaceOrderRequest struct {
	UserID        string        `json:"userid"`
	Items         []RequestItem `json:"items"`
	TotalAmount   float64       `json:"totalAmount"`
	Address       string        `json:"address"`
	PaymentMethod string        `json:"paymentMethod"`
}

// appliedDecrement records one stock decrement so it can be compensated.
type appliedDecrement struct {
	kind string
	id   primitive.ObjectID
	qty  int
}

func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	if req.UserID == "" {
		return nil, &ValidationError{Reason: "userid is required"}
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, &ValidationError{Reason: "invalid userid format"}
	}
	if len(req.Items) == 0 {
		return nil, &ValidationError{Reason: "order must contain at least one item"}
	}
	if req.TotalAmount <= 0 {
		return nil, &ValidationError{Reason: "totalAmount is required"}
	}
	if req.Address == "" {
		return nil, &ValidationError{Reason: "address is required"}
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &ValidationError{Reason: "item quantity must be positive"}
		}
	}

	// Resolve every item and check stock before touching any counter, so a
	// bad line item fails the whole request without side effects.
	resolved := make([]*store.CatalogItem, len(req.Items))
	for i, item := range req.Items {
		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, &ValidationError{Reason: "invalid product id: " + item.ProductID}
		}

		entry, err := s.catalog.Resolve(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				return nil, &NotFoundError{ID: item.ProductID}
			}
			return nil, &PersistenceError{Err: err}
		}

		if entry.StockQuantity < item.Quantity {
			return nil, &InsufficientStockError{
				Name:      entry.Name,
				Available: entry.StockQuantity,
				Requested: item.Quantity,
			}
		}
		resolved[i] = entry
	}

	// Snapshot the catalog data onto the order so later edits never rewrite
	// history, and recompute the total from resolved prices rather than
	// trusting the client's figure.
	lineItems := make([]models.OrderItem, len(req.Items))
	var total float64
	for i, item := range req.Items {
		entry := resolved[i]
		lineItems[i] = models.OrderItem{
			ProductID:   entry.ID,
			Kind:        entry.Kind,
			Name:        entry.Name,
			Price:       entry.Price,
			Quantity:    item.Quantity,
			SellerEmail: entry.SellerEmail,
			Description: entry.Description,
			Category:    entry.Category,
			Image:       entry.Image,
		}
		total += entry.Price * float64(item.Quantity)
	}

	// Take stock. Each decrement is a single conditional update, so a
	// concurrent order that grabbed the last units in the meantime makes
	// this one fail here rather than oversell.
	var applied []appliedDecrement
	for i, item := range req.Items {
		entry := resolved[i]
		err := s.catalog.DecrementStock(ctx, entry.Kind, entry.ID, item.Quantity)
		if err != nil {
			s.restoreStock(applied)
			if errors.Is(err, store.ErrInsufficientStock) {
				return nil, &InsufficientStockError{
					Name:      entry.Name,
					Available: s.currentStock(ctx, entry.ID),
					Requested: item.Quantity,
				}
			}
			return nil, &PersistenceError{Err: err}
		}
		applied = append(applied, appliedDecrement{kind: entry.Kind, id: entry.ID, qty: item.Quantity})
	}

	method := req.PaymentMethod
	if method == "" {
		method = PaymentMethodCOD
	}

	order := &models.Order{
		Reference:     uuid.NewString(),
		UserID:        userID,
		Items:         lineItems,
		TotalAmount:   total,
		Address:       req.Address,
		Status:        models.OrderStatusProcessing,
		Payment:       false,
		PaymentMethod: method,
		CreatedAt:     time.Now(),
	}

	if method == PaymentMethodOnline && s.gateway != nil {
		gatewayID, err := s.gateway.CreatePaymentOrder(total, order.Reference)
		if err != nil {
			s.restoreStock(applied)
			return nil, &PersistenceError{Err: err}
		}
		order.GatewayID = gatewayID
	}

	if err := s.orders.InsertOrder(ctx, order); err != nil {
		s.restoreStock(applied)
		return nil, &PersistenceError{Err: err}
	}

	return order, nil
}

// restoreStock puts back decrements applied before a failure. Best effort:
// a failed restore is logged, not propagated, since the order itself has
// already failed.
func (s *Service) restoreStock(applied []appliedDecrement) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, dec := range applied {
		if err := s.catalog.RestoreStock(ctx, dec.kind, dec.id, dec.qty); err != nil {
			log.Printf("failed to restore stock for %s %s: %v", dec.kind, dec.id.Hex(), err)
		}
	}
}

// currentStock re-reads an item's stock for the shortfall message. Zero when
// the read fails; the order has already been rejected at this point.
func (s *Service) currentStock(ctx context.Context, id primitive.ObjectID) int {
	entry, err := s.catalog.Resolve(ctx, id)
	if err != nil {
		return 0
	}
	return entry.StockQuantity
}

type VerifyRequest struct {
	OrderID   string `json:"orderId"`
	Success   bool   `json:"success"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// VerifyPayment marks the order paid, or deletes it and restores its stock
// when the payment failed on the client side.
func (s *Service) VerifyPayment(ctx context.Context, req VerifyRequest) error {
	if req.OrderID == "" {
		return &ValidationError{Reason: "orderId is required"}
	}
	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return &ValidationError{Reason: "invalid orderId format"}
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return &NotFoundError{ID: req.OrderID}
		}
		return &PersistenceError{Err: err}
	}

	if !req.Success {
		// Failed payment rolls the whole order back. The delete goes first:
		// once the order is gone a retry finds nothing, so stock cannot be
		// restored twice.
		if err := s.orders.DeleteOrder(ctx, orderID); err != nil {
			return &PersistenceError{Err: err}
		}

		applied := make([]appliedDecrement, 0, len(order.Items))
		for _, item := range order.Items {
			applied = append(applied, appliedDecrement{kind: item.Kind, id: item.ProductID, qty: item.Quantity})
		}
		s.restoreStock(applied)
		return nil
	}

	if req.Signature != "" && s.gateway != nil && order.GatewayID != "" {
		if !s.gateway.VerifySignature(order.GatewayID, req.PaymentID, req.Signature) {
			return &ValidationError{Reason: "invalid payment signature"}
		}
	}

	if err := s.orders.SetPayment(ctx, orderID, true); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

// UpdateStatus writes one of the fixed status strings. Transitions are not
// restricted.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	if orderID == "" {
		return &ValidationError{Reason: "orderId is required"}
	}
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return &ValidationError{Reason: "invalid orderId format"}
	}
	if !models.IsValidOrderStatus(status) {
		return &ValidationError{Reason: "invalid order status: " + status}
	}

	if err := s.orders.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return &NotFoundError{ID: orderID}
		}
		return &PersistenceError{Err: err}
	}
	return nil
}
