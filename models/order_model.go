package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

var orderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCompleted:  true,
	OrderStatusCancelled:  true,
}

func IsValidOrderStatus(status string) bool {
	return orderStatuses[status]
}

// OrderItem is a snapshot of the catalog entry at order time. Later edits to
// the product or tool do not change what the buyer sees on an old order.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"productId" json:"productId"`
	Kind        string             `bson:"kind" json:"kind"` // product or tool
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	SellerEmail string             `bson:"sellerEmail" json:"sellerEmail"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Reference     string             `bson:"reference" json:"reference"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Items         []OrderItem        `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Amount        float64            `bson:"amount,omitempty" json:"amount,omitempty"` // legacy field, kept for old documents
	Address       string             `bson:"address" json:"address"`
	Status        string             `bson:"status" json:"status"`
	Payment       bool               `bson:"payment" json:"payment"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	GatewayID     string             `bson:"gatewayId,omitempty" json:"gatewayId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// EffectiveAmount prefers totalAmount and falls back to the legacy amount
// field written by older clients.
func (o Order) EffectiveAmount() float64 {
	if o.TotalAmount != 0 {
		return o.TotalAmount
	}
	return o.Amount
}

// TotalQuantity sums the quantities of all line items.
func (o Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
