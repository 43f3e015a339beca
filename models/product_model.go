package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name" validate:"required"`
	Price         float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category" validate:"required"`
	Image         string             `bson:"image" json:"image"`
	StockQuantity int                `bson:"stockQuantity" json:"stockQuantity" validate:"gte=0"`
	Email         string             `bson:"email" json:"email"` // seller email
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
