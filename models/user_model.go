package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = "customer"
	RoleFarmer   = "farmer"
	RoleAdmin    = "admin"
)

type User struct {
	Id        primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	UserName  string               `bson:"username" json:"username" validate:"required"`
	Email     string               `bson:"email" json:"email" validate:"required,email"`
	Password  string               `bson:"password" json:"password,omitempty" validate:"required,min=8"`
	Role      string               `bson:"role" json:"role" validate:"required,oneof=customer farmer admin"`
	Phone     string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string               `bson:"address,omitempty" json:"address,omitempty"`
	ImageUrl  string               `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Cart      []CartItem           `bson:"cart" json:"cart"`
	Wishlist  []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

// CartItem is a product reference held on the user document. Name and price
// are copied in so the cart renders without a catalog lookup; the order
// workflow re-resolves every item against the catalog before anything is
// charged.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Quantity  int                `bson:"quantity" json:"quantity" validate:"required,min=1"`
}
