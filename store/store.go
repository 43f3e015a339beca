package store

import (
	"context"
	"errors"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrItemNotFound      = errors.New("catalog item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already registered")
)

const (
	KindProduct = "product"
	KindTool    = "tool"
)

// CatalogItem is a kind-tagged view over the product and tool collections.
// An order line item may reference either, so resolution goes through one
// capability instead of callers probing both collections.
type CatalogItem struct {
	ID            primitive.ObjectID
	Kind          string
	Name          string
	Price         float64
	Description   string
	Category      string
	Image         string
	StockQuantity int
	SellerEmail   string
}

// CatalogStore wraps the product and tool collections.
type CatalogStore interface {
	// Resolve looks an id up in products first, then tools.
	Resolve(ctx context.Context, id primitive.ObjectID) (*CatalogItem, error)
	// DecrementStock applies a single conditional update: decrement only
	// while stockQuantity >= qty, returning ErrInsufficientStock when the
	// guard fails. Two concurrent orders cannot both take the last units.
	DecrementStock(ctx context.Context, kind string, id primitive.ObjectID, qty int) error
	// RestoreStock undoes a decrement when a later step of the order
	// workflow fails.
	RestoreStock(ctx context.Context, kind string, id primitive.ObjectID, qty int) error

	// ListProducts returns one page, newest first. A non-positive limit
	// returns everything.
	ListProducts(ctx context.Context, page, limit int64) ([]models.Product, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	InsertProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	SearchProducts(ctx context.Context, name, category string) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)

	ListTools(ctx context.Context) ([]models.Tool, error)
	GetTool(ctx context.Context, id primitive.ObjectID) (*models.Tool, error)
	InsertTool(ctx context.Context, tool *models.Tool) error
	UpdateTool(ctx context.Context, tool *models.Tool) error
	DeleteTool(ctx context.Context, id primitive.ObjectID) error
	CountTools(ctx context.Context) (int64, error)
}

// SellerStat is one row of the top-sellers dashboard aggregation.
type SellerStat struct {
	SellerEmail string  `bson:"_id" json:"sellerEmail"`
	UnitsSold   int     `bson:"unitsSold" json:"unitsSold"`
	Revenue     float64 `bson:"revenue" json:"revenue"`
}

type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	// ListOrders returns every order, newest first.
	ListOrders(ctx context.Context) ([]models.Order, error)
	OrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	SetPayment(ctx context.Context, id primitive.ObjectID, paid bool) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	DeleteOrder(ctx context.Context, id primitive.ObjectID) error
	CountOrders(ctx context.Context) (int64, error)
	Revenue(ctx context.Context) (float64, error)
	TopSellers(ctx context.Context, limit int) ([]SellerStat, error)
}

// ProfileUpdate carries the user-editable profile fields.
type ProfileUpdate struct {
	UserName string
	Phone    string
	Address  string
	ImageUrl string
}

type UserStore interface {
	InsertUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) error
	SaveCart(ctx context.Context, id primitive.ObjectID, cart []models.CartItem) error
	AddToWishlist(ctx context.Context, id, productID primitive.ObjectID) error
	RemoveFromWishlist(ctx context.Context, id, productID primitive.ObjectID) error
	CountUsers(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

type FeedbackStore interface {
	InsertFeedback(ctx context.Context, feedback *models.Feedback) error
	FeedbackByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Feedback, error)
	// AverageRating returns the mean rating and the number of ratings.
	AverageRating(ctx context.Context, productID primitive.ObjectID) (float64, int64, error)
}
