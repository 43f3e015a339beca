package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoUsers struct {
	collection *mongo.Collection
}

func NewMongoUsers(db *mongo.Database) UserStore {
	return &mongoUsers{collection: db.Collection("users")}
}

func (m *mongoUsers) InsertUser(ctx context.Context, user *models.User) error {
	var existing models.User
	err := m.collection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&existing)
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	result, err := m.collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	user.Id = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *mongoUsers) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (m *mongoUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := m.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (m *mongoUsers) UpdateProfile(ctx context.Context, id primitive.ObjectID, update ProfileUpdate) error {
	set := bson.M{}
	if update.UserName != "" {
		set["username"] = update.UserName
	}
	if update.Phone != "" {
		set["phone"] = update.Phone
	}
	if update.Address != "" {
		set["address"] = update.Address
	}
	if update.ImageUrl != "" {
		set["profileImage"] = update.ImageUrl
	}
	if len(set) == 0 {
		return nil
	}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (m *mongoUsers) SaveCart(ctx context.Context, id primitive.ObjectID, cart []models.CartItem) error {
	if cart == nil {
		cart = []models.CartItem{}
	}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"cart": cart}})
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (m *mongoUsers) AddToWishlist(ctx context.Context, id, productID primitive.ObjectID) error {
	update := bson.M{"$addToSet": bson.M{"wishlist": productID}}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (m *mongoUsers) RemoveFromWishlist(ctx context.Context, id, productID primitive.ObjectID) error {
	update := bson.M{"$pull": bson.M{"wishlist": productID}}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (m *mongoUsers) CountUsers(ctx context.Context) (int64, error) {
	count, err := m.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (m *mongoUsers) CountByRole(ctx context.Context, role string) (int64, error) {
	count, err := m.collection.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}
