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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCatalog struct {
	products *mongo.Collection
	tools    *mongo.Collection
}

func NewMongoCatalog(db *mongo.Database) CatalogStore {
	return &mongoCatalog{
		products: db.Collection("products"),
		tools:    db.Collection("tools"),
	}
}

func (m *mongoCatalog) Resolve(ctx context.Context, id primitive.ObjectID) (*CatalogItem, error) {
	var product models.Product
	err := m.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == nil {
		return &CatalogItem{
			ID:            product.ID,
			Kind:          KindProduct,
			Name:          product.Name,
			Price:         product.Price,
			Description:   product.Description,
			Category:      product.Category,
			Image:         product.Image,
			StockQuantity: product.StockQuantity,
			SellerEmail:   product.Email,
		}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	// Not a product, fall back to the tool collection.
	var tool models.Tool
	err = m.tools.FindOne(ctx, bson.M{"_id": id}).Decode(&tool)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to resolve tool: %w", err)
	}

	return &CatalogItem{
		ID:            tool.ID,
		Kind:          KindTool,
		Name:          tool.Name,
		Price:         tool.Price,
		Description:   tool.Description,
		Category:      tool.Category,
		Image:         tool.Image,
		StockQuantity: tool.StockQuantity,
		SellerEmail:   tool.Email,
	}, nil
}

func (m *mongoCatalog) collectionFor(kind string) *mongo.Collection {
	if kind == KindTool {
		return m.tools
	}
	return m.products
}

func (m *mongoCatalog) DecrementStock(ctx context.Context, kind string, id primitive.ObjectID, qty int) error {
	// The stockQuantity guard and the $inc run as one document update, so
	// concurrent orders for the same item serialize on the stock counter.
	filter := bson.M{"_id": id, "stockQuantity": bson.M{"$gte": qty}}
	update := bson.M{"$inc": bson.M{"stockQuantity": -qty}}

	result, err := m.collectionFor(kind).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (m *mongoCatalog) RestoreStock(ctx context.Context, kind string, id primitive.ObjectID, qty int) error {
	update := bson.M{"$inc": bson.M{"stockQuantity": qty}}

	result, err := m.collectionFor(kind).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (m *mongoCatalog) ListProducts(ctx context.Context, page, limit int64) ([]models.Product, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		findOptions.SetSkip((page - 1) * limit).SetLimit(limit)
	}

	cursor, err := m.products.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *mongoCatalog) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := m.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (m *mongoCatalog) InsertProduct(ctx context.Context, product *models.Product) error {
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	result, err := m.products.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *mongoCatalog) UpdateProduct(ctx context.Context, product *models.Product) error {
	update := bson.M{"$set": bson.M{
		"name":          product.Name,
		"price":         product.Price,
		"description":   product.Description,
		"category":      product.Category,
		"image":         product.Image,
		"stockQuantity": product.StockQuantity,
		"status":        product.Status,
	}}

	result, err := m.products.UpdateOne(ctx, bson.M{"_id": product.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (m *mongoCatalog) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (m *mongoCatalog) SearchProducts(ctx context.Context, name, category string) ([]models.Product, error) {
	filter := bson.M{}
	if name != "" {
		filter["name"] = bson.M{"$regex": name, "$options": "i"}
	}
	if category != "" {
		filter["category"] = category
	}

	cursor, err := m.products.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *mongoCatalog) CountProducts(ctx context.Context) (int64, error) {
	count, err := m.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (m *mongoCatalog) ListTools(ctx context.Context) ([]models.Tool, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.tools.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	var tools []models.Tool
	if err := cursor.All(ctx, &tools); err != nil {
		return nil, fmt.Errorf("failed to decode tools: %w", err)
	}
	return tools, nil
}

func (m *mongoCatalog) GetTool(ctx context.Context, id primitive.ObjectID) (*models.Tool, error) {
	var tool models.Tool
	err := m.tools.FindOne(ctx, bson.M{"_id": id}).Decode(&tool)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get tool: %w", err)
	}
	return &tool, nil
}

func (m *mongoCatalog) InsertTool(ctx context.Context, tool *models.Tool) error {
	if tool.CreatedAt.IsZero() {
		tool.CreatedAt = time.Now()
	}

	result, err := m.tools.InsertOne(ctx, tool)
	if err != nil {
		return fmt.Errorf("failed to insert tool: %w", err)
	}
	tool.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *mongoCatalog) UpdateTool(ctx context.Context, tool *models.Tool) error {
	update := bson.M{"$set": bson.M{
		"name":          tool.Name,
		"price":         tool.Price,
		"description":   tool.Description,
		"category":      tool.Category,
		"image":         tool.Image,
		"stockQuantity": tool.StockQuantity,
		"status":        tool.Status,
	}}

	result, err := m.tools.UpdateOne(ctx, bson.M{"_id": tool.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update tool: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (m *mongoCatalog) DeleteTool(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.tools.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tool: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (m *mongoCatalog) CountTools(ctx context.Context) (int64, error) {
	count, err := m.tools.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count tools: %w", err)
	}
	return count, nil
}
