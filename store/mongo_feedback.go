package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoFeedback struct {
	collection *mongo.Collection
}

func NewMongoFeedback(db *mongo.Database) FeedbackStore {
	return &mongoFeedback{collection: db.Collection("feedbacks")}
}

func (m *mongoFeedback) InsertFeedback(ctx context.Context, feedback *models.Feedback) error {
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now()
	}

	result, err := m.collection.InsertOne(ctx, feedback)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	feedback.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *mongoFeedback) FeedbackByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Feedback, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.collection.Find(ctx, bson.M{"productId": productID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}

	var feedback []models.Feedback
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %w", err)
	}
	return feedback, nil
}

func (m *mongoFeedback) AverageRating(ctx context.Context, productID primitive.ObjectID) (float64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"productId": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := m.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	var results []struct {
		Average float64 `bson:"average"`
		Count   int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, fmt.Errorf("failed to decode ratings: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Average, results[0].Count, nil
}
