package db

import (
	"context"
	"errors"
	"fmt"

	"yt-digest/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps the MongoDB client and the transcripts collection. It is the
// default archive backend.
type Client struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	collection  *mongo.Collection
}

// NewClient creates a new MongoDB archive client
func NewClient(connectionString, databaseName, collectionName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Client{}
	}

	database := mongoClient.Database(databaseName)
	collection := database.Collection(collectionName)

	return &Client{
		mongoClient: mongoClient,
		database:    database,
		collection:  collection,
	}
}

// Connect establishes connection to MongoDB
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// SaveTranscript upserts a transcript record keyed by video ID.
func (c *Client) SaveTranscript(ctx context.Context, transcript *domain.StoredTranscript) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	filter := bson.M{"video_id": transcript.VideoID}
	update := bson.M{"$set": transcript}
	opts := options.Update().SetUpsert(true)

	_, err := c.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetTranscript fetches the archived transcript for a video ID.
func (c *Client) GetTranscript(ctx context.Context, videoID string) (*domain.StoredTranscript, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	var result domain.StoredTranscript
	err := c.collection.FindOne(ctx, bson.M{"video_id": videoID}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query transcript %s: %w", videoID, err)
	}
	return &result, nil
}

// GetAllVideoIDs fetches all archived video IDs and returns them as a set.
// Used by the channel feed mode to skip already-processed videos.
func (c *Client) GetAllVideoIDs(ctx context.Context) (map[string]bool, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	cursor, err := c.collection.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"video_id": 1, "_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("failed to query video IDs: %w", err)
	}
	defer cursor.Close(ctx)

	idSet := make(map[string]bool)
	for cursor.Next(ctx) {
		var result struct {
			VideoID string `bson:"video_id"`
		}
		if err := cursor.Decode(&result); err != nil {
			continue // Skip invalid documents
		}
		if result.VideoID != "" {
			idSet[result.VideoID] = true
		}
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return idSet, nil
}
