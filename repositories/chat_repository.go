package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/hackathon-system/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// chatHistoryLimit ограничивает выдачу истории одного канала.
const chatHistoryLimit = 200

type ChatFilter struct {
	EventID *int
	TeamID  *int
}

type ChatRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	List(ctx context.Context, filter ChatFilter) ([]*models.ChatMessage, error)
}

type mongoChatRepository struct {
	collection *mongo.Collection
}

func NewMongoChatRepository(db *mongo.Database) ChatRepository {
	return &mongoChatRepository{collection: db.Collection("chat_messages")}
}

func (r *mongoChatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	if msg.Attachments == nil {
		msg.Attachments = []string{}
	}
	msg.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoChatRepository) List(ctx context.Context, filter ChatFilter) ([]*models.ChatMessage, error) {
	query := bson.M{}
	if filter.EventID != nil {
		query["eventId"] = *filter.EventID
	}
	if filter.TeamID != nil {
		query["teamId"] = *filter.TeamID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(chatHistoryLimit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer cursor.Close(ctx)

	list := make([]*models.ChatMessage, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}
	return list, nil
}
