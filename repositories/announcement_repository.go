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

type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	ListByEvent(ctx context.Context, eventID *int) ([]*models.Announcement, error)
}

type mongoAnnouncementRepository struct {
	collection *mongo.Collection
}

func NewMongoAnnouncementRepository(db *mongo.Database) AnnouncementRepository {
	return &mongoAnnouncementRepository{collection: db.Collection("announcements")}
}

func (r *mongoAnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	a.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("failed to insert announcement: %w", err)
	}
	a.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoAnnouncementRepository) ListByEvent(ctx context.Context, eventID *int) ([]*models.Announcement, error) {
	filter := bson.M{}
	if eventID != nil {
		filter["eventId"] = *eventID
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer cursor.Close(ctx)

	list := make([]*models.Announcement, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode announcements: %w", err)
	}
	return list, nil
}
