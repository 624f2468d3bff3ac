package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/hackathon-system/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	ListByEvent(ctx context.Context, eventID *int) ([]*models.Submission, error)
}

type mongoSubmissionRepository struct {
	collection *mongo.Collection
}

func NewMongoSubmissionRepository(db *mongo.Database) SubmissionRepository {
	return &mongoSubmissionRepository{collection: db.Collection("submissions")}
}

func (r *mongoSubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	if sub.Files == nil {
		sub.Files = []string{}
	}
	if sub.Metadata == nil {
		sub.Metadata = map[string]string{}
	}
	sub.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	sub.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoSubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrSubmissionNotFound
	}

	var sub models.Submission
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &sub, nil
}

func (r *mongoSubmissionRepository) ListByEvent(ctx context.Context, eventID *int) ([]*models.Submission, error) {
	filter := bson.M{}
	if eventID != nil {
		filter["eventId"] = *eventID
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer cursor.Close(ctx)

	list := make([]*models.Submission, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %w", err)
	}
	return list, nil
}
