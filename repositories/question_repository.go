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

var ErrQuestionNotFound = errors.New("question not found")

type QuestionRepository interface {
	Create(ctx context.Context, q *models.Question) error
	ListByEvent(ctx context.Context, eventID *int) ([]*models.Question, error)
	Answer(ctx context.Context, id string, answer string, answeredBy int, answeredByName string) (*models.Question, error)
}

type mongoQuestionRepository struct {
	collection *mongo.Collection
}

func NewMongoQuestionRepository(db *mongo.Database) QuestionRepository {
	return &mongoQuestionRepository{collection: db.Collection("questions")}
}

func (r *mongoQuestionRepository) Create(ctx context.Context, q *models.Question) error {
	q.Status = models.QuestionOpen
	q.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	q.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoQuestionRepository) ListByEvent(ctx context.Context, eventID *int) ([]*models.Question, error) {
	filter := bson.M{}
	if eventID != nil {
		filter["eventId"] = *eventID
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer cursor.Close(ctx)

	list := make([]*models.Question, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	return list, nil
}

func (r *mongoQuestionRepository) Answer(ctx context.Context, id string, answer string, answeredBy int, answeredByName string) (*models.Question, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrQuestionNotFound
	}

	update := bson.M{"$set": bson.M{
		"answer":         answer,
		"answeredBy":     answeredBy,
		"answeredByName": answeredByName,
		"status":         models.QuestionAnswered,
	}}

	var q models.Question
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&q)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to answer question: %w", err)
	}
	return &q, nil
}
