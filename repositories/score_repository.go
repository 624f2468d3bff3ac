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

type ScoreFilter struct {
	EventID *int
	TeamID  *int
}

type ScoreRepository interface {
	Create(ctx context.Context, score *models.Score) error
	List(ctx context.Context, filter ScoreFilter) ([]*models.Score, error)
	// TotalsByEvent агрегирует суммы итогов по командам события,
	// по убыванию — источник данных лидерборда.
	TotalsByEvent(ctx context.Context, eventID int) ([]models.TeamTotal, error)
}

type mongoScoreRepository struct {
	collection *mongo.Collection
}

func NewMongoScoreRepository(db *mongo.Database) ScoreRepository {
	return &mongoScoreRepository{collection: db.Collection("scores")}
}

func (r *mongoScoreRepository) Create(ctx context.Context, score *models.Score) error {
	score.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, score)
	if err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}
	score.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoScoreRepository) List(ctx context.Context, filter ScoreFilter) ([]*models.Score, error) {
	query := bson.M{}
	if filter.EventID != nil {
		query["eventId"] = *filter.EventID
	}
	if filter.TeamID != nil {
		query["teamId"] = *filter.TeamID
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer cursor.Close(ctx)

	list := make([]*models.Score, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}
	return list, nil
}

func (r *mongoScoreRepository) TotalsByEvent(ctx context.Context, eventID int) ([]models.TeamTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"eventId": eventID}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$teamId",
			"total":  bson.M{"$sum": "$total"},
			"scores": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate scores: %w", err)
	}
	defer cursor.Close(ctx)

	totals := make([]models.TeamTotal, 0)
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("failed to decode score totals: %w", err)
	}
	return totals, nil
}
