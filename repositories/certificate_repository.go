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

type CertificateRepository interface {
	Create(ctx context.Context, cert *models.Certificate) error
	ListByEvent(ctx context.Context, eventID int) ([]*models.Certificate, error)
}

type mongoCertificateRepository struct {
	collection *mongo.Collection
}

func NewMongoCertificateRepository(db *mongo.Database) CertificateRepository {
	return &mongoCertificateRepository{collection: db.Collection("certificates")}
}

func (r *mongoCertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	cert.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, cert)
	if err != nil {
		return fmt.Errorf("failed to insert certificate: %w", err)
	}
	cert.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoCertificateRepository) ListByEvent(ctx context.Context, eventID int) ([]*models.Certificate, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"eventId": eventID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	defer cursor.Close(ctx)

	list := make([]*models.Certificate, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode certificates: %w", err)
	}
	return list, nil
}
