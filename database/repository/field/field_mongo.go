package fieldRepo

import (
	"context"
	"errors"
	"fmt"

	"fieldbook/database"
	"fieldbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrFieldNotFound is returned when no field matches the lookup.
var ErrFieldNotFound = errors.New("field not found")

// MongoFieldRepo is the MongoDB-backed FieldRepository.
type MongoFieldRepo struct {
	coll *mongo.Collection
}

func NewMongoFieldRepo() *MongoFieldRepo {
	coll := database.MongoClient.Database("fieldbook").Collection("fields")
	return &MongoFieldRepo{coll: coll}
}

func (repo *MongoFieldRepo) Create(ctx context.Context, field *models.Field) error {
	if _, err := repo.coll.InsertOne(ctx, field); err != nil {
		return fmt.Errorf("failed to insert field: %w", err)
	}
	return nil
}

func (repo *MongoFieldRepo) GetByID(ctx context.Context, id string) (*models.Field, error) {
	var field models.Field
	err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&field)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFieldNotFound
		}
		return nil, fmt.Errorf("failed to fetch field %s: %w", id, err)
	}
	return &field, nil
}

func (repo *MongoFieldRepo) List(ctx context.Context) ([]models.Field, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}
	defer cursor.Close(ctx)

	var fields []models.Field
	if err := cursor.All(ctx, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode fields: %w", err)
	}
	return fields, nil
}

func (repo *MongoFieldRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"isAvailable": available}},
	)
	if err != nil {
		return fmt.Errorf("failed to update field availability: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrFieldNotFound
	}
	return nil
}
