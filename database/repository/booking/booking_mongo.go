package bookingRepo

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

var (
	// ErrBookingConflict is returned when the transactional overlap
	// re-check finds a competing active booking.
	ErrBookingConflict = errors.New("booking conflicts with an existing reservation")
	// ErrBookingNotFound is returned when no booking matches id+owner.
	ErrBookingNotFound = errors.New("booking not found")
)

// MongoBookingRepo is the MongoDB-backed BookingRepository.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	coll := database.MongoClient.Database("fieldbook").Collection("bookings")
	return &MongoBookingRepo{coll: coll}
}

// GetActiveByFieldAndDate returns the point-in-time snapshot of active
// bookings for one field+date, ordered by start hour.
func (repo *MongoBookingRepo) GetActiveByFieldAndDate(ctx context.Context, fieldID, date string) ([]models.Booking, error) {
	filter := bson.M{
		"fieldId":  fieldID,
		"date":     date,
		"isActive": true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "startHour", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for field %s on %s: %w", fieldID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "startHour", Value: 1},
	})
	cursor, err := repo.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// Cancel soft-deletes a booking owned by userID. Ownership mismatches
// report not-found so booking ids of other users are not revealed.
func (repo *MongoBookingRepo) Cancel(ctx context.Context, id, userID string) (*models.Booking, error) {
	filter := bson.M{"id": id, "userId": userID, "isActive": true}
	update := bson.M{"$set": bson.M{"isActive": false}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := repo.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to cancel booking %s: %w", id, err)
	}
	return &booking, nil
}
