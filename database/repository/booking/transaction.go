package bookingRepo

import (
	"context"
	"fmt"

	"fieldbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateConflictFree inserts a booking inside a transaction that first
// re-validates the overlap invariant against the latest committed
// state. Two submitters racing on stale snapshots cannot both win: the
// second count sees the first insert and fails with ErrBookingConflict.
func (repo *MongoBookingRepo) CreateConflictFree(ctx context.Context, booking *models.Booking) error {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"fieldId":   booking.FieldID,
			"date":      booking.Date,
			"isActive":  true,
			"startHour": bson.M{"$lt": booking.EndHour},
			"endHour":   bson.M{"$gt": booking.StartHour},
		}
		count, err := repo.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if count > 0 {
			return ErrBookingConflict
		}

		if _, err := repo.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
