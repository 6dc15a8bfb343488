package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "consultly/internal/bookings/errors"
	"consultly/pkg/config"
	"consultly/pkg/model"
)

const (
	CollectionName = "Bookings"
)

type BookingRepository interface {
	FindByEmailAndDate(ctx context.Context, email, preferredDate string) (*model.StoredBooking, error)
	Insert(ctx context.Context, req *model.BookingRequest) (*model.StoredBooking, error)
	DeleteByEmailAndDate(ctx context.Context, email, preferredDate string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout caps the call at the configured timeout without extending an
// already shorter request deadline.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) FindByEmailAndDate(ctx context.Context, email, preferredDate string) (*model.StoredBooking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"email":          email,
		"preferred_date": preferredDate,
	}

	var booking model.StoredBooking
	err := r.collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) Insert(ctx context.Context, req *model.BookingRequest) (*model.StoredBooking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking := &model.StoredBooking{
		BookingRequest: *req,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, bookingserrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	return booking, nil
}

func (r *mongoBookingRepository) DeleteByEmailAndDate(ctx context.Context, email, preferredDate string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"email":          email,
		"preferred_date": preferredDate,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete booking: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
