package mongo

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const paymentCollectionName = "payments"

// mongoPaymentRepository implements repository.PaymentRepository using
// MongoDB. The ledger is append-only: no update or delete methods exist.
type mongoPaymentRepository struct {
	collection *mongo.Collection
}

// NewMongoPaymentRepository creates a new payment repository backed by MongoDB.
func NewMongoPaymentRepository(db *mongo.Database) repository.PaymentRepository {
	return &mongoPaymentRepository{
		collection: db.Collection(paymentCollectionName),
	}
}

// Create appends a payment to the ledger. The date must already be assigned
// by the service; it is immutable from here on.
func (r *mongoPaymentRepository) Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	payment.ID = primitive.NewObjectID()
	if payment.Date.IsZero() {
		payment.Date = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// List retrieves all payments in date-ascending order, matching insertion
// order. Callers wanting most-recent-first reverse or sort externally.
func (r *mongoPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	payments := []domain.Payment{}
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// ListByClientID retrieves one client's payments, newest first, for the
// payment-history view.
func (r *mongoPaymentRepository) ListByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Payment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"clientId": clientID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	payments := []domain.Payment{}
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// EnsurePaymentIndexes creates necessary indexes for the payments collection.
func EnsurePaymentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			// Monthly aggregation scans by date range.
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
