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

const biometricCollectionName = "biometrics"

// mongoBiometricRepository implements repository.BiometricRepository using
// MongoDB.
type mongoBiometricRepository struct {
	collection *mongo.Collection
}

// NewMongoBiometricRepository creates a new biometric repository backed by
// MongoDB.
func NewMongoBiometricRepository(db *mongo.Database) repository.BiometricRepository {
	return &mongoBiometricRepository{
		collection: db.Collection(biometricCollectionName),
	}
}

// Create appends a measurement entry for its owning client.
func (r *mongoBiometricRepository) Create(ctx context.Context, entry *domain.Biometric) (primitive.ObjectID, error) {
	if entry.ClientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("client ID is required")
	}

	entry.ID = primitive.NewObjectID()
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single entry.
func (r *mongoBiometricRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Biometric, error) {
	var entry domain.Biometric
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// ListByClientID retrieves one client's entries, strictly newest first.
func (r *mongoBiometricRepository) ListByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Biometric, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"clientId": clientID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.Biometric{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Update persists a photo attachment on an existing entry. Measurements and
// date are never modified after creation.
func (r *mongoBiometricRepository) Update(ctx context.Context, entry *domain.Biometric) error {
	if entry.ID == primitive.NilObjectID {
		return errors.New("entry ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"photoObjectKey": entry.PhotoObjectKey,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": entry.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureBiometricIndexes creates necessary indexes for the biometrics
// collection.
func EnsureBiometricIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
