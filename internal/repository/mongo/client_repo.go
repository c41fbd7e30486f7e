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

const clientCollectionName = "clients"

// mongoClientRepository implements repository.ClientRepository using MongoDB.
type mongoClientRepository struct {
	collection *mongo.Collection
}

// NewMongoClientRepository creates a new client repository backed by MongoDB.
func NewMongoClientRepository(db *mongo.Database) repository.ClientRepository {
	return &mongoClientRepository{
		collection: db.Collection(clientCollectionName),
	}
}

// Create inserts a new client. All fields are persisted verbatim; required-
// field enforcement is a presentation-layer concern.
func (r *mongoClientRepository) Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error) {
	client.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, client)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a client by its ObjectID.
func (r *mongoClientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	var client domain.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// GetByPhone retrieves a client by phone number. Phones are not unique by
// contract; the first match wins, mirroring the portal login lookup.
func (r *mongoClientRepository) GetByPhone(ctx context.Context, phone string) (*domain.Client, error) {
	var client domain.Client
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// List retrieves all clients. No ordering is implied.
func (r *mongoClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	clients := []domain.Client{}
	if err = cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

// Update replaces the mutable fields of an existing client. A missing id
// reports repository.ErrNotFound; the service layer decides whether that is
// an error or a silent no-op.
func (r *mongoClientRepository) Update(ctx context.Context, client *domain.Client) error {
	if client.ID == primitive.NilObjectID {
		return errors.New("client ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"name":            client.Name,
			"phone":           client.Phone,
			"birthDate":       client.BirthDate,
			"gender":          client.Gender,
			"activePlanId":    client.ActivePlanID,
			"expirationDate":  client.ExpirationDate,
			"lastPaymentDate": client.LastPaymentDate,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": client.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count reports the number of stored clients. Used by the seed bootstrap's
// existence guard.
func (r *mongoClientRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// EnsureClientIndexes creates necessary indexes for the clients collection.
// Call this once during application startup.
func EnsureClientIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Portal login looks clients up by phone. Not unique: the
			// registry does not enforce phone uniqueness.
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "expirationDate", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
