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
)

// The collection name is versioned: bumping it is how shipped seed data gets
// "reset" across revisions, since the bootstrap only populates empty
// collections.
const planCollectionName = "plans_v2"

// mongoPlanRepository implements repository.PlanRepository using MongoDB.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new plan repository backed by MongoDB.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new plan. DurationDays 0 is valid (one-time fee).
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a plan by its ObjectID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// List retrieves the whole plan catalog.
func (r *mongoPlanRepository) List(ctx context.Context) ([]domain.Plan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []domain.Plan{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// Update modifies an existing plan.
func (r *mongoPlanRepository) Update(ctx context.Context, plan *domain.Plan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("plan ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"name":         plan.Name,
			"price":        plan.Price,
			"durationDays": plan.DurationDays,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": plan.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a plan from the catalog. Clients referencing the plan via
// activePlanId are left untouched; the dangling reference is tolerated.
func (r *mongoPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count reports the number of catalog plans, for the seed existence guard.
func (r *mongoPlanRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
