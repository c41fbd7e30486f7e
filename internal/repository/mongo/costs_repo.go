package mongo

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const costsCollectionName = "monthly_costs"

// mongoCostsRepository implements repository.CostsRepository using MongoDB.
// The month key itself is the document id, so saves are naturally
// last-write-wins per calendar month.
type mongoCostsRepository struct {
	collection *mongo.Collection
}

// NewMongoCostsRepository creates a new costs repository backed by MongoDB.
func NewMongoCostsRepository(db *mongo.Database) repository.CostsRepository {
	return &mongoCostsRepository{
		collection: db.Collection(costsCollectionName),
	}
}

// GetByMonth retrieves the cost record for a "YYYY-MM" month key.
func (r *mongoCostsRepository) GetByMonth(ctx context.Context, monthKey string) (*domain.MonthlyCosts, error) {
	var costs domain.MonthlyCosts
	err := r.collection.FindOne(ctx, bson.M{"_id": monthKey}).Decode(&costs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &costs, nil
}

// Upsert saves the cost record for its month key, replacing any previous
// values wholesale.
func (r *mongoCostsRepository) Upsert(ctx context.Context, costs *domain.MonthlyCosts) error {
	if costs.MonthKey == "" {
		return errors.New("month key is required")
	}
	costs.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": costs.MonthKey}, costs, opts)
	return err
}
