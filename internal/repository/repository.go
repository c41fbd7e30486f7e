package repository

import (
	"capitalfit/membership-app/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ClientRepository defines the interface for interacting with client records.
// Clients are never hard-deleted, so no Delete method exists.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Count(ctx context.Context) (int64, error)
}

// PlanRepository defines the interface for the plan catalog.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// PaymentRepository defines the interface for the append-only payment ledger.
// There is deliberately no Update or Delete: recorded payments are immutable.
// List returns payments in date-ascending (insertion) order.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error)
	List(ctx context.Context) ([]domain.Payment, error)
	ListByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Payment, error)
}

// CostsRepository defines the interface for per-month fixed-cost records.
// Upsert is last-write-wins per month key.
type CostsRepository interface {
	GetByMonth(ctx context.Context, monthKey string) (*domain.MonthlyCosts, error)
	Upsert(ctx context.Context, costs *domain.MonthlyCosts) error
}

// BiometricRepository defines the interface for the append-only biometric log.
// ListByClientID returns entries sorted strictly descending by date. Update
// exists only to attach a progress photo to an existing entry; measurements
// themselves are never edited.
type BiometricRepository interface {
	Create(ctx context.Context, entry *domain.Biometric) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Biometric, error)
	ListByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Biometric, error)
	Update(ctx context.Context, entry *domain.Biometric) error
}
