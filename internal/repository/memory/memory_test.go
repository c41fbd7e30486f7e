package memory

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClientRepositoryNotFoundSignals(t *testing.T) {
	repo := NewClientRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByPhone(ctx, "5500000000")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Update(ctx, &domain.Client{ID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClientRepositoryListPreservesInsertionOrder(t *testing.T) {
	repo := NewClientRepository()
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		_, err := repo.Create(ctx, &domain.Client{Name: name})
		require.NoError(t, err)
	}

	clients, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	for i, name := range names {
		assert.Equal(t, name, clients[i].Name)
	}
}

func TestPaymentRepositoryListOrderings(t *testing.T) {
	repo := NewPaymentRepository()
	ctx := context.Background()
	clientID := primitive.NewObjectID()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, d := range []int{20, 0, 10} {
		repo.Inject(domain.Payment{
			ID:       primitive.NewObjectID(),
			ClientID: clientID,
			Amount:   float64(d),
			Date:     base.AddDate(0, 0, d),
		})
	}

	asc, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, 0.0, asc[0].Amount, "full ledger lists oldest first")
	assert.Equal(t, 20.0, asc[2].Amount)

	desc, err := repo.ListByClientID(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, 20.0, desc[0].Amount, "per-client history lists newest first")
	assert.Equal(t, 0.0, desc[2].Amount)
}

func TestCostsRepositoryUpsert(t *testing.T) {
	repo := NewCostsRepository()
	ctx := context.Background()

	_, err := repo.GetByMonth(ctx, "2026-03")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, &domain.MonthlyCosts{MonthKey: "2026-03", Rent: 1000}))
	require.NoError(t, repo.Upsert(ctx, &domain.MonthlyCosts{MonthKey: "2026-03", Rent: 1200}))

	costs, err := repo.GetByMonth(ctx, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, costs.Rent)
}

func TestBiometricRepositoryUpdateOnlyAttachesPhoto(t *testing.T) {
	repo := NewBiometricRepository()
	ctx := context.Background()

	entry := &domain.Biometric{ClientID: primitive.NewObjectID(), Weight: 80}
	_, err := repo.Create(ctx, entry)
	require.NoError(t, err)

	edited := *entry
	edited.Weight = 60
	edited.PhotoObjectKey = "biometrics/x/photo.png"
	require.NoError(t, repo.Update(ctx, &edited))

	stored, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, stored.Weight, "measurements are immutable once logged")
	assert.Equal(t, "biometrics/x/photo.png", stored.PhotoObjectKey)
}
