package service

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newMemberFixture(t *testing.T) (*memberService, *memory.ClientRepository) {
	t.Helper()
	clientRepo := memory.NewClientRepository()
	svc := &memberService{
		clientRepo: clientRepo,
		now:        func() time.Time { return testNow },
	}
	return svc, clientRepo
}

func TestCreateAndGetClient(t *testing.T) {
	svc, _ := newMemberFixture(t)
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, CreateClientInput{
		Name:      "Juan Pérez",
		Phone:     "5512345678",
		BirthDate: "1990-05-15",
		Gender:    "male",
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero(), "creation must assign a fresh identity")

	got, err := svc.GetClient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", got.Name)
	assert.Equal(t, "5512345678", got.Phone)
	assert.Nil(t, got.ExpirationDate)
}

func TestGetClientNotFound(t *testing.T) {
	svc, _ := newMemberFixture(t)

	_, err := svc.GetClient(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestUpdateClientMergesPartialInput(t *testing.T) {
	svc, _ := newMemberFixture(t)
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, CreateClientInput{Name: "Juan", Phone: "5512345678", BirthDate: "1990-05-15"})
	require.NoError(t, err)

	newName := "Juan Carlos"
	require.NoError(t, svc.UpdateClient(ctx, created.ID, UpdateClientInput{Name: &newName}))

	got, err := svc.GetClient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juan Carlos", got.Name)
	assert.Equal(t, "5512345678", got.Phone, "untouched fields keep their values")
	assert.Equal(t, "1990-05-15", got.BirthDate)
}

func TestUpdateClientUnknownIDIsNoOp(t *testing.T) {
	svc, clientRepo := newMemberFixture(t)
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, CreateClientInput{Name: "Juan", Phone: "5512345678"})
	require.NoError(t, err)

	newName := "Nobody"
	err = svc.UpdateClient(ctx, primitive.NewObjectID(), UpdateClientInput{Name: &newName})
	assert.NoError(t, err, "an unresolvable id must not surface an error")

	count, err := clientRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "the no-op must not create a record either")

	got, err := svc.GetClient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juan", got.Name)
}

func TestListClientsAttachesStatus(t *testing.T) {
	svc, clientRepo := newMemberFixture(t)
	ctx := context.Background()

	active := testNow.AddDate(0, 0, 10)
	risk := testNow.AddDate(0, 0, -2)
	for _, exp := range []*time.Time{&active, &risk, nil} {
		_, err := clientRepo.Create(ctx, &domain.Client{Name: "c", ExpirationDate: exp})
		require.NoError(t, err)
	}

	clients, err := svc.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, domain.StatusActive, clients[0].Status)
	assert.Equal(t, domain.StatusRisk, clients[1].Status)
	assert.Equal(t, domain.StatusExpired, clients[2].Status)

	// Listing is read-only; a second pass sees the same thing.
	again, err := svc.ListClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, clients, again)
}

func TestStatsCountsBuckets(t *testing.T) {
	svc, clientRepo := newMemberFixture(t)
	ctx := context.Background()

	expirations := []*time.Time{}
	for _, d := range []int{10, 30, -2, -30} {
		exp := testNow.AddDate(0, 0, d)
		expirations = append(expirations, &exp)
	}
	expirations = append(expirations, nil)

	for _, exp := range expirations {
		_, err := clientRepo.Create(ctx, &domain.Client{Name: "c", ExpirationDate: exp})
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.Risk)
	assert.Equal(t, 2, stats.Expired)
}
