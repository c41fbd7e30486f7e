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

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newPaymentFixture(t *testing.T) (*paymentService, *memory.PaymentRepository, *memory.ClientRepository, *memory.PlanRepository) {
	t.Helper()
	paymentRepo := memory.NewPaymentRepository()
	clientRepo := memory.NewClientRepository()
	planRepo := memory.NewPlanRepository()
	svc := &paymentService{
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		planRepo:    planRepo,
		now:         func() time.Time { return testNow },
	}
	return svc, paymentRepo, clientRepo, planRepo
}

func createClient(t *testing.T, repo *memory.ClientRepository, expiration *time.Time) *domain.Client {
	t.Helper()
	client := &domain.Client{Name: "Test Client", Phone: "5500000000", BirthDate: "1990-01-01", ExpirationDate: expiration}
	_, err := repo.Create(context.Background(), client)
	require.NoError(t, err)
	return client
}

func createPlan(t *testing.T, repo *memory.PlanRepository, name string, price float64, durationDays int) *domain.Plan {
	t.Helper()
	plan := &domain.Plan{Name: name, Price: price, DurationDays: durationDays}
	_, err := repo.Create(context.Background(), plan)
	require.NoError(t, err)
	return plan
}

func TestRecordPaymentStacksOnActiveMembership(t *testing.T) {
	svc, _, clientRepo, planRepo := newPaymentFixture(t)
	ctx := context.Background()

	exp := testNow.AddDate(0, 0, 10)
	client := createClient(t, clientRepo, &exp)
	plan := createPlan(t, planRepo, "Mensualidad", 500, 30)

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
		ClientID: client.ID,
		PlanID:   &plan.ID,
		Amount:   500,
		Method:   domain.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mensualidad", payment.PlanName)
	assert.True(t, payment.Date.Equal(testNow))

	updated, err := clientRepo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.ExpirationDate)
	assert.True(t, updated.ExpirationDate.Equal(testNow.AddDate(0, 0, 40)),
		"remaining time must stack, got %v", updated.ExpirationDate)
	require.NotNil(t, updated.ActivePlanID)
	assert.Equal(t, plan.ID, *updated.ActivePlanID)
	require.NotNil(t, updated.LastPaymentDate)
	assert.True(t, updated.LastPaymentDate.Equal(testNow))
}

func TestRecordPaymentResetsExpiredMembership(t *testing.T) {
	svc, _, clientRepo, planRepo := newPaymentFixture(t)
	ctx := context.Background()

	exp := testNow.AddDate(0, 0, -5)
	client := createClient(t, clientRepo, &exp)
	plan := createPlan(t, planRepo, "Mensualidad", 500, 30)

	_, err := svc.RecordPayment(ctx, RecordPaymentInput{
		ClientID: client.ID,
		PlanID:   &plan.ID,
		Amount:   500,
		Method:   domain.MethodTransfer,
	})
	require.NoError(t, err)

	updated, err := clientRepo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.ExpirationDate)
	assert.True(t, updated.ExpirationDate.Equal(testNow.AddDate(0, 0, 30)),
		"overdue days must not be granted back, got %v", updated.ExpirationDate)
}

func TestRecordPaymentZeroDurationPlan(t *testing.T) {
	svc, _, clientRepo, planRepo := newPaymentFixture(t)
	ctx := context.Background()

	exp := testNow.AddDate(0, 0, 10)
	client := createClient(t, clientRepo, &exp)
	fee := createPlan(t, planRepo, "Inscripción", 300, 0)

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
		ClientID: client.ID,
		PlanID:   &fee.ID,
		Amount:   300,
		Method:   domain.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, "Inscripción", payment.PlanName)

	updated, err := clientRepo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.ExpirationDate)
	assert.True(t, updated.ExpirationDate.Equal(exp), "a zero-duration fee must not move the expiration")
	require.NotNil(t, updated.ActivePlanID)
	assert.Equal(t, fee.ID, *updated.ActivePlanID)
	require.NotNil(t, updated.LastPaymentDate)
	assert.True(t, updated.LastPaymentDate.Equal(testNow))
}

func TestRecordPaymentWithoutPlan(t *testing.T) {
	svc, paymentRepo, clientRepo, _ := newPaymentFixture(t)
	ctx := context.Background()

	exp := testNow.AddDate(0, 0, 10)
	client := createClient(t, clientRepo, &exp)

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
		ClientID: client.ID,
		Amount:   150,
		Method:   domain.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, AdHocPlanName, payment.PlanName)
	assert.Nil(t, payment.PlanID)

	// The ad-hoc amount lands in the ledger but does not renew anything.
	payments, err := paymentRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	updated, err := clientRepo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, updated.ExpirationDate.Equal(exp))
	assert.Nil(t, updated.ActivePlanID)
}

func TestRecordPaymentDanglingPlanReference(t *testing.T) {
	svc, paymentRepo, clientRepo, _ := newPaymentFixture(t)
	ctx := context.Background()

	exp := testNow.AddDate(0, 0, 10)
	client := createClient(t, clientRepo, &exp)
	ghost := primitive.NewObjectID()

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
		ClientID: client.ID,
		PlanID:   &ghost,
		Amount:   500,
		Method:   domain.MethodCash,
	})
	require.NoError(t, err, "a dangling plan reference must not reject the payment")
	assert.Equal(t, AdHocPlanName, payment.PlanName)

	payments, err := paymentRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	updated, err := clientRepo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, updated.ExpirationDate.Equal(exp), "renewal must be skipped when the plan does not resolve")
}

func TestRecordPaymentUnknownClient(t *testing.T) {
	svc, paymentRepo, _, planRepo := newPaymentFixture(t)
	ctx := context.Background()

	plan := createPlan(t, planRepo, "Mensualidad", 500, 30)

	payment, err := svc.RecordPayment(ctx, RecordPaymentInput{
		ClientID: primitive.NewObjectID(),
		PlanID:   &plan.ID,
		Amount:   500,
		Method:   domain.MethodCash,
	})
	require.NoError(t, err, "the payment must stand even without a client to renew")
	assert.Equal(t, "Mensualidad", payment.PlanName)

	payments, err := paymentRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestPlanNameSnapshotSurvivesRename(t *testing.T) {
	svc, _, clientRepo, planRepo := newPaymentFixture(t)
	ctx := context.Background()

	exp := testNow.AddDate(0, 0, 10)
	client := createClient(t, clientRepo, &exp)
	plan := createPlan(t, planRepo, "Mensualidad", 500, 30)

	_, err := svc.RecordPayment(ctx, RecordPaymentInput{
		ClientID: client.ID,
		PlanID:   &plan.ID,
		Amount:   500,
		Method:   domain.MethodCash,
	})
	require.NoError(t, err)

	plan.Name = "Mensualidad Premium"
	require.NoError(t, planRepo.Update(ctx, plan))

	payments, err := svc.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "Mensualidad", payments[0].PlanName, "the ledger keeps the name as it was at payment time")
}

func TestListClientPaymentsNewestFirst(t *testing.T) {
	svc, paymentRepo, clientRepo, _ := newPaymentFixture(t)
	ctx := context.Background()

	exp := testNow.AddDate(0, 0, 10)
	client := createClient(t, clientRepo, &exp)
	other := createClient(t, clientRepo, &exp)

	paymentRepo.Inject(domain.Payment{ID: primitive.NewObjectID(), ClientID: client.ID, Amount: 100, Date: testNow.AddDate(0, 0, -60)})
	paymentRepo.Inject(domain.Payment{ID: primitive.NewObjectID(), ClientID: client.ID, Amount: 200, Date: testNow.AddDate(0, 0, -30)})
	paymentRepo.Inject(domain.Payment{ID: primitive.NewObjectID(), ClientID: other.ID, Amount: 999, Date: testNow})

	payments, err := svc.ListClientPayments(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, 200.0, payments[0].Amount)
	assert.Equal(t, 100.0, payments[1].Amount)
}
