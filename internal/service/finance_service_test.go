package service

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository/memory"
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newFinanceFixture(t *testing.T) (*financeService, *memory.PaymentRepository, *memory.CostsRepository) {
	t.Helper()
	paymentRepo := memory.NewPaymentRepository()
	costsRepo := memory.NewCostsRepository()
	svc := &financeService{
		paymentRepo: paymentRepo,
		costsRepo:   costsRepo,
		now:         func() time.Time { return testNow },
	}
	return svc, paymentRepo, costsRepo
}

func injectPayment(repo *memory.PaymentRepository, amount float64, date time.Time) {
	repo.Inject(domain.Payment{
		ID:       primitive.NewObjectID(),
		ClientID: primitive.NewObjectID(),
		Amount:   amount,
		Method:   domain.MethodCash,
		Date:     date,
	})
}

func TestMonthlyDataSumsByCalendarMonth(t *testing.T) {
	svc, paymentRepo, _ := newFinanceFixture(t)
	ctx := context.Background()

	injectPayment(paymentRepo, 100, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	injectPayment(paymentRepo, 200, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	injectPayment(paymentRepo, 50, time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC))
	injectPayment(paymentRepo, 999, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	injectPayment(paymentRepo, 999, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))

	data, err := svc.MonthlyData(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 350.0, data.Income, "only the requested calendar month counts, year included")
}

func TestMonthlyDataToleratesCorruptLedgerRecords(t *testing.T) {
	svc, paymentRepo, _ := newFinanceFixture(t)
	ctx := context.Background()

	injectPayment(paymentRepo, 100, testNow)
	injectPayment(paymentRepo, 500, time.Time{})
	injectPayment(paymentRepo, math.NaN(), testNow)
	injectPayment(paymentRepo, math.Inf(1), testNow)

	data, err := svc.MonthlyData(ctx, testNow)
	require.NoError(t, err, "corrupt records must not abort the aggregation")
	assert.Equal(t, 100.0, data.Income)
}

func TestMonthlyDataProfitMayBeNegative(t *testing.T) {
	svc, paymentRepo, _ := newFinanceFixture(t)
	ctx := context.Background()

	injectPayment(paymentRepo, 1000, testNow)
	require.NoError(t, svc.SaveMonthlyCosts(ctx, domain.MonthKeyOf(testNow), domain.MonthlyCosts{
		Rent: 2000, Utilities: 300, Staff: 4000, Other: 200,
	}))

	data, err := svc.MonthlyData(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 6500.0, data.TotalCosts)
	assert.Equal(t, -5500.0, data.Profit)
}

func TestMonthlyCostsDefaultsToZeroRecord(t *testing.T) {
	svc, _, _ := newFinanceFixture(t)

	costs, err := svc.MonthlyCosts(context.Background(), "2026-03")
	require.NoError(t, err)
	assert.Equal(t, "2026-03", costs.MonthKey)
	assert.Equal(t, 0.0, costs.Total())
}

func TestSaveMonthlyCostsLastWriteWins(t *testing.T) {
	svc, _, _ := newFinanceFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveMonthlyCosts(ctx, "2026-03", domain.MonthlyCosts{Rent: 1000}))
	require.NoError(t, svc.SaveMonthlyCosts(ctx, "2026-03", domain.MonthlyCosts{Rent: 1500, Staff: 200}))

	costs, err := svc.MonthlyCosts(ctx, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, costs.Rent)
	assert.Equal(t, 200.0, costs.Staff)
	assert.Equal(t, 0.0, costs.Utilities, "the replacement does not merge with the previous record")
}

func TestFinancialHistoryShape(t *testing.T) {
	svc, paymentRepo, _ := newFinanceFixture(t)
	ctx := context.Background()

	// Activity in two of the six months; the rest must still appear.
	injectPayment(paymentRepo, 300, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	injectPayment(paymentRepo, 450, testNow)

	history, err := svc.FinancialHistory(ctx, 6)
	require.NoError(t, err)
	require.Len(t, history, 6, "always exactly the requested number of entries")

	assert.Equal(t, "2025-10", history[0].MonthKey, "oldest month first")
	assert.Equal(t, "2026-03", history[5].MonthKey, "series ends at the current month")
	assert.Equal(t, "Oct 25", history[0].Label)

	for _, entry := range history {
		switch entry.MonthKey {
		case "2026-01":
			assert.Equal(t, 300.0, entry.Income)
		case "2026-03":
			assert.Equal(t, 450.0, entry.Income)
		default:
			assert.Equal(t, 0.0, entry.Income, "quiet months appear zero-filled, not omitted")
		}
	}
}

func TestFinancialHistoryCrossesYearBoundary(t *testing.T) {
	svc, _, _ := newFinanceFixture(t)

	history, err := svc.FinancialHistory(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, history, 15)
	assert.Equal(t, "2025-01", history[0].MonthKey)
	assert.Equal(t, "2026-03", history[14].MonthKey)
}

func TestFinancialHistoryNonPositiveSpan(t *testing.T) {
	svc, _, _ := newFinanceFixture(t)

	history, err := svc.FinancialHistory(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}
