package service

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository"
	"context"
	"errors"
	"math"
	"time"
)

// MonthlyData is one month's profitability snapshot.
type MonthlyData struct {
	Income     float64             `json:"income"`
	Costs      domain.MonthlyCosts `json:"costs"`
	TotalCosts float64             `json:"totalCosts"`
	Profit     float64             `json:"profit"` // May be negative.
}

// HistoryEntry is one point of the rolling profitability series.
type HistoryEntry struct {
	Label      string  `json:"label"` // e.g. "Mar 26", for chart axes.
	MonthKey   string  `json:"monthKey"`
	Income     float64 `json:"income"`
	TotalCosts float64 `json:"totalCosts"`
	Profit     float64 `json:"profit"`
}

// --- Service Interface ---
type FinanceService interface {
	// MonthlyCosts returns the persisted costs for a month key, or an
	// all-zero record when none was ever saved.
	MonthlyCosts(ctx context.Context, monthKey string) (*domain.MonthlyCosts, error)
	// SaveMonthlyCosts upserts the costs for a month key, last write wins.
	SaveMonthlyCosts(ctx context.Context, monthKey string, costs domain.MonthlyCosts) error
	// MonthlyData aggregates income, costs and profit for the calendar
	// month containing date.
	MonthlyData(ctx context.Context, date time.Time) (*MonthlyData, error)
	// FinancialHistory returns exactly monthsBack entries, oldest first,
	// ending at the current month. Months with no activity appear
	// zero-filled rather than being omitted.
	FinancialHistory(ctx context.Context, monthsBack int) ([]HistoryEntry, error)
}

// --- Service Implementation ---

type financeService struct {
	paymentRepo repository.PaymentRepository
	costsRepo   repository.CostsRepository
	now         func() time.Time
}

// NewFinanceService creates a new instance of financeService.
func NewFinanceService(paymentRepo repository.PaymentRepository, costsRepo repository.CostsRepository) FinanceService {
	return &financeService{
		paymentRepo: paymentRepo,
		costsRepo:   costsRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *financeService) MonthlyCosts(ctx context.Context, monthKey string) (*domain.MonthlyCosts, error) {
	costs, err := s.costsRepo.GetByMonth(ctx, monthKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.MonthlyCosts{MonthKey: monthKey}, nil
		}
		return nil, err
	}
	return costs, nil
}

func (s *financeService) SaveMonthlyCosts(ctx context.Context, monthKey string, costs domain.MonthlyCosts) error {
	costs.MonthKey = monthKey
	return s.costsRepo.Upsert(ctx, &costs)
}

// MonthlyData sums payment amounts by calendar year+month components, not by
// elapsed-time windows. A corrupt ledger record (zero date, non-finite
// amount) contributes nothing; it never aborts the aggregation.
func (s *financeService) MonthlyData(ctx context.Context, date time.Time) (*MonthlyData, error) {
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var income float64
	for _, p := range payments {
		if p.Date.IsZero() {
			continue
		}
		if p.Date.Year() != date.Year() || p.Date.Month() != date.Month() {
			continue
		}
		if math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
			continue
		}
		income += p.Amount
	}

	costs, err := s.MonthlyCosts(ctx, domain.MonthKeyOf(date))
	if err != nil {
		return nil, err
	}

	totalCosts := costs.Total()
	return &MonthlyData{
		Income:     income,
		Costs:      *costs,
		TotalCosts: totalCosts,
		Profit:     income - totalCosts,
	}, nil
}

func (s *financeService) FinancialHistory(ctx context.Context, monthsBack int) ([]HistoryEntry, error) {
	if monthsBack <= 0 {
		return []HistoryEntry{}, nil
	}

	now := s.now()
	history := make([]HistoryEntry, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)

		data, err := s.MonthlyData(ctx, month)
		if err != nil {
			return nil, err
		}

		history = append(history, HistoryEntry{
			Label:      month.Format("Jan 06"),
			MonthKey:   domain.MonthKeyOf(month),
			Income:     data.Income,
			TotalCosts: data.TotalCosts,
			Profit:     data.Profit,
		})
	}
	return history, nil
}
