package service

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdHocPlanName is the ledger label for payments not tied to a catalog plan.
const AdHocPlanName = "Personalizado"

// RecordPaymentInput carries one payment entry. Amount is taken as entered,
// even when it differs from the plan's listed price.
type RecordPaymentInput struct {
	ClientID primitive.ObjectID
	PlanID   *primitive.ObjectID
	Amount   float64
	Method   domain.PaymentMethod
}

// --- Service Interface ---
type PaymentService interface {
	// ListPayments returns the whole ledger in insertion (date-ascending)
	// order.
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	ListClientPayments(ctx context.Context, clientID primitive.ObjectID) ([]domain.Payment, error)
	// RecordPayment appends to the ledger and, when both the plan and the
	// client resolve, renews the client's membership. An unresolvable plan
	// or client still records the payment; only the renewal is skipped.
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error)
}

// --- Service Implementation ---

type paymentService struct {
	paymentRepo repository.PaymentRepository
	clientRepo  repository.ClientRepository
	planRepo    repository.PlanRepository
	now         func() time.Time
}

// NewPaymentService creates a new instance of paymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, clientRepo repository.ClientRepository, planRepo repository.PlanRepository) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		planRepo:    planRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *paymentService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.paymentRepo.List(ctx)
}

func (s *paymentService) ListClientPayments(ctx context.Context, clientID primitive.ObjectID) ([]domain.Payment, error) {
	return s.paymentRepo.ListByClientID(ctx, clientID)
}

// RecordPayment appends the payment and applies the renewal side effect.
//
// The ledger entry always lands, stamped with the current time and a
// snapshot of the plan name so history survives later plan renames or
// deletions. The client mutation (expirationDate, activePlanId,
// lastPaymentDate) happens only when the plan id resolves to a catalog plan
// and the client id resolves to a member.
func (s *paymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error) {
	now := s.now()

	var plan *domain.Plan
	if input.PlanID != nil {
		found, err := s.planRepo.GetByID(ctx, *input.PlanID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		plan = found // nil when the reference dangles
	}

	payment := &domain.Payment{
		ClientID: input.ClientID,
		PlanID:   input.PlanID,
		Amount:   input.Amount,
		Method:   input.Method,
		Date:     now,
		PlanName: AdHocPlanName,
	}
	if plan != nil {
		payment.PlanName = plan.Name
	}

	id, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = id

	if plan == nil {
		return payment, nil
	}

	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return payment, nil // Payment stands; no client to renew.
		}
		return nil, err
	}

	newExp := domain.NextExpiration(client.ExpirationDate, now, plan.DurationDays)
	client.ExpirationDate = &newExp
	client.ActivePlanID = &plan.ID
	client.LastPaymentDate = &payment.Date

	if err := s.clientRepo.Update(ctx, client); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return payment, nil
}
