// Package memory provides in-memory implementations of the repository
// interfaces. They back the service tests and the optional demo mode, and
// mirror the persistence semantics of the MongoDB implementations: the same
// ErrNotFound signals, the same orderings, the same last-write-wins upserts.
package memory

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Clients ---

type ClientRepository struct {
	mu      sync.Mutex
	clients map[primitive.ObjectID]domain.Client
	order   []primitive.ObjectID
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{clients: make(map[primitive.ObjectID]domain.Client)}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	client.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	r.clients[client.ID] = *client
	r.order = append(r.order, client.ID)
	return client.ID, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &client, nil
}

func (r *ClientRepository) GetByPhone(ctx context.Context, phone string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if c := r.clients[id]; c.Phone == phone {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients := make([]domain.Client, 0, len(r.order))
	for _, id := range r.order {
		clients = append(clients, r.clients[id])
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[client.ID]; !ok {
		return repository.ErrNotFound
	}
	client.UpdatedAt = time.Now().UTC()
	r.clients[client.ID] = *client
	return nil
}

func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.clients)), nil
}

// --- Plans ---

type PlanRepository struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]domain.Plan
	order []primitive.ObjectID
}

func NewPlanRepository() *PlanRepository {
	return &PlanRepository{plans: make(map[primitive.ObjectID]domain.Plan)}
}

func (r *PlanRepository) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	r.plans[plan.ID] = *plan
	r.order = append(r.order, plan.ID)
	return plan.ID, nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &plan, nil
}

func (r *PlanRepository) List(ctx context.Context) ([]domain.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plans := make([]domain.Plan, 0, len(r.order))
	for _, id := range r.order {
		if plan, ok := r.plans[id]; ok {
			plans = append(plans, plan)
		}
	}
	return plans, nil
}

func (r *PlanRepository) Update(ctx context.Context, plan *domain.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	plan.UpdatedAt = time.Now().UTC()
	r.plans[plan.ID] = *plan
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

func (r *PlanRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.plans)), nil
}

// --- Payments ---

type PaymentRepository struct {
	mu       sync.Mutex
	payments []domain.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment.ID = primitive.NewObjectID()
	if payment.Date.IsZero() {
		payment.Date = time.Now().UTC()
	}
	r.payments = append(r.payments, *payment)
	return payment.ID, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payments := make([]domain.Payment, len(r.payments))
	copy(payments, r.payments)
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.Before(payments[j].Date)
	})
	return payments, nil
}

func (r *PaymentRepository) ListByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payments := []domain.Payment{}
	for _, p := range r.payments {
		if p.ClientID == clientID {
			payments = append(payments, p)
		}
	}
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.After(payments[j].Date)
	})
	return payments, nil
}

// Inject adds a raw ledger record without touching its fields. Tests use it
// to plant malformed records (zero dates, NaN amounts) that the aggregation
// must tolerate.
func (r *PaymentRepository) Inject(payment domain.Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, payment)
}

// --- Monthly costs ---

type CostsRepository struct {
	mu    sync.Mutex
	costs map[string]domain.MonthlyCosts
}

func NewCostsRepository() *CostsRepository {
	return &CostsRepository{costs: make(map[string]domain.MonthlyCosts)}
}

func (r *CostsRepository) GetByMonth(ctx context.Context, monthKey string) (*domain.MonthlyCosts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	costs, ok := r.costs[monthKey]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &costs, nil
}

func (r *CostsRepository) Upsert(ctx context.Context, costs *domain.MonthlyCosts) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	costs.UpdatedAt = time.Now().UTC()
	r.costs[costs.MonthKey] = *costs
	return nil
}

// --- Biometrics ---

type BiometricRepository struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]domain.Biometric
}

func NewBiometricRepository() *BiometricRepository {
	return &BiometricRepository{entries: make(map[primitive.ObjectID]domain.Biometric)}
}

func (r *BiometricRepository) Create(ctx context.Context, entry *domain.Biometric) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = primitive.NewObjectID()
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}
	r.entries[entry.ID] = *entry
	return entry.ID, nil
}

func (r *BiometricRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Biometric, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entry, nil
}

func (r *BiometricRepository) ListByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.Biometric, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := []domain.Biometric{}
	for _, e := range r.entries {
		if e.ClientID == clientID {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

func (r *BiometricRepository) Update(ctx context.Context, entry *domain.Biometric) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.entries[entry.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.PhotoObjectKey = entry.PhotoObjectKey
	r.entries[entry.ID] = stored
	return nil
}
