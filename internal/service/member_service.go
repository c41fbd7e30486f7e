package service

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrClientNotFound = errors.New("client not found")
)

// CreateClientInput carries the registration fields. Everything is taken
// verbatim; phone format and uniqueness are deliberately not enforced here.
type CreateClientInput struct {
	Name           string
	Phone          string
	BirthDate      string
	Gender         string
	ActivePlanID   *primitive.ObjectID
	ExpirationDate *time.Time
}

// UpdateClientInput carries a partial profile edit. Nil fields are left
// untouched (merge semantics).
type UpdateClientInput struct {
	Name      *string
	Phone     *string
	BirthDate *string
	Gender    *string
}

// ClientWithStatus pairs a client record with its derived status, for list
// views that badge every row.
type ClientWithStatus struct {
	domain.Client
	Status domain.MembershipStatus `json:"status"`
}

// MembershipStats counts clients per status bucket for the dashboard.
type MembershipStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Risk    int `json:"risk"`
	Expired int `json:"expired"`
}

// --- Service Interface ---
type MemberService interface {
	ListClients(ctx context.Context) ([]ClientWithStatus, error)
	GetClient(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	// UpdateClient merges the partial input into the stored record. An id
	// that does not resolve is a silent no-op: callers must not rely on an
	// error signal.
	UpdateClient(ctx context.Context, id primitive.ObjectID, input UpdateClientInput) error
	Stats(ctx context.Context) (*MembershipStats, error)
}

// --- Service Implementation ---

type memberService struct {
	clientRepo repository.ClientRepository
	now        func() time.Time
}

// NewMemberService creates a new instance of memberService.
func NewMemberService(clientRepo repository.ClientRepository) MemberService {
	return &memberService{
		clientRepo: clientRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ListClients returns every client with its current status attached.
func (s *memberService) ListClients(ctx context.Context) ([]ClientWithStatus, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]ClientWithStatus, 0, len(clients))
	for _, c := range clients {
		result = append(result, ClientWithStatus{Client: c, Status: c.Status(now)})
	}
	return result, nil
}

// GetClient looks a client up by id. Absence is reported via
// ErrClientNotFound, never a panic.
func (s *memberService) GetClient(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// CreateClient registers a new member with a fresh identity.
func (s *memberService) CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		Name:           input.Name,
		Phone:          input.Phone,
		BirthDate:      input.BirthDate,
		Gender:         input.Gender,
		ActivePlanID:   input.ActivePlanID,
		ExpirationDate: input.ExpirationDate,
	}

	id, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	client.ID = id
	return client, nil
}

// UpdateClient merges non-nil input fields into the stored record.
func (s *memberService) UpdateClient(ctx context.Context, id primitive.ObjectID, input UpdateClientInput) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil // Silent no-op by contract.
		}
		return err
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.BirthDate != nil {
		client.BirthDate = *input.BirthDate
	}
	if input.Gender != nil {
		client.Gender = *input.Gender
	}

	err = s.clientRepo.Update(ctx, client)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// Stats classifies every client once and counts the buckets.
func (s *memberService) Stats(ctx context.Context) (*MembershipStats, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &MembershipStats{Total: len(clients)}
	for _, c := range clients {
		switch c.Status(now) {
		case domain.StatusActive:
			stats.Active++
		case domain.StatusRisk:
			stats.Risk++
		default:
			stats.Expired++
		}
	}
	return stats, nil
}
