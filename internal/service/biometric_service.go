package service

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository"
	"capitalfit/membership-app/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEntryNotFound         = errors.New("biometric entry not found")
	ErrEntryNotOwnedByClient = errors.New("biometric entry does not belong to this client")
	ErrPhotoURLError         = errors.New("failed to generate photo URL")
	ErrPhotoMissing          = errors.New("entry has no photo attached")
	ErrInvalidPhotoContent   = errors.New("invalid or missing image content type")
)

// AddEntryInput carries one measurement snapshot. All fields are optional
// except the caller-supplied client id; unfilled measurements stay zero.
type AddEntryInput struct {
	Weight       float64
	Height       float64
	BodyFat      float64
	MuscleMass   float64
	VisceralFat  float64
	MetabolicAge float64
	Waist        float64
	Hip          float64
	Chest        float64
	ArmRight     float64
	ArmLeft      float64
	ThighRight   float64
	ThighLeft    float64
	CalfRight    float64
	CalfLeft     float64
}

// PhotoUploadResponse returns a presigned PUT URL and the object key the
// client must report back when confirming.
type PhotoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// --- Service Interface ---
type BiometricService interface {
	// AddEntry appends a timestamped measurement snapshot to the client's
	// log. Entries are never updated or deleted.
	AddEntry(ctx context.Context, clientID primitive.ObjectID, input AddEntryInput) (*domain.Biometric, error)
	// ListEntries returns the client's log sorted strictly descending by
	// date.
	ListEntries(ctx context.Context, clientID primitive.ObjectID) ([]domain.Biometric, error)

	// Progress photo flow: request a presigned upload URL, upload directly
	// to storage, then confirm the object key against an entry.
	RequestPhotoUploadURL(ctx context.Context, clientID primitive.ObjectID, contentType string) (*PhotoUploadResponse, error)
	ConfirmPhoto(ctx context.Context, clientID, entryID primitive.ObjectID, objectKey string) error
	GetPhotoDownloadURL(ctx context.Context, clientID, entryID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

type biometricService struct {
	biometricRepo repository.BiometricRepository
	fileStorage   storage.FileStorage
}

// NewBiometricService creates a new instance of biometricService.
func NewBiometricService(biometricRepo repository.BiometricRepository, fileStorage storage.FileStorage) BiometricService {
	return &biometricService{
		biometricRepo: biometricRepo,
		fileStorage:   fileStorage,
	}
}

func (s *biometricService) AddEntry(ctx context.Context, clientID primitive.ObjectID, input AddEntryInput) (*domain.Biometric, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}

	entry := &domain.Biometric{
		ClientID:     clientID,
		Weight:       input.Weight,
		Height:       input.Height,
		BodyFat:      input.BodyFat,
		MuscleMass:   input.MuscleMass,
		VisceralFat:  input.VisceralFat,
		MetabolicAge: input.MetabolicAge,
		Waist:        input.Waist,
		Hip:          input.Hip,
		Chest:        input.Chest,
		ArmRight:     input.ArmRight,
		ArmLeft:      input.ArmLeft,
		ThighRight:   input.ThighRight,
		ThighLeft:    input.ThighLeft,
		CalfRight:    input.CalfRight,
		CalfLeft:     input.CalfLeft,
	}

	id, err := s.biometricRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

func (s *biometricService) ListEntries(ctx context.Context, clientID primitive.ObjectID) ([]domain.Biometric, error) {
	return s.biometricRepo.ListByClientID(ctx, clientID)
}

// RequestPhotoUploadURL generates a presigned URL for a progress photo.
func (s *biometricService) RequestPhotoUploadURL(ctx context.Context, clientID primitive.ObjectID, contentType string) (*PhotoUploadResponse, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidPhotoContent
	}

	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("biometrics", clientID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrPhotoURLError
	}

	return &PhotoUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmPhoto attaches an uploaded object key to one of the client's own
// entries.
func (s *biometricService) ConfirmPhoto(ctx context.Context, clientID, entryID primitive.ObjectID, objectKey string) error {
	if objectKey == "" {
		return errors.New("object key is required")
	}

	entry, err := s.biometricRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	if entry.ClientID != clientID {
		return ErrEntryNotOwnedByClient
	}

	entry.PhotoObjectKey = objectKey
	return s.biometricRepo.Update(ctx, entry)
}

// GetPhotoDownloadURL generates a temporary viewing URL for an entry's photo.
func (s *biometricService) GetPhotoDownloadURL(ctx context.Context, clientID, entryID primitive.ObjectID) (string, error) {
	entry, err := s.biometricRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrEntryNotFound
		}
		return "", err
	}
	if entry.ClientID != clientID {
		return "", ErrEntryNotOwnedByClient
	}
	if entry.PhotoObjectKey == "" {
		return "", ErrPhotoMissing
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, entry.PhotoObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrPhotoURLError
	}
	return downloadURL, nil
}
