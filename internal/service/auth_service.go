package service

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid credentials")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// Role distinguishes the two token audiences: the admin dashboard and the
// member self-service portal.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// --- Service Interface ---
type AuthService interface {
	// AdminLogin authenticates the gym operator against the configured
	// credentials and issues an admin token.
	AdminLogin(ctx context.Context, username, password string) (string, error)
	// MemberLogin authenticates a member by phone number plus birth date
	// (the portal's second factor) and issues a member token whose subject
	// is the client id.
	MemberLogin(ctx context.Context, phone, birthDate string) (token string, client *domain.Client, err error)
	GetJWTSecret() string
}

// --- Service Implementation ---

type authService struct {
	clientRepo        repository.ClientRepository
	adminUsername     string
	adminPasswordHash string
	jwtSecret         string
	jwtExpiration     time.Duration
}

// NewAuthService creates a new instance of authService. adminPasswordHash is
// a bcrypt hash of the dashboard password.
func NewAuthService(clientRepo repository.ClientRepository, adminUsername, adminPasswordHash, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		clientRepo:        clientRepo,
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExpiration,
	}
}

// AdminLogin verifies dashboard credentials.
func (s *authService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrAuthenticationFailed
	}
	if username != s.adminUsername {
		return "", ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return "", ErrAuthenticationFailed
	}

	token, err := s.generateJWT(s.adminUsername, RoleAdmin)
	if err != nil {
		return "", ErrTokenGeneration
	}
	return token, nil
}

// MemberLogin verifies a member's phone + birth-date pair. The birth date is
// compared exactly against the stored "YYYY-MM-DD" value.
func (s *authService) MemberLogin(ctx context.Context, phone, birthDate string) (string, *domain.Client, error) {
	if phone == "" || birthDate == "" {
		return "", nil, ErrAuthenticationFailed
	}

	client, err := s.clientRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if client.BirthDate != birthDate {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(client.ID.Hex(), RoleMember)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, client, nil
}

// --- JWT Helper ---

// Claims defines the structure of the JWT payload. The api middleware parses
// the same shape.
type Claims struct {
	Subject string `json:"uid"` // Admin username or client id hex.
	Role    Role   `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(subject string, role Role) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &Claims{
		Subject: subject,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "capitalfit",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
