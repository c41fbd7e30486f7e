package service

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

func newAuthFixture(t *testing.T) (AuthService, *memory.ClientRepository) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	clientRepo := memory.NewClientRepository()
	svc := NewAuthService(clientRepo, "admin", string(hash), testJWTSecret, time.Hour)
	return svc, clientRepo
}

func parseClaims(t *testing.T, token string) *Claims {
	t.Helper()
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return claims
}

func TestAdminLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.AdminLogin(ctx, "admin", "hunter2")
	require.NoError(t, err)

	claims := parseClaims(t, token)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin", claims.Subject)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	tests := []struct {
		name               string
		username, password string
	}{
		{"wrong password", "admin", "wrong"},
		{"wrong username", "root", "hunter2"},
		{"empty password", "admin", ""},
		{"empty username", "", "hunter2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AdminLogin(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrAuthenticationFailed)
		})
	}
}

func TestMemberLogin(t *testing.T) {
	svc, clientRepo := newAuthFixture(t)
	ctx := context.Background()

	stored := &domain.Client{Name: "María", Phone: "5587654321", BirthDate: "1995-10-20"}
	_, err := clientRepo.Create(ctx, stored)
	require.NoError(t, err)

	token, client, err := svc.MemberLogin(ctx, "5587654321", "1995-10-20")
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, stored.ID, client.ID)

	claims := parseClaims(t, token)
	assert.Equal(t, RoleMember, claims.Role)
	assert.Equal(t, stored.ID.Hex(), claims.Subject)
}

func TestMemberLoginRejectsBadCredentials(t *testing.T) {
	svc, clientRepo := newAuthFixture(t)
	ctx := context.Background()

	_, err := clientRepo.Create(ctx, &domain.Client{Name: "María", Phone: "5587654321", BirthDate: "1995-10-20"})
	require.NoError(t, err)

	tests := []struct {
		name             string
		phone, birthDate string
	}{
		{"wrong birth date", "5587654321", "1995-10-21"},
		{"unknown phone", "5500000000", "1995-10-20"},
		{"empty phone", "", "1995-10-20"},
		{"empty birth date", "5587654321", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client, err := svc.MemberLogin(ctx, tt.phone, tt.birthDate)
			assert.ErrorIs(t, err, ErrAuthenticationFailed)
			assert.Nil(t, client)
		})
	}
}
