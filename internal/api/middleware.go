package api

import (
	"capitalfit/membership-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const (
	ContextSubjectKey = "authSubject"
	ContextRoleKey    = "authRole"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &service.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.Subject == "" || claims.Role == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextSubjectKey, claims.Subject)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RoleMiddleware creates middleware to check if the caller has the required
// role. Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...service.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleRaw, exists := c.Get(ContextRoleKey)
		if !exists {
			abortWithError(c, http.StatusInternalServerError, "Caller role not found in context")
			return
		}

		role, ok := roleRaw.(service.Role)
		if !ok {
			abortWithError(c, http.StatusInternalServerError, "Invalid caller role type in context")
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		abortWithError(c, http.StatusForbidden, fmt.Sprintf("Access denied: Role '%s' does not have permission", role))
	}
}

// getClientIDFromContext resolves the authenticated member's client id. Only
// valid on routes behind RoleMiddleware(RoleMember).
func getClientIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	subRaw, exists := c.Get(ContextSubjectKey)
	if !exists {
		return primitive.NilObjectID, errors.New("auth subject not found in context")
	}
	subStr, ok := subRaw.(string)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid auth subject type in context")
	}
	return primitive.ObjectIDFromHex(subStr)
}
