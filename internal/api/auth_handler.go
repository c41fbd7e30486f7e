package api

import (
	"capitalfit/membership-app/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type MemberLoginRequest struct {
	Phone     string `json:"phone" binding:"required"`
	BirthDate string `json:"birthDate" binding:"required"` // "YYYY-MM-DD"
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type MemberLoginResponse struct {
	Token  string         `json:"token"`
	Client ClientResponse `json:"client"`
}

// --- Handler Methods ---

// AdminLogin godoc
// @Summary Log in to the admin dashboard
// @Description Authenticates the operator and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body AdminLoginRequest true "Dashboard credentials"
// @Success 200 {object} AdminLoginResponse "Login successful"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, err := h.authService.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, AdminLoginResponse{Token: token})
}

// MemberLogin godoc
// @Summary Log in to the member portal
// @Description Authenticates a member by phone number and birth date.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body MemberLoginRequest true "Member credentials"
// @Success 200 {object} MemberLoginResponse "Login successful"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Router /auth/member/login [post]
func (h *AuthHandler) MemberLogin(c *gin.Context) {
	var req MemberLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, client, err := h.authService.MemberLogin(c.Request.Context(), req.Phone, req.BirthDate)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, MemberLoginResponse{
		Token:  token,
		Client: MapClientToResponse(client),
	})
}
