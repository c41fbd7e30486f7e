package api

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberHandler serves the admin-side client registry and the member-portal
// profile endpoint.
type MemberHandler struct {
	memberService  service.MemberService
	paymentService service.PaymentService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService service.MemberService, paymentService service.PaymentService) *MemberHandler {
	return &MemberHandler{memberService: memberService, paymentService: paymentService}
}

// --- DTOs ---

type CreateClientRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	BirthDate string `json:"birthDate" binding:"required"`
	Gender    string `json:"gender" binding:"omitempty"`
}

type UpdateClientRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birthDate"`
	Gender    *string `json:"gender"`
}

// ClientResponse converts ObjectIDs to hex strings and attaches the derived
// membership status.
type ClientResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Phone           string                  `json:"phone"`
	BirthDate       string                  `json:"birthDate"`
	Gender          string                  `json:"gender,omitempty"`
	ActivePlanID    *string                 `json:"activePlanId,omitempty"`
	ExpirationDate  *time.Time              `json:"expirationDate,omitempty"`
	LastPaymentDate *time.Time              `json:"lastPaymentDate,omitempty"`
	Status          domain.MembershipStatus `json:"status"`
	CreatedAt       time.Time               `json:"createdAt"`
}

// MapClientToResponse converts a domain Client to its DTO.
func MapClientToResponse(client *domain.Client) ClientResponse {
	if client == nil {
		return ClientResponse{}
	}

	resp := ClientResponse{
		ID:              client.ID.Hex(),
		Name:            client.Name,
		Phone:           client.Phone,
		BirthDate:       client.BirthDate,
		Gender:          client.Gender,
		ExpirationDate:  client.ExpirationDate,
		LastPaymentDate: client.LastPaymentDate,
		Status:          client.Status(time.Now().UTC()),
		CreatedAt:       client.CreatedAt,
	}
	if client.ActivePlanID != nil && *client.ActivePlanID != primitive.NilObjectID {
		hex := client.ActivePlanID.Hex()
		resp.ActivePlanID = &hex
	}
	return resp
}

// --- Handler Methods ---

// ListClients godoc
// @Summary List all clients with membership status
// @Tags Clients
// @Produce json
// @Success 200 {array} service.ClientWithStatus
// @Router /admin/clients [get]
func (h *MemberHandler) ListClients(c *gin.Context) {
	clients, err := h.memberService.ListClients(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClient godoc
// @Summary Get one client by id
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} ClientResponse
// @Failure 404 {object} gin.H "Client not found"
// @Router /admin/clients/{id} [get]
func (h *MemberHandler) GetClient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	client, err := h.memberService.GetClient(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to get client")
		}
		return
	}
	c.JSON(http.StatusOK, MapClientToResponse(client))
}

// CreateClient godoc
// @Summary Register a new client
// @Tags Clients
// @Accept json
// @Produce json
// @Param client body CreateClientRequest true "Registration details"
// @Success 201 {object} ClientResponse
// @Router /admin/clients [post]
func (h *MemberHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	client, err := h.memberService.CreateClient(c.Request.Context(), service.CreateClientInput{
		Name:      req.Name,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, MapClientToResponse(client))
}

// UpdateClient godoc
// @Summary Update client profile fields
// @Description Merges the provided fields into the client record. An unknown
// @Description id is a no-op by contract, answered with 204 either way.
// @Tags Clients
// @Accept json
// @Param id path string true "Client ID"
// @Param client body UpdateClientRequest true "Fields to update"
// @Success 204 "Updated (or no-op)"
// @Router /admin/clients/{id} [patch]
func (h *MemberHandler) UpdateClient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err = h.memberService.UpdateClient(c.Request.Context(), id, service.UpdateClientInput{
		Name:      req.Name,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetClientPayments godoc
// @Summary Payment history for one client, newest first
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {array} domain.Payment
// @Router /admin/clients/{id}/payments [get]
func (h *MemberHandler) GetClientPayments(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	payments, err := h.paymentService.ListClientPayments(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Stats godoc
// @Summary Membership status counts for the dashboard
// @Tags Clients
// @Produce json
// @Success 200 {object} service.MembershipStats
// @Router /admin/stats [get]
func (h *MemberHandler) Stats(c *gin.Context) {
	stats, err := h.memberService.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Me godoc
// @Summary The authenticated member's own profile
// @Tags Portal
// @Produce json
// @Success 200 {object} ClientResponse
// @Router /me [get]
func (h *MemberHandler) Me(c *gin.Context) {
	clientID, err := getClientIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve member identity")
		return
	}

	client, err := h.memberService.GetClient(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to get profile")
		}
		return
	}
	c.JSON(http.StatusOK, MapClientToResponse(client))
}
