package api

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentHandler holds the payment ledger service dependency.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// --- DTOs ---

// RecordPaymentRequest defines the expected JSON for a ledger entry. PlanID
// is optional: ad-hoc amounts are recorded without a catalog reference.
type RecordPaymentRequest struct {
	ClientID string  `json:"clientId" binding:"required"`
	PlanID   *string `json:"planId"`
	Amount   float64 `json:"amount" binding:"min=0"`
	Method   string  `json:"method" binding:"required,oneof=cash transfer"`
}

// --- Handler Methods ---

// ListPayments godoc
// @Summary The whole payment ledger, oldest first
// @Tags Payments
// @Produce json
// @Success 200 {array} domain.Payment
// @Router /admin/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.paymentService.ListPayments(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// RecordPayment godoc
// @Summary Record a payment
// @Description Appends to the ledger and renews the client's membership when
// @Description the plan resolves. An unknown plan or client still records
// @Description the payment; only the renewal is skipped.
// @Tags Payments
// @Accept json
// @Produce json
// @Param payment body RecordPaymentRequest true "Payment entry"
// @Success 201 {object} domain.Payment
// @Router /admin/payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var planID *primitive.ObjectID
	if req.PlanID != nil && *req.PlanID != "" {
		id, err := primitive.ObjectIDFromHex(*req.PlanID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
			return
		}
		planID = &id
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), service.RecordPaymentInput{
		ClientID: clientID,
		PlanID:   planID,
		Amount:   req.Amount,
		Method:   domain.PaymentMethod(req.Method),
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}
