package api

import (
	"capitalfit/membership-app/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan catalog service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

// CreatePlanRequest defines the expected JSON for a new catalog plan.
// DurationDays has no "min=1" constraint on purpose: 0 is a valid one-time
// fee.
type CreatePlanRequest struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price" binding:"min=0"`
	DurationDays int     `json:"durationDays" binding:"min=0"`
}

type UpdatePlanRequest struct {
	Name         *string  `json:"name"`
	Price        *float64 `json:"price"`
	DurationDays *int     `json:"durationDays"`
}

// --- Handler Methods ---

// ListPlans godoc
// @Summary List the plan catalog
// @Tags Plans
// @Produce json
// @Success 200 {array} domain.Plan
// @Router /admin/plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// CreatePlan godoc
// @Summary Create a catalog plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param plan body CreatePlanRequest true "Plan definition"
// @Success 201 {object} domain.Plan
// @Router /admin/plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), service.CreatePlanInput{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan godoc
// @Summary Update a catalog plan
// @Tags Plans
// @Accept json
// @Param id path string true "Plan ID"
// @Param plan body UpdatePlanRequest true "Fields to update"
// @Success 204 "Updated"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /admin/plans/{id} [patch]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err = h.planService.UpdatePlan(c.Request.Context(), id, service.UpdatePlanInput{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update plan")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// DeletePlan godoc
// @Summary Delete a catalog plan
// @Description Clients referencing the plan keep their activePlanId; plan
// @Description lookups for them degrade to "no active plan".
// @Tags Plans
// @Param id path string true "Plan ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Plan not found"
// @Router /admin/plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete plan")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
