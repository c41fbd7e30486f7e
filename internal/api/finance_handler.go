package api

import (
	"capitalfit/membership-app/internal/domain"
	"capitalfit/membership-app/internal/service"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Default span for the profitability history chart.
const defaultHistoryMonths = 6

// FinanceHandler holds the financial aggregation service dependency.
type FinanceHandler struct {
	financeService service.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(financeService service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// --- DTOs ---

type SaveCostsRequest struct {
	Rent      float64 `json:"rent" binding:"min=0"`
	Utilities float64 `json:"utilities" binding:"min=0"`
	Staff     float64 `json:"staff" binding:"min=0"`
	Other     float64 `json:"other" binding:"min=0"`
}

// --- Handler Methods ---

// MonthlyData godoc
// @Summary Income, costs and profit for one calendar month
// @Tags Finance
// @Produce json
// @Param month query string false "Month key YYYY-MM (default: current month)"
// @Success 200 {object} service.MonthlyData
// @Router /admin/finance/monthly [get]
func (h *FinanceHandler) MonthlyData(c *gin.Context) {
	date := time.Now().UTC()
	if monthKey := c.Query("month"); monthKey != "" {
		parsed, err := time.Parse(domain.MonthKeyLayout, monthKey)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid month key, expected YYYY-MM")
			return
		}
		date = parsed
	}

	data, err := h.financeService.MonthlyData(c.Request.Context(), date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to aggregate monthly data")
		return
	}
	c.JSON(http.StatusOK, data)
}

// SaveCosts godoc
// @Summary Save the fixed costs for one month
// @Description Last write wins per month key.
// @Tags Finance
// @Accept json
// @Param month path string true "Month key YYYY-MM"
// @Param costs body SaveCostsRequest true "Cost fields"
// @Success 204 "Saved"
// @Router /admin/finance/costs/{month} [put]
func (h *FinanceHandler) SaveCosts(c *gin.Context) {
	monthKey := c.Param("month")
	if _, err := time.Parse(domain.MonthKeyLayout, monthKey); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid month key, expected YYYY-MM")
		return
	}

	var req SaveCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err := h.financeService.SaveMonthlyCosts(c.Request.Context(), monthKey, domain.MonthlyCosts{
		Rent:      req.Rent,
		Utilities: req.Utilities,
		Staff:     req.Staff,
		Other:     req.Other,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save costs")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCosts godoc
// @Summary The stored fixed costs for one month (zeroes when never saved)
// @Tags Finance
// @Produce json
// @Param month path string true "Month key YYYY-MM"
// @Success 200 {object} domain.MonthlyCosts
// @Router /admin/finance/costs/{month} [get]
func (h *FinanceHandler) GetCosts(c *gin.Context) {
	monthKey := c.Param("month")
	if _, err := time.Parse(domain.MonthKeyLayout, monthKey); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid month key, expected YYYY-MM")
		return
	}

	costs, err := h.financeService.MonthlyCosts(c.Request.Context(), monthKey)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load costs")
		return
	}
	c.JSON(http.StatusOK, costs)
}

// History godoc
// @Summary Rolling profitability series, oldest month first
// @Tags Finance
// @Produce json
// @Param months query int false "Number of months (default 6)"
// @Success 200 {array} service.HistoryEntry
// @Router /admin/finance/history [get]
func (h *FinanceHandler) History(c *gin.Context) {
	months := defaultHistoryMonths
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid months parameter")
			return
		}
		months = parsed
	}

	history, err := h.financeService.FinancialHistory(c.Request.Context(), months)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to build history")
		return
	}
	c.JSON(http.StatusOK, history)
}
