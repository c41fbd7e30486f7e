package api

import (
	"capitalfit/membership-app/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BiometricHandler serves the member-portal measurement log and the admin
// read-only view of it.
type BiometricHandler struct {
	biometricService service.BiometricService
}

// NewBiometricHandler creates a new BiometricHandler.
func NewBiometricHandler(biometricService service.BiometricService) *BiometricHandler {
	return &BiometricHandler{biometricService: biometricService}
}

// --- DTOs ---

type AddBiometricRequest struct {
	Weight       float64 `json:"weight" binding:"min=0"`
	Height       float64 `json:"height" binding:"min=0"`
	BodyFat      float64 `json:"bodyFat" binding:"min=0"`
	MuscleMass   float64 `json:"muscleMass" binding:"min=0"`
	VisceralFat  float64 `json:"visceralFat" binding:"min=0"`
	MetabolicAge float64 `json:"metabolicAge" binding:"min=0"`
	Waist        float64 `json:"waist" binding:"min=0"`
	Hip          float64 `json:"hip" binding:"min=0"`
	Chest        float64 `json:"chest" binding:"min=0"`
	ArmRight     float64 `json:"armRight" binding:"min=0"`
	ArmLeft      float64 `json:"armLeft" binding:"min=0"`
	ThighRight   float64 `json:"thighRight" binding:"min=0"`
	ThighLeft    float64 `json:"thighLeft" binding:"min=0"`
	CalfRight    float64 `json:"calfRight" binding:"min=0"`
	CalfLeft     float64 `json:"calfLeft" binding:"min=0"`
}

type PhotoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmPhotoRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Member portal endpoints (operate on the caller's own log) ---

// ListMyEntries godoc
// @Summary The caller's measurement log, newest first
// @Tags Portal
// @Produce json
// @Success 200 {array} domain.Biometric
// @Router /me/biometrics [get]
func (h *BiometricHandler) ListMyEntries(c *gin.Context) {
	clientID, err := getClientIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve member identity")
		return
	}

	entries, err := h.biometricService.ListEntries(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AddMyEntry godoc
// @Summary Append a measurement snapshot to the caller's log
// @Tags Portal
// @Accept json
// @Produce json
// @Param entry body AddBiometricRequest true "Measurements"
// @Success 201 {object} domain.Biometric
// @Router /me/biometrics [post]
func (h *BiometricHandler) AddMyEntry(c *gin.Context) {
	clientID, err := getClientIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve member identity")
		return
	}

	var req AddBiometricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.biometricService.AddEntry(c.Request.Context(), clientID, service.AddEntryInput{
		Weight:       req.Weight,
		Height:       req.Height,
		BodyFat:      req.BodyFat,
		MuscleMass:   req.MuscleMass,
		VisceralFat:  req.VisceralFat,
		MetabolicAge: req.MetabolicAge,
		Waist:        req.Waist,
		Hip:          req.Hip,
		Chest:        req.Chest,
		ArmRight:     req.ArmRight,
		ArmLeft:      req.ArmLeft,
		ThighRight:   req.ThighRight,
		ThighLeft:    req.ThighLeft,
		CalfRight:    req.CalfRight,
		CalfLeft:     req.CalfLeft,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to add entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// RequestPhotoUploadURL godoc
// @Summary Presigned PUT URL for a progress photo
// @Tags Portal
// @Accept json
// @Produce json
// @Param request body PhotoUploadURLRequest true "Image content type"
// @Success 200 {object} service.PhotoUploadResponse
// @Router /me/biometrics/photo-url [post]
func (h *BiometricHandler) RequestPhotoUploadURL(c *gin.Context) {
	clientID, err := getClientIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve member identity")
		return
	}

	var req PhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.biometricService.RequestPhotoUploadURL(c.Request.Context(), clientID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhotoContent) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmPhoto godoc
// @Summary Attach an uploaded photo to one of the caller's entries
// @Tags Portal
// @Accept json
// @Param id path string true "Entry ID"
// @Param request body ConfirmPhotoRequest true "Uploaded object key"
// @Success 204 "Attached"
// @Failure 404 {object} gin.H "Entry not found"
// @Router /me/biometrics/{id}/photo [post]
func (h *BiometricHandler) ConfirmPhoto(c *gin.Context) {
	clientID, err := getClientIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve member identity")
		return
	}

	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	var req ConfirmPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err = h.biometricService.ConfirmPhoto(c.Request.Context(), clientID, entryID, req.ObjectKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEntryNotOwnedByClient):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm photo")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPhotoURL godoc
// @Summary Presigned GET URL for an entry's progress photo
// @Tags Portal
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} gin.H "downloadUrl"
// @Failure 404 {object} gin.H "Entry or photo not found"
// @Router /me/biometrics/{id}/photo [get]
func (h *BiometricHandler) GetPhotoURL(c *gin.Context) {
	clientID, err := getClientIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve member identity")
		return
	}

	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	url, err := h.biometricService.GetPhotoDownloadURL(c.Request.Context(), clientID, entryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound), errors.Is(err, service.ErrPhotoMissing):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEntryNotOwnedByClient):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// --- Admin endpoint ---

// ListClientEntries godoc
// @Summary One client's measurement log, newest first
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {array} domain.Biometric
// @Router /admin/clients/{id}/biometrics [get]
func (h *BiometricHandler) ListClientEntries(c *gin.Context) {
	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	entries, err := h.biometricService.ListEntries(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}
