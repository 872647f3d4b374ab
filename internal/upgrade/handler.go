package upgrade

import (
	"fmt"
	"net/http"
	"time"

	"townkeeper/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// =============================================
// 1. HANDLER STRUCTURE
// =============================================

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// =============================================
// 2. LIFECYCLE ENDPOINTS
// =============================================

// StartUpgrade starts or instantly applies an upgrade
// POST /api/v1/entities/:id/upgrade/start
func (h *Handler) StartUpgrade(c *gin.Context) {
	userID, entityID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	var req StartUpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.service.StartUpgrade(userID, entityID, &req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"instant": result.Instant,
		"entity":  result.Entity,
	})
}

// FinishUpgrade finalizes a running upgrade
// POST /api/v1/entities/:id/upgrade/finish
func (h *Handler) FinishUpgrade(c *gin.Context) {
	userID, entityID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	entity, err := h.service.FinishUpgrade(userID, entityID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entity":  entity,
	})
}

// CancelUpgrade aborts a running upgrade
// POST /api/v1/entities/:id/upgrade/cancel
func (h *Handler) CancelUpgrade(c *gin.Context) {
	userID, entityID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	entity, err := h.service.CancelUpgrade(userID, entityID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entity":  entity,
	})
}

// =============================================
// 3. READ ENDPOINTS
// =============================================

// GetUpgradeStatus returns derived progress at request time
// GET /api/v1/entities/:id/upgrade/status
func (h *Handler) GetUpgradeStatus(c *gin.Context) {
	userID, entityID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	progress, err := h.service.GetUpgradeStatus(userID, entityID, time.Now())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// ValidateUpgrade returns the start-eligibility check
// GET /api/v1/entities/:id/upgrade/validate
func (h *Handler) ValidateUpgrade(c *gin.Context) {
	userID, entityID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	eligibility, err := h.service.ValidateUpgrade(userID, entityID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, eligibility)
}

// GetEntity returns one entity
// GET /api/v1/entities/:id
func (h *Handler) GetEntity(c *gin.Context) {
	userID, entityID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	entity, err := h.service.GetEntity(userID, entityID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

// =============================================
// 4. ADMINISTRATIVE ENDPOINTS
// =============================================

// SetLevel overrides the current level of an idle entity
// PUT /api/v1/entities/:id/level
func (h *Handler) SetLevel(c *gin.Context) {
	userID, entityID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	var req SetLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	entity, err := h.service.SetLevel(userID, entityID, req.Level)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entity":  entity,
	})
}

// DeleteEntity removes a spell
// DELETE /api/v1/entities/:id
func (h *Handler) DeleteEntity(c *gin.Context) {
	userID, entityID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	if err := h.service.DeleteEntity(userID, entityID); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Spell deleted successfully",
	})
}

// =============================================
// 5. HELPER FUNCTIONS
// =============================================

// requestIDs extracts the authenticated user and the :id path parameter.
func (h *Handler) requestIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return uuid.Nil, uuid.Nil, false
	}

	entityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity ID"})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, entityID, true
}

// getUserIDFromContext extracts user ID from Gin context
func getUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	rawID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, fmt.Errorf("user ID not found in context")
	}

	switch v := rawID.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid user ID format")
		}
		return parsed, nil
	default:
		return uuid.Nil, fmt.Errorf("unsupported user ID type")
	}
}
