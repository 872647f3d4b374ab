package wall

import (
	"fmt"
	"net/http"

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
// 2. WALL ENDPOINTS
// =============================================

// UpgradeWalls moves wall pieces between level buckets
// POST /api/v1/accounts/:id/walls/upgrade
func (h *Handler) UpgradeWalls(c *gin.Context) {
	userID, accountID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.service.Upgrade(userID, accountID, &req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"group":         result.Group,
		"total_allowed": result.TotalAllowed,
	})
}

// GetWallStats returns the wall roll-up, creating the ledger on first read
// GET /api/v1/accounts/:id/walls
func (h *Handler) GetWallStats(c *gin.Context) {
	userID, accountID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	stats, err := h.service.GetStats(userID, accountID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// =============================================
// 3. HELPER FUNCTIONS
// =============================================

func (h *Handler) requestIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return uuid.Nil, uuid.Nil, false
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account ID"})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, accountID, true
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
