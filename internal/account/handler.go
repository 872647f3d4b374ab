package account

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
// 2. ACCOUNT ENDPOINTS
// =============================================

// CreateAccount provisions a fresh account at a town-hall level
// POST /api/v1/accounts
func (h *Handler) CreateAccount(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.service.Provision(userID, &req)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"account":    result.Account,
		"entities":   result.Entities,
		"wall_group": result.WallGroup,
	})
}

// ListAccounts returns the user's accounts
// GET /api/v1/accounts
func (h *Handler) ListAccounts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	accounts, err := h.service.List(userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// GetAccount returns one account
// GET /api/v1/accounts/:id
func (h *Handler) GetAccount(c *gin.Context) {
	userID, accountID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	acc, err := h.service.Get(userID, accountID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, acc)
}

// DeleteAccount removes an account and everything it owns
// DELETE /api/v1/accounts/:id
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID, accountID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	if err := h.service.Delete(userID, accountID); err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account deleted successfully",
	})
}

// ListEntities returns all entities of an account
// GET /api/v1/accounts/:id/entities
func (h *Handler) ListEntities(c *gin.Context) {
	userID, accountID, ok := h.requestIDs(c)
	if !ok {
		return
	}

	entities, err := h.service.ListEntities(userID, accountID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entities": entities})
}

// GetAccountStats returns the aggregate roll-up
// GET /api/v1/accounts/:id/stats
func (h *Handler) GetAccountStats(c *gin.Context) {
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
