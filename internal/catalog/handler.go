package catalog

import (
	"net/http"
	"strconv"

	"townkeeper/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler exposes the static configuration table for clients that want to
// render the available entities before provisioning.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// GetTemplates - GET /api/v1/catalog/:th
func (h *Handler) GetTemplates(c *gin.Context) {
	th, err := strconv.Atoi(c.Param("th"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid town hall level"})
		return
	}
	if th < MinTownHall || th > MaxTownHall {
		common.RespondError(c, common.Validationf("town hall level %d out of range (%d-%d)", th, MinTownHall, MaxTownHall))
		return
	}

	templates := TemplatesFor(th)
	c.JSON(http.StatusOK, gin.H{
		"town_hall_level": th,
		"templates":       templates,
		"count":           len(templates),
	})
}

// GetWallAllowance - GET /api/v1/catalog/:th/walls
func (h *Handler) GetWallAllowance(c *gin.Context) {
	th, err := strconv.Atoi(c.Param("th"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid town hall level"})
		return
	}
	if th < MinTownHall || th > MaxTownHall {
		common.RespondError(c, common.Validationf("town hall level %d out of range (%d-%d)", th, MinTownHall, MaxTownHall))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"town_hall_level": th,
		"allowance":       WallAllowanceFor(th),
	})
}
