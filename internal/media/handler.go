package media

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"townkeeper/internal/catalog"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	// Sweep the image cache every 10 minutes.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			service.CleanupCache()
		}
	}()

	return &Handler{service: service}
}

// GetEntityImage - GET /api/v1/media/entity/:category/:name
func (h *Handler) GetEntityImage(c *gin.Context) {
	category := catalog.Category(c.Param("category"))
	name := c.Param("name")

	imageData, contentType, err := h.service.GetEntityImageData(c.Request.Context(), category, name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Entity image not found",
			"name":    name,
			"details": err.Error(),
		})
		return
	}

	etag := fmt.Sprintf(`"%s/%s"`, category, catalog.NormalizeKey(name))
	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("ETag", etag)

	if match := c.GetHeader("If-None-Match"); match == etag {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, contentType, imageData)
}

// GetImage - GET /api/v1/media/:filename
func (h *Handler) GetImage(c *gin.Context) {
	filename := c.Param("filename")

	// Block path traversal.
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		return
	}

	imageData, contentType, err := h.service.GetImageData(c.Request.Context(), filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("ETag", fmt.Sprintf(`"%s"`, filename))

	if match := c.GetHeader("If-None-Match"); match == fmt.Sprintf(`"%s"`, filename) {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, contentType, imageData)
}
