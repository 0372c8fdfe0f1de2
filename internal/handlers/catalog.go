package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/talentgrid/internmatch/internal/services"
	"github.com/talentgrid/internmatch/pkg/models"
)

type CatalogHandler struct {
	logger   *logrus.Logger
	services *services.Services
}

func NewCatalogHandler(logger *logrus.Logger, services *services.Services) *CatalogHandler {
	return &CatalogHandler{
		logger:   logger,
		services: services,
	}
}

// List returns the full internship catalog.
func (h *CatalogHandler) List(c *gin.Context) {
	catalog := h.services.Content.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"internships": catalog,
		"count":       len(catalog),
	})
}

// GetRating returns the live average rating for one internship, computed
// from the feedback history rather than the static catalog column.
func (h *CatalogHandler) GetRating(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.services.Content.Opportunity(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":    "INTERNSHIP_NOT_FOUND",
				"message": "Unknown internship ID",
			},
		})
		return
	}

	avg, count := h.services.Feedback.AverageRating(id)
	c.JSON(http.StatusOK, models.OpportunityRating{
		OpportunityID: id,
		AverageRating: avg,
		Count:         count,
	})
}
