package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/talentgrid/internmatch/internal/services"
)

type HealthHandler struct {
	logger   *logrus.Logger
	services *services.Services
}

func NewHealthHandler(logger *logrus.Logger, services *services.Services) *HealthHandler {
	return &HealthHandler{
		logger:   logger,
		services: services,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"models":    h.services.Stats(),
	})
}
