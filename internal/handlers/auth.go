package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/talentgrid/internmatch/internal/services"
	"github.com/talentgrid/internmatch/pkg/models"
)

type AuthHandler struct {
	logger   *logrus.Logger
	services *services.Services
}

func NewAuthHandler(logger *logrus.Logger, services *services.Services) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		services: services,
	}
}

// IssueToken exchanges a known student ID for a signed API token.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if _, ok := h.services.Student(req.StudentID); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":    "STUDENT_NOT_FOUND",
				"message": "Unknown student ID",
			},
		})
		return
	}

	token, expiresAt, err := h.services.Auth.GenerateToken(req.StudentID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "TOKEN_GENERATION_FAILED",
				"message": "Could not generate token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
