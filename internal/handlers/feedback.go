package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/talentgrid/internmatch/internal/middleware"
	"github.com/talentgrid/internmatch/internal/services"
	"github.com/talentgrid/internmatch/internal/validation"
	"github.com/talentgrid/internmatch/pkg/models"
)

type FeedbackHandler struct {
	logger   *logrus.Logger
	services *services.Services
	schemas  *validation.SchemaValidator
	validate *validator.Validate
}

func NewFeedbackHandler(
	logger *logrus.Logger,
	services *services.Services,
	schemas *validation.SchemaValidator,
) *FeedbackHandler {
	return &FeedbackHandler{
		logger:   logger,
		services: services,
		schemas:  schemas,
		validate: validator.New(),
	}
}

// Create accepts a rating event, appends it to the feedback log, and folds it
// into the in-memory history. The collaborative model is not retrained here;
// that happens on the admin retrain endpoint.
func (h *FeedbackHandler) Create(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Could not read request body",
			},
		})
		return
	}

	if result := h.schemas.ValidateFeedback(payload); !result.Valid {
		services.ObserveFeedback("rejected")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "SCHEMA_VALIDATION_FAILED",
				"message": "Feedback payload failed validation",
				"details": result.Errors,
			},
		})
		return
	}

	var event models.RatingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		services.ObserveFeedback("rejected")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if err := h.validate.Struct(&event); err != nil {
		services.ObserveFeedback("rejected")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "Request validation failed",
				"details": err.Error(),
			},
		})
		return
	}

	if actor := middleware.StudentFromContext(c); actor != "" && actor != event.StudentID {
		h.logger.WithFields(logrus.Fields{
			"actor":      actor,
			"student_id": event.StudentID,
		}).Warn("Feedback submitted on behalf of another student")
	}

	if err := h.services.Feedback.Submit(event); err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			services.ObserveFeedback("rejected")
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "VALIDATION_FAILED",
					"message": ve.Error(),
				},
			})
			return
		}

		h.logger.WithError(err).Error("Failed to persist feedback")
		services.ObserveFeedback("failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "FEEDBACK_PERSIST_FAILED",
				"message": "Could not record feedback",
			},
		})
		return
	}

	services.ObserveFeedback("accepted")
	c.JSON(http.StatusCreated, gin.H{
		"status":        "recorded",
		"student_id":    event.StudentID,
		"internship_id": event.OpportunityID,
	})
}

// Retrain rebuilds the collaborative model from the full feedback history.
func (h *FeedbackHandler) Retrain(c *gin.Context) {
	if err := h.services.Feedback.Retrain(h.services.Collaborative); err != nil {
		var te *services.TrainingError
		if errors.As(err, &te) {
			services.ObserveRetrain("rejected")
			c.JSON(http.StatusConflict, gin.H{
				"error": gin.H{
					"code":    "INSUFFICIENT_HISTORY",
					"message": te.Error(),
				},
			})
			return
		}

		h.logger.WithError(err).Error("Retrain failed")
		services.ObserveRetrain("failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "RETRAIN_FAILED",
				"message": "Could not retrain collaborative model",
			},
		})
		return
	}

	services.ObserveRetrain("success")
	c.JSON(http.StatusOK, gin.H{
		"status":  "retrained",
		"ratings": len(h.services.Feedback.History()),
	})
}
