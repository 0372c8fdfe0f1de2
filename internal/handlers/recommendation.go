package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/talentgrid/internmatch/internal/services"
	"github.com/talentgrid/internmatch/pkg/models"
)

const maxResultCount = 100

type RecommendationHandler struct {
	logger   *logrus.Logger
	services *services.Services
}

func NewRecommendationHandler(logger *logrus.Logger, services *services.Services) *RecommendationHandler {
	return &RecommendationHandler{
		logger:   logger,
		services: services,
	}
}

// Get serves the hybrid ranking for a student.
func (h *RecommendationHandler) Get(c *gin.Context) {
	student, ok := h.lookupStudent(c)
	if !ok {
		return
	}
	count, ok := parseCount(c)
	if !ok {
		return
	}

	recs := h.services.Ranker.Recommend(student.ID, student.Profile, count)
	services.ObserveRecommendation("hybrid")

	c.JSON(http.StatusOK, models.RecommendationResponse{
		RequestID:       uuid.New(),
		StudentID:       student.ID,
		Recommendations: recs,
		GeneratedAt:     time.Now().UTC(),
	})
}

// GetContent serves the content-only ranking, skipping the rating model.
func (h *RecommendationHandler) GetContent(c *gin.Context) {
	student, ok := h.lookupStudent(c)
	if !ok {
		return
	}
	count, ok := parseCount(c)
	if !ok {
		return
	}
	if count <= 0 {
		count = h.services.Ranker.DefaultTopN()
	}

	scored := h.services.Content.TopN(student.Profile, count)
	recs := make([]models.ScoredOpportunity, 0, len(scored))
	for i, item := range scored {
		opp, _ := h.services.Content.Opportunity(item.OpportunityID)
		recs = append(recs, models.ScoredOpportunity{
			Opportunity:  opp,
			ContentScore: item.Score,
			HybridScore:  item.Score,
			Position:     i + 1,
		})
	}
	services.ObserveRecommendation("content")

	c.JSON(http.StatusOK, models.RecommendationResponse{
		RequestID:       uuid.New(),
		StudentID:       student.ID,
		Recommendations: recs,
		GeneratedAt:     time.Now().UTC(),
	})
}

// GetCollaborative serves predicted ratings for internships the student has
// not rated yet.
func (h *RecommendationHandler) GetCollaborative(c *gin.Context) {
	student, ok := h.lookupStudent(c)
	if !ok {
		return
	}
	count, ok := parseCount(c)
	if !ok {
		return
	}
	if count <= 0 {
		count = h.services.Ranker.DefaultTopN()
	}

	predictions := h.services.Collaborative.TopUnrated(student.ID, count)
	services.ObserveRecommendation("collaborative")

	c.JSON(http.StatusOK, gin.H{
		"request_id":   uuid.New(),
		"student_id":   student.ID,
		"predictions":  predictions,
		"generated_at": time.Now().UTC(),
	})
}

func (h *RecommendationHandler) lookupStudent(c *gin.Context) (models.Student, bool) {
	student, ok := h.services.Student(c.Param("studentId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":    "STUDENT_NOT_FOUND",
				"message": "Unknown student ID",
			},
		})
		return models.Student{}, false
	}
	return student, true
}

// parseCount reads the optional count query parameter. An absent value
// returns 0 so the caller can apply the configured default; anything present
// must be a whole number in [1,maxResultCount].
func parseCount(c *gin.Context) (int, bool) {
	countStr := c.Query("count")
	if countStr == "" {
		return 0, true
	}

	parsed, err := strconv.Atoi(countStr)
	if err != nil || parsed < 1 || parsed > maxResultCount {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_COUNT",
				"message": fmt.Sprintf("count must be an integer between 1 and %d", maxResultCount),
			},
		})
		return 0, false
	}
	return parsed, true
}
