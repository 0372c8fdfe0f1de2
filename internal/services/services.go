package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/talentgrid/internmatch/internal/config"
	"github.com/talentgrid/internmatch/internal/store"
	"github.com/talentgrid/internmatch/pkg/models"
)

type Services struct {
	Auth          *AuthService
	Content       *ContentScorer
	Collaborative *NeighborhoodScorer
	Ranker        *HybridRanker
	Feedback      *FeedbackService

	students map[string]models.Student
}

// New trains both scoring models from the loaded dataset and wires the
// ranking and learning services around them. An empty feedback history is a
// valid cold start: the collaborative model stays untrained and serves
// neutral defaults until the first successful retrain.
func New(cfg *config.Config, logger *logrus.Logger, data *store.Dataset, feedbackLog *store.FeedbackLog) (*Services, error) {
	content := NewContentScorer(logger)
	if err := content.Fit(data.Opportunities); err != nil {
		return nil, fmt.Errorf("train content model: %w", err)
	}

	collaborative := NewNeighborhoodScorer(cfg.Recommendation.Rating, logger)
	if len(data.Feedback) > 0 {
		if err := collaborative.Fit(data.Feedback); err != nil {
			return nil, fmt.Errorf("train collaborative model: %w", err)
		}
	} else {
		logger.Warn("No rating history loaded; collaborative model starts untrained")
	}

	ranker, err := NewHybridRanker(content, collaborative, cfg.Recommendation, logger)
	if err != nil {
		return nil, err
	}

	students := make(map[string]models.Student, len(data.Students))
	for _, s := range data.Students {
		students[s.ID] = s
	}

	return &Services{
		Auth:          NewAuthService(cfg, logger),
		Content:       content,
		Collaborative: collaborative,
		Ranker:        ranker,
		Feedback:      NewFeedbackService(cfg.Recommendation.Rating, data.Feedback, feedbackLog, logger),
		students:      students,
	}, nil
}

// Student looks up a roster entry by ID.
func (s *Services) Student(id string) (models.Student, bool) {
	st, ok := s.students[id]
	return st, ok
}

// Stats summarizes the serving state for health reporting.
func (s *Services) Stats() map[string]interface{} {
	return map[string]interface{}{
		"students":              len(s.students),
		"internships":           len(s.Content.Catalog()),
		"ratings":               len(s.Feedback.History()),
		"collaborative_trained": s.Collaborative.Trained(),
	}
}
