package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/talentgrid/internmatch/internal/config"
	"github.com/talentgrid/internmatch/internal/store"
	"github.com/talentgrid/internmatch/pkg/models"
)

// FeedbackService is the learning loop: it accepts new rating events,
// appends them to the durable history, and retrains the collaborative model
// from the full accumulated history on demand. Retraining is a simple batch
// rebuild; the catalog is small enough that correctness beats speed.
type FeedbackService struct {
	logger *logrus.Logger
	rating config.RatingConfig
	log    *store.FeedbackLog // optional durable sink

	mu      sync.Mutex
	history []models.RatingEvent
}

func NewFeedbackService(
	rating config.RatingConfig,
	history []models.RatingEvent,
	log *store.FeedbackLog,
	logger *logrus.Logger,
) *FeedbackService {
	return &FeedbackService{
		logger:  logger,
		rating:  rating,
		log:     log,
		history: append([]models.RatingEvent(nil), history...),
	}
}

// Submit validates a rating event and appends it to the history. A rejected
// event leaves the history untouched.
func (s *FeedbackService) Submit(event models.RatingEvent) error {
	if event.StudentID == "" {
		return &ValidationError{Field: "student_id", Reason: "must not be empty"}
	}
	if event.OpportunityID == "" {
		return &ValidationError{Field: "internship_id", Reason: "must not be empty"}
	}
	if event.Rating < s.rating.Min || event.Rating > s.rating.Max {
		return &ValidationError{
			Field:  "rating",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", s.rating.Min, s.rating.Max, event.Rating),
		}
	}
	switch event.WouldRecommend {
	case models.RecommendYes, models.RecommendNo, models.RecommendMaybe:
	case "":
		event.WouldRecommend = models.RecommendYes
	default:
		return &ValidationError{
			Field:  "would_recommend",
			Reason: fmt.Sprintf("must be Yes, No or Maybe, got %q", event.WouldRecommend),
		}
	}
	if event.CompletionDate == "" {
		event.CompletionDate = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", event.CompletionDate); err != nil {
		return &ValidationError{Field: "completion_date", Reason: "must be an ISO date (YYYY-MM-DD)"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.log != nil {
		if err := s.log.Append(event); err != nil {
			return fmt.Errorf("persist feedback: %w", err)
		}
	}
	s.history = append(s.history, event)

	s.logger.WithFields(logrus.Fields{
		"student_id":    event.StudentID,
		"internship_id": event.OpportunityID,
		"rating":        event.Rating,
	}).Info("Feedback recorded")

	return nil
}

// Retrain rebuilds the collaborative model from the full history. On failure
// the scorer keeps serving its previous model.
func (s *FeedbackService) Retrain(scorer *NeighborhoodScorer) error {
	snapshot := s.History()

	if err := scorer.Fit(snapshot); err != nil {
		return err
	}

	s.logger.WithField("ratings", len(snapshot)).Info("Collaborative model retrained from feedback history")
	return nil
}

// History returns a copy of the accumulated rating events.
func (s *FeedbackService) History() []models.RatingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.RatingEvent(nil), s.history...)
}

// AverageRating aggregates recorded ratings for one internship. A zero count
// means no feedback yet.
func (s *FeedbackService) AverageRating(opportunityID string) (float64, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum, count int
	for _, ev := range s.history {
		if ev.OpportunityID == opportunityID {
			sum += ev.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count), count
}

// ByStudent returns all feedback one student has submitted.
func (s *FeedbackService) ByStudent(studentID string) []models.RatingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.RatingEvent
	for _, ev := range s.history {
		if ev.StudentID == studentID {
			out = append(out, ev)
		}
	}
	return out
}

// ByOpportunity returns all feedback recorded for one internship.
func (s *FeedbackService) ByOpportunity(opportunityID string) []models.RatingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.RatingEvent
	for _, ev := range s.history {
		if ev.OpportunityID == opportunityID {
			out = append(out, ev)
		}
	}
	return out
}
