package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgrid/internmatch/internal/store"
	"github.com/talentgrid/internmatch/pkg/models"
)

func newFeedbackService(t *testing.T, history []models.RatingEvent) *FeedbackService {
	t.Helper()
	return NewFeedbackService(testRating(), history, nil, testLogger())
}

func validEvent() models.RatingEvent {
	return models.RatingEvent{
		StudentID:      "S001",
		OpportunityID:  "I001",
		Rating:         4,
		Comment:        "solid experience",
		CompletionDate: "2026-05-30",
		WouldRecommend: models.RecommendYes,
	}
}

func TestFeedbackServiceSubmit(t *testing.T) {
	t.Run("valid event is appended to history", func(t *testing.T) {
		svc := newFeedbackService(t, nil)
		require.NoError(t, svc.Submit(validEvent()))
		assert.Len(t, svc.History(), 1)
	})

	t.Run("out of range rating is rejected and history untouched", func(t *testing.T) {
		svc := newFeedbackService(t, nil)

		ev := validEvent()
		ev.Rating = 6
		err := svc.Submit(ev)
		require.Error(t, err)

		var valErr *ValidationError
		assert.True(t, errors.As(err, &valErr))
		assert.Equal(t, "rating", valErr.Field)
		assert.Empty(t, svc.History())
	})

	t.Run("missing ids are rejected", func(t *testing.T) {
		svc := newFeedbackService(t, nil)

		ev := validEvent()
		ev.StudentID = ""
		assert.Error(t, svc.Submit(ev))

		ev = validEvent()
		ev.OpportunityID = ""
		assert.Error(t, svc.Submit(ev))
	})

	t.Run("empty recommend flag defaults to yes", func(t *testing.T) {
		svc := newFeedbackService(t, nil)

		ev := validEvent()
		ev.WouldRecommend = ""
		require.NoError(t, svc.Submit(ev))
		assert.Equal(t, models.RecommendYes, svc.History()[0].WouldRecommend)
	})

	t.Run("unknown recommend flag is rejected", func(t *testing.T) {
		svc := newFeedbackService(t, nil)

		ev := validEvent()
		ev.WouldRecommend = "Absolutely"
		assert.Error(t, svc.Submit(ev))
	})

	t.Run("empty completion date defaults to today", func(t *testing.T) {
		svc := newFeedbackService(t, nil)

		ev := validEvent()
		ev.CompletionDate = ""
		require.NoError(t, svc.Submit(ev))
		assert.NotEmpty(t, svc.History()[0].CompletionDate)
	})

	t.Run("malformed completion date is rejected", func(t *testing.T) {
		svc := newFeedbackService(t, nil)

		ev := validEvent()
		ev.CompletionDate = "30/05/2026"
		assert.Error(t, svc.Submit(ev))
	})

	t.Run("accepted events reach the durable log", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feedback.csv")
		log, err := store.OpenFeedbackLog(path)
		require.NoError(t, err)

		svc := NewFeedbackService(testRating(), nil, log, testLogger())
		require.NoError(t, svc.Submit(validEvent()))

		loaded, err := store.LoadFeedback(path, testRating(), testLogger())
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "S001", loaded[0].StudentID)
		assert.Equal(t, 4, loaded[0].Rating)
	})
}

func TestFeedbackServiceRetrain(t *testing.T) {
	t.Run("empty history is a training error", func(t *testing.T) {
		svc := newFeedbackService(t, nil)
		scorer := NewNeighborhoodScorer(testRating(), testLogger())

		err := svc.Retrain(scorer)
		require.Error(t, err)

		var trainErr *TrainingError
		assert.True(t, errors.As(err, &trainErr))
		assert.False(t, scorer.Trained())
	})

	t.Run("new feedback changes served predictions", func(t *testing.T) {
		svc := newFeedbackService(t, testRatingEvents())
		scorer := NewNeighborhoodScorer(testRating(), testLogger())
		require.NoError(t, svc.Retrain(scorer))
		assert.InDelta(t, 5.0, scorer.Predict("B", "Z"), 1e-6)

		// A new student becomes predictable after a retrain. B never rated
		// Z, so B's high similarity to C pulls the weighted average below
		// A's rating of 5.
		require.NoError(t, svc.Submit(models.RatingEvent{StudentID: "C", OpportunityID: "X", Rating: 5}))
		require.NoError(t, svc.Submit(models.RatingEvent{StudentID: "C", OpportunityID: "Y", Rating: 4}))
		require.NoError(t, svc.Retrain(scorer))

		p := scorer.Predict("C", "Z")
		assert.Greater(t, p, 1.0)
		assert.Less(t, p, 5.0)
		assert.NotEqual(t, 3.0, p)
	})
}

func TestFeedbackServiceAggregations(t *testing.T) {
	svc := newFeedbackService(t, []models.RatingEvent{
		{StudentID: "A", OpportunityID: "X", Rating: 5},
		{StudentID: "B", OpportunityID: "X", Rating: 3},
		{StudentID: "A", OpportunityID: "Y", Rating: 4},
	})

	t.Run("average rating", func(t *testing.T) {
		avg, count := svc.AverageRating("X")
		assert.Equal(t, 4.0, avg)
		assert.Equal(t, 2, count)

		avg, count = svc.AverageRating("unknown")
		assert.Zero(t, avg)
		assert.Zero(t, count)
	})

	t.Run("by student", func(t *testing.T) {
		assert.Len(t, svc.ByStudent("A"), 2)
		assert.Empty(t, svc.ByStudent("nobody"))
	})

	t.Run("by opportunity", func(t *testing.T) {
		assert.Len(t, svc.ByOpportunity("Y"), 1)
	})

	t.Run("history returns a copy", func(t *testing.T) {
		h := svc.History()
		h[0].Rating = 1
		assert.Equal(t, 5, svc.History()[0].Rating)
	})
}
