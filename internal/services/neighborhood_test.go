package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgrid/internmatch/pkg/models"
)

func testRatingEvents() []models.RatingEvent {
	return []models.RatingEvent{
		{StudentID: "A", OpportunityID: "X", Rating: 5},
		{StudentID: "A", OpportunityID: "Y", Rating: 4},
		{StudentID: "A", OpportunityID: "Z", Rating: 5},
		{StudentID: "B", OpportunityID: "X", Rating: 5},
		{StudentID: "B", OpportunityID: "Y", Rating: 4},
	}
}

func fittedNeighborhoodScorer(t *testing.T) *NeighborhoodScorer {
	t.Helper()
	s := NewNeighborhoodScorer(testRating(), testLogger())
	require.NoError(t, s.Fit(testRatingEvents()))
	return s
}

func TestNeighborhoodScorerFit(t *testing.T) {
	t.Run("empty history is a training error", func(t *testing.T) {
		s := NewNeighborhoodScorer(testRating(), testLogger())
		err := s.Fit(nil)
		require.Error(t, err)

		var trainErr *TrainingError
		assert.True(t, errors.As(err, &trainErr))
		assert.False(t, s.Trained())
	})

	t.Run("out of range rating is a training error", func(t *testing.T) {
		s := NewNeighborhoodScorer(testRating(), testLogger())
		err := s.Fit([]models.RatingEvent{{StudentID: "A", OpportunityID: "X", Rating: 6}})
		require.Error(t, err)
	})

	t.Run("failed refit keeps the previous model serving", func(t *testing.T) {
		s := fittedNeighborhoodScorer(t)
		before := s.Predict("B", "Z")

		require.Error(t, s.Fit(nil))
		assert.True(t, s.Trained())
		assert.Equal(t, before, s.Predict("B", "Z"))
	})
}

func TestNeighborhoodScorerPredict(t *testing.T) {
	t.Run("untrained model serves the neutral rating", func(t *testing.T) {
		s := NewNeighborhoodScorer(testRating(), testLogger())
		assert.Equal(t, 3.0, s.Predict("A", "X"))
	})

	t.Run("unknown student or internship gets the neutral rating", func(t *testing.T) {
		s := fittedNeighborhoodScorer(t)
		assert.Equal(t, 3.0, s.Predict("nobody", "X"))
		assert.Equal(t, 3.0, s.Predict("A", "nothing"))
	})

	t.Run("similar students drive the prediction", func(t *testing.T) {
		// B rates exactly like A on the internships they share, so A's
		// rating of Z should carry over almost unchanged.
		s := fittedNeighborhoodScorer(t)
		assert.InDelta(t, 5.0, s.Predict("B", "Z"), 1e-6)
	})

	t.Run("predictions stay on the rating scale", func(t *testing.T) {
		s := fittedNeighborhoodScorer(t)
		for _, student := range []string{"A", "B"} {
			for _, item := range []string{"X", "Y", "Z"} {
				p := s.Predict(student, item)
				assert.GreaterOrEqual(t, p, 1.0)
				assert.LessOrEqual(t, p, 5.0)
			}
		}
	})

	t.Run("training is deterministic across event order", func(t *testing.T) {
		events := testRatingEvents()
		reversed := make([]models.RatingEvent, len(events))
		for i, ev := range events {
			reversed[len(events)-1-i] = ev
		}

		a := NewNeighborhoodScorer(testRating(), testLogger())
		b := NewNeighborhoodScorer(testRating(), testLogger())
		require.NoError(t, a.Fit(events))
		require.NoError(t, b.Fit(reversed))

		assert.Equal(t, a.Predict("B", "Z"), b.Predict("B", "Z"))
	})
}

func TestNeighborhoodScorerPredictNormalized(t *testing.T) {
	s := NewNeighborhoodScorer(testRating(), testLogger())
	assert.InDelta(t, 0.6, s.PredictNormalized("A", "X"), 1e-12)

	require.NoError(t, s.Fit(testRatingEvents()))
	n := s.PredictNormalized("B", "Z")
	assert.GreaterOrEqual(t, n, 0.0)
	assert.LessOrEqual(t, n, 1.0)
}

func TestNeighborhoodScorerTopUnrated(t *testing.T) {
	s := fittedNeighborhoodScorer(t)

	t.Run("returns only internships the student has not rated", func(t *testing.T) {
		top := s.TopUnrated("B", 5)
		require.Len(t, top, 1)
		assert.Equal(t, "Z", top[0].OpportunityID)
		assert.InDelta(t, 5.0, top[0].Rating, 1e-6)
	})

	t.Run("student who rated everything gets nothing", func(t *testing.T) {
		assert.Empty(t, s.TopUnrated("A", 5))
	})

	t.Run("unknown student gets nothing", func(t *testing.T) {
		assert.Empty(t, s.TopUnrated("nobody", 5))
	})
}

func TestNeighborhoodScorerConcurrentRefit(t *testing.T) {
	s := fittedNeighborhoodScorer(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p := s.Predict("B", "Z")
				assert.GreaterOrEqual(t, p, 1.0)
				assert.LessOrEqual(t, p, 5.0)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, s.Fit(testRatingEvents()))
	}
	wg.Wait()
}
