package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRecommendationConfig() RecommendationConfig {
	return RecommendationConfig{
		ContentWeight:       0.6,
		CollaborativeWeight: 0.4,
		CandidatePool:       20,
		DefaultTopN:         5,
		Rating:              RatingConfig{Min: 1, Max: 5, Neutral: 3.0},
	}
}

func TestRecommendationConfigValidate(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		cfg := validRecommendationConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("negative weight fails", func(t *testing.T) {
		cfg := validRecommendationConfig()
		cfg.ContentWeight = -0.2
		cfg.CollaborativeWeight = 1.2
		assert.Error(t, cfg.Validate())
	})

	t.Run("weights not summing to one fail", func(t *testing.T) {
		cfg := validRecommendationConfig()
		cfg.CollaborativeWeight = 0.3
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive default top n fails", func(t *testing.T) {
		cfg := validRecommendationConfig()
		cfg.DefaultTopN = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("candidate pool narrower than default top n fails", func(t *testing.T) {
		cfg := validRecommendationConfig()
		cfg.CandidatePool = 3
		assert.Error(t, cfg.Validate())
	})

	t.Run("rating scale reaching the unrated marker fails", func(t *testing.T) {
		// A min of 0 would make a real rating indistinguishable from an
		// unrated matrix cell, so the scale must start at 1.
		cfg := validRecommendationConfig()
		cfg.Rating = RatingConfig{Min: 0, Max: 5, Neutral: 3.0}
		assert.Error(t, cfg.Validate())

		cfg.Rating = RatingConfig{Min: -2, Max: 5, Neutral: 3.0}
		assert.Error(t, cfg.Validate())
	})

	t.Run("inverted rating bounds fail", func(t *testing.T) {
		cfg := validRecommendationConfig()
		cfg.Rating = RatingConfig{Min: 5, Max: 1, Neutral: 3.0}
		assert.Error(t, cfg.Validate())
	})

	t.Run("neutral outside the scale fails", func(t *testing.T) {
		cfg := validRecommendationConfig()
		cfg.Rating.Neutral = 7.0
		assert.Error(t, cfg.Validate())
	})
}
