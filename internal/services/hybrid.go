package services

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/talentgrid/internmatch/internal/config"
	"github.com/talentgrid/internmatch/pkg/models"
)

// HybridRanker fuses content similarity with collaborative predictions into
// one ranked list. It borrows both trained scorers read-only; a ranking
// request never mutates shared state.
type HybridRanker struct {
	logger        *logrus.Logger
	content       *ContentScorer
	collaborative *NeighborhoodScorer
	cfg           config.RecommendationConfig
}

func NewHybridRanker(
	content *ContentScorer,
	collaborative *NeighborhoodScorer,
	cfg config.RecommendationConfig,
	logger *logrus.Logger,
) (*HybridRanker, error) {
	if cfg.ContentWeight < 0 || cfg.CollaborativeWeight < 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf(
			"fusion weights must be non-negative, got %.2f/%.2f",
			cfg.ContentWeight, cfg.CollaborativeWeight)}
	}
	if sum := cfg.ContentWeight + cfg.CollaborativeWeight; sum < 0.999 || sum > 1.001 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf(
			"fusion weights must sum to 1.0, got %.3f", sum)}
	}
	if cfg.CandidatePool <= 0 {
		return nil, &ConfigurationError{Reason: "candidate pool must be positive"}
	}

	return &HybridRanker{
		logger:        logger,
		content:       content,
		collaborative: collaborative,
		cfg:           cfg,
	}, nil
}

// DefaultTopN reports the configured result count served when a request does
// not name one.
func (r *HybridRanker) DefaultTopN() int {
	return r.cfg.DefaultTopN
}

// Recommend ranks the catalog for one student. The content model picks a
// candidate pool wider than topN, the collaborative model re-scores the pool,
// and the weighted combination decides the final order. Ties fall back to
// content score, then to catalog order.
func (r *HybridRanker) Recommend(studentID, profile string, topN int) []models.ScoredOpportunity {
	if topN <= 0 {
		topN = r.cfg.DefaultTopN
	}
	pool := r.cfg.CandidatePool
	if pool < topN {
		pool = topN
	}

	candidates := r.content.TopN(profile, pool)
	catalog := r.content.Catalog()

	scored := make([]models.ScoredOpportunity, 0, len(candidates))
	for _, c := range candidates {
		collab := r.collaborative.PredictNormalized(studentID, c.OpportunityID)
		scored = append(scored, models.ScoredOpportunity{
			Opportunity:        catalog[c.Index],
			ContentScore:       c.Score,
			CollaborativeScore: collab,
			HybridScore:        r.fuse(c.Score, collab),
		})
	}

	// Candidates arrive in content order with catalog order breaking content
	// ties, so a stable sort here completes the full tie-break chain.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].HybridScore != scored[j].HybridScore {
			return scored[i].HybridScore > scored[j].HybridScore
		}
		return scored[i].ContentScore > scored[j].ContentScore
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	for i := range scored {
		scored[i].Position = i + 1
	}

	r.logger.WithFields(logrus.Fields{
		"student_id": studentID,
		"candidates": len(candidates),
		"returned":   len(scored),
	}).Debug("Hybrid ranking computed")

	return scored
}

func (r *HybridRanker) fuse(contentScore, collaborativeScore float64) float64 {
	return r.cfg.ContentWeight*contentScore + r.cfg.CollaborativeWeight*collaborativeScore
}
