package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoredOpportunity is one entry of a ranking result. ContentScore and
// CollaborativeScore are both in [0,1]; HybridScore is their weighted
// combination and defines the result order.
type ScoredOpportunity struct {
	Opportunity        Opportunity `json:"opportunity"`
	ContentScore       float64     `json:"content_score"`
	CollaborativeScore float64     `json:"collaborative_score"`
	HybridScore        float64     `json:"hybrid_score"`
	Position           int         `json:"position"`
}

type RecommendationResponse struct {
	RequestID       uuid.UUID           `json:"request_id"`
	StudentID       string              `json:"student_id"`
	Recommendations []ScoredOpportunity `json:"recommendations"`
	GeneratedAt     time.Time           `json:"generated_at"`
}

// PredictedRating is a collaborative-only prediction for an internship the
// student has not rated yet. Rating is on the configured 1-5 scale.
type PredictedRating struct {
	OpportunityID string  `json:"internship_id"`
	Rating        float64 `json:"predicted_rating"`
}

type OpportunityRating struct {
	OpportunityID string  `json:"internship_id"`
	AverageRating float64 `json:"average_rating"`
	Count         int     `json:"count"`
}
