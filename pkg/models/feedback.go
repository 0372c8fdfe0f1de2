package models

// Recommend flag values accepted on a rating event.
const (
	RecommendYes   = "Yes"
	RecommendNo    = "No"
	RecommendMaybe = "Maybe"
)

// RatingEvent is one piece of student feedback about a completed internship.
// Events are append-only; a correction is just a newer event for the same
// (student, internship) pair.
type RatingEvent struct {
	StudentID      string `json:"student_id" validate:"required"`
	OpportunityID  string `json:"internship_id" validate:"required"`
	Rating         int    `json:"rating" validate:"required"`
	Comment        string `json:"comment,omitempty"`
	CompletionDate string `json:"completion_date,omitempty"`
	WouldRecommend string `json:"would_recommend,omitempty" validate:"omitempty,oneof=Yes No Maybe"`
}
