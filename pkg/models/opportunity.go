package models

// Opportunity is a single internship listing. Display attributes (company,
// location, stipend, aggregate rating) pass through the engine untouched;
// only Profile participates in scoring.
type Opportunity struct {
	ID             string  `json:"internship_id"`
	Company        string  `json:"company"`
	Domain         string  `json:"domain"`
	Role           string  `json:"role"`
	RequiredSkills string  `json:"required_skills"`
	Location       string  `json:"location"`
	DurationMonths int     `json:"duration_months"`
	Stipend        int     `json:"stipend"`
	Rating         float64 `json:"rating"`
	TotalReviews   int     `json:"total_reviews"`
	Description    string  `json:"description,omitempty"`

	// Profile is the free-text matching profile (required skills, domain
	// and role concatenated), built by the loader.
	Profile string `json:"-"`
}
