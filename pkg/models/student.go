package models

// Student is a candidate looking for an internship. Records are loaded once
// per session from the student roster and are immutable afterwards.
type Student struct {
	ID                 string  `json:"student_id"`
	Name               string  `json:"name"`
	Branch             string  `json:"branch"`
	Year               int     `json:"year"`
	CGPA               float64 `json:"cgpa"`
	Skills             string  `json:"skills"`
	DomainInterest     string  `json:"domain_interest"`
	LocationPreference string  `json:"location_preference,omitempty"`
	PastInternships    string  `json:"past_internships,omitempty"`

	// Profile is the free-text matching profile (skills plus stated domain
	// interest), built by the loader and consumed by the content model.
	Profile string `json:"-"`
}
