package models

// CandidateStatus is the review state of an outfit candidate
type CandidateStatus string

const (
	StatusPending  CandidateStatus = "pending"
	StatusAccepted CandidateStatus = "accepted"
)

// RecommendationCriteria represents the inputs for a recommendation request
type RecommendationCriteria struct {
	Event   string `json:"event"`
	Outfit  string `json:"outfit"`
	Time    string `json:"time"`
	Gender  string `json:"gender"`
	Weather string `json:"weather"`
}

// MissingFields returns the names of criteria fields that are empty
func (c RecommendationCriteria) MissingFields() []string {
	var missing []string
	if c.Event == "" {
		missing = append(missing, "event")
	}
	if c.Outfit == "" {
		missing = append(missing, "outfit")
	}
	if c.Time == "" {
		missing = append(missing, "time")
	}
	if c.Gender == "" {
		missing = append(missing, "gender")
	}
	if c.Weather == "" {
		missing = append(missing, "weather")
	}
	return missing
}

// OutfitCandidate is one recommended outfit under review.
// Attributes is an open-ended mapping of attribute name to description
// (e.g. "Dress Type" -> "Kurta"). Status is transient review state and is
// never sent to the recommendation backend.
type OutfitCandidate struct {
	Attributes map[string]string `json:"attributes"`
	Status     CandidateStatus   `json:"status"`
}
