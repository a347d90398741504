package models

// FeedbackVerdict is the user's decision on a recommended outfit
type FeedbackVerdict string

const (
	FeedbackAccepted FeedbackVerdict = "accepted"
	FeedbackRejected FeedbackVerdict = "rejected"
)

// FeedbackRequest is the body of POST /feedback
type FeedbackRequest struct {
	Outfit   map[string]string `json:"outfit"`
	Feedback FeedbackVerdict   `json:"feedback"`
}

// OutfitFeedback is a stored feedback record
type OutfitFeedback struct {
	ID        int64             `json:"id"`
	Outfit    map[string]string `json:"outfit"`
	Feedback  FeedbackVerdict   `json:"feedback"`
	CreatedAt string            `json:"createdAt"`
}
