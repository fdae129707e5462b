package models

// SessionSummary is the end-of-session performance report returned by the
// end operation. Duration is whole seconds between start and end.
type SessionSummary struct {
	SessionID           string   `json:"sessionId"`
	Duration            int      `json:"duration"`
	MessageCount        int      `json:"messageCount"`
	KeyMoments          []string `json:"keyMoments"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	OverallFeedback     string   `json:"overallFeedback"`
}
