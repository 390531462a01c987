package v1

import "time"

// InsightsRequest optionally replaces the default analysis question.
type InsightsRequest struct {
	Prompt string `json:"prompt"`
}

// InsightsResponse carries generated commentary for a dataset.
type InsightsResponse struct {
	DatasetID   string    `json:"dataset_id"`
	Model       string    `json:"model,omitempty"`
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
}
