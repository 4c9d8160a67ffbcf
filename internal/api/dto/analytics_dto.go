package dto

// AnalyticsEventRequest is the public ingest payload.
type AnalyticsEventRequest struct {
	Type     string         `json:"type"`
	Path     string         `json:"path"`
	Referrer string         `json:"referrer"`
	Meta     map[string]any `json:"meta"`
}
