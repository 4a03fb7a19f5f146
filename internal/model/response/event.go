package response

import "time"

// TrackEvent is the ingestion endpoint's reply. Exactly one of EventID, Duplicate or Error is set.
type TrackEvent struct {
	Success   bool   `json:"success"`
	EventID   int64  `json:"event_id,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Purge struct {
	Success bool      `json:"success"`
	Deleted int64     `json:"deleted"`
	Cutoff  time.Time `json:"cutoff"`
}
