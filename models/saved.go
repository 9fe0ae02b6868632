package models

import "time"

// SavedPlan is a snapshot of a plan the user chose to keep, plus whatever
// metadata the client attached when saving.
type SavedPlan struct {
	ID      string            `json:"id"`
	SavedAt time.Time         `json:"saved_at"`
	Plan    TravelPlan        `json:"plan"`
	Meta    map[string]string `json:"meta,omitempty"`
}
