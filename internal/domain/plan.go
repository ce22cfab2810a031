package domain

import "time"

// Plan is a saved trip plan. Dates are calendar dates (YYYY-MM-DD) with no zone.
type Plan struct {
	ID          string
	UserID      string
	Name        string
	Destination string
	StartDate   string
	EndDate     string
	Notes       string
	Items       []PlanItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PlanItem struct {
	Kind  ItemKind `json:"kind"`
	RefID string   `json:"refId,omitempty"`
	Title string   `json:"title"`
	Day   int      `json:"day"`
}
