package models

import (
	"fmt"
	"time"
)

// ItemStatus is the custody state of a lost-item report.
type ItemStatus string

const (
	StatusPending     ItemStatus = "Pending"
	StatusMatched     ItemStatus = "Matched"
	StatusReturned    ItemStatus = "Returned"
	StatusTransferred ItemStatus = "Transferred to NUPD"
)

// Valid reports whether the status is one of the four defined states.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusPending, StatusMatched, StatusReturned, StatusTransferred:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s ItemStatus) Terminal() bool {
	return s == StatusReturned || s == StatusTransferred
}

// statusTransitions is the item lifecycle: a supervisor matches a pending
// report, a matched item is handed back, and any non-terminal item can be
// escalated to campus police custody.
var statusTransitions = map[ItemStatus][]ItemStatus{
	StatusPending: {StatusMatched, StatusTransferred},
	StatusMatched: {StatusReturned, StatusTransferred},
}

// CanTransition reports whether from → to is an allowed lifecycle step.
func CanTransition(from, to ItemStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// LostItem is a student-submitted lost-item report. SubmittedBy is the
// reporter's email, denormalized on purpose; there is no foreign key to users.
type LostItem struct {
	ID           string     `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Description  string     `db:"description" json:"description"`
	Category     string     `db:"category" json:"category"`
	LocationName string     `db:"location_name" json:"locationName"`
	Longitude    *float64   `db:"longitude" json:"-"`
	Latitude     *float64   `db:"latitude" json:"-"`
	ImageURL     string     `db:"image_url" json:"imageUrl"`
	Status       ItemStatus `db:"status" json:"status"`
	SubmittedBy  string     `db:"submitted_by" json:"submittedBy"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`

	// Coordinates mirrors the longitude/latitude columns as the wire-level
	// [lng, lat] pair. Populated after load, never scanned directly.
	Coordinates []float64 `db:"-" json:"coordinates,omitempty"`

	// IsInSupervisorLocation is set only on supervisor-scoped listings.
	IsInSupervisorLocation *bool `db:"-" json:"isInSupervisorLocation,omitempty"`
}

// SyncCoordinates fills the wire-level pair from the stored columns.
func (i *LostItem) SyncCoordinates() {
	if i.Longitude != nil && i.Latitude != nil {
		i.Coordinates = []float64{*i.Longitude, *i.Latitude}
	}
}

// ValidateCoordinates rejects pairs of wrong arity or outside the valid
// longitude/latitude ranges. The pair is [lng, lat].
func ValidateCoordinates(coords []float64) error {
	if len(coords) != 2 {
		return fmt.Errorf("coordinates must be a [longitude, latitude] pair, got %d values", len(coords))
	}
	if coords[0] < -180 || coords[0] > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", coords[0])
	}
	if coords[1] < -90 || coords[1] > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", coords[1])
	}
	return nil
}
