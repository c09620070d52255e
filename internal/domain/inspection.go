package domain

import "time"

type InspectionType string

const (
	InspectionTypePreRental  InspectionType = "PRE_RENTAL"
	InspectionTypePostRental InspectionType = "POST_RENTAL"
)

// Inspection records the staff walk-around at pickup or return. At most one
// inspection of each type may exist per rental.
type Inspection struct {
	ID             int32          `json:"id"`
	RentalID       int32          `json:"rental_id"`
	InspectorID    int32          `json:"inspector_id"`
	Type           InspectionType `json:"type"`
	OdometerKm     int32          `json:"odometer_km"`
	BatteryPercent int32          `json:"battery_percent"`
	Notes          string         `json:"notes"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	CreatedOn      time.Time      `json:"created_on"`
}

// Report is created only when damage is found on inspection completion.
type Report struct {
	ID           int32     `json:"id"`
	InspectionID int32     `json:"inspection_id"`
	DamageFound  bool      `json:"damage_found"`
	Notes        string    `json:"notes"`
	RepairCost   int64     `json:"repair_cost"`
	Currency     string    `json:"currency"`
	CreatedOn    time.Time `json:"created_on"`
}
