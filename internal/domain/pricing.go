package domain

import "time"

// Pricing is a vehicle's tariff row. The effective row for a point in time is
// the one whose effective_from <= now and effective_to is null or >= now,
// most recent effective_from winning on overlap.
type Pricing struct {
	ID            int32      `json:"id"`
	VehicleID     int32      `json:"vehicle_id"`
	PricePerDay   int64      `json:"price_per_day"`
	DepositAmount int64      `json:"deposit_amount"`
	Currency      string     `json:"currency"`
	EffectiveFrom time.Time  `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty"`
}
