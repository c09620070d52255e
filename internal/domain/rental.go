package domain

import "time"

type RentalStatus string

const (
	RentalStatusReserved   RentalStatus = "RESERVED"
	RentalStatusInProgress RentalStatus = "IN_PROGRESS"
	RentalStatusCompleted  RentalStatus = "COMPLETED"
	RentalStatusLate       RentalStatus = "LATE"
	RentalStatusCancelled  RentalStatus = "CANCELLED"
)

// Rental is created only when staff approves a verified booking; booking_id
// is unique so a retried approval can never produce a second rental.
type Rental struct {
	ID               int32        `json:"id"`
	BookingID        int32        `json:"booking_id"`
	VehicleID        int32        `json:"vehicle_id"`
	PickupAt         time.Time    `json:"pickup_at"`
	ExpectedReturnAt time.Time    `json:"expected_return_at"`
	ActualPickupAt   *time.Time   `json:"actual_pickup_at,omitempty"`
	ActualReturnAt   *time.Time   `json:"actual_return_at,omitempty"`
	// Daily rate snapshot from the booking, used for late-return fees so a
	// later tariff change cannot alter what the renter owes.
	DailyRate int64        `json:"daily_rate"`
	Currency  string       `json:"currency"`
	Status    RentalStatus `json:"status"`
	CreatedOn time.Time    `json:"created_on"`
	UpdatedOn time.Time    `json:"updated_on"`
}
