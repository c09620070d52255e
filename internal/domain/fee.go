package domain

import "time"

type FeeType string

const (
	FeeTypeRental        FeeType = "RENTAL_FEE"
	FeeTypeDeposit       FeeType = "DEPOSIT_FEE"
	FeeTypeTotalBooking  FeeType = "TOTAL_BOOKING_FEE"
	FeeTypeOverDeposit   FeeType = "OVER_DEPOSIT_FEE"
	FeeTypeLateReturn    FeeType = "LATE_RETURN_FEE"
	FeeTypeExcessMileage FeeType = "EXCESS_MILEAGE_FEE"
	FeeTypeOther         FeeType = "OTHER"
)

// Fee is an immutable line item. Corrections are new rows, never edits.
type Fee struct {
	ID        int32     `json:"id"`
	BookingID int32     `json:"booking_id"`
	Type      FeeType   `json:"type"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	CreatedOn time.Time `json:"created_on"`
}
