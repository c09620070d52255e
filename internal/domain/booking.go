package domain

import "time"

type BookingStatus string

const (
	BookingStatusPendingVerification BookingStatus = "PENDING_VERIFICATION"
	BookingStatusVerified            BookingStatus = "VERIFIED"
	BookingStatusCancelled           BookingStatus = "CANCELLED"
)

type VerificationStatus string

const (
	VerificationPending          VerificationStatus = "PENDING"
	VerificationApproved         VerificationStatus = "APPROVED"
	VerificationRejectedMismatch VerificationStatus = "REJECTED_MISMATCH"
	VerificationRejectedOther    VerificationStatus = "REJECTED_OTHER"
)

// Booking is a renter's reservation of a vehicle-at-station for a window.
// All fee fields are server-computed; the client's stated total is only ever
// compared for equality, never trusted.
type Booking struct {
	ID                 int32              `json:"id"`
	RenterID           int32              `json:"renter_id"`
	VehicleAtStationID int32              `json:"vehicle_at_station_id"`
	StartAt            time.Time          `json:"start_at"`
	ExpectedReturnAt   time.Time          `json:"expected_return_at"`
	RentalFee          int64              `json:"rental_fee"`
	DepositFee         int64              `json:"deposit_fee"`
	TotalFee           int64              `json:"total_fee"`
	Currency           string             `json:"currency"`
	Status             BookingStatus      `json:"status"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	VerifiedBy         *int32             `json:"verified_by,omitempty"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty"`
	CancelReason       string             `json:"cancel_reason"`
	CreatedOn          time.Time          `json:"created_on"`
	UpdatedOn          time.Time          `json:"updated_on"`
}
