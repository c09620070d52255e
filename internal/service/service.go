package service

import (
	"context"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/payment"
)

// CreateBookingRequest carries the renter's booking intent. StatedTotal is
// the total the client displayed to the renter; the server recomputes fees
// and rejects on any mismatch.
type CreateBookingRequest struct {
	RenterID           int32
	VehicleAtStationID int32
	StartAt            time.Time
	ExpectedReturnAt   time.Time
	Method             domain.PaymentMethod
	StatedTotal        int64
}

// CreateBookingResult returns the persisted records plus whatever the
// provider handed back to continue the payment.
type CreateBookingResult struct {
	Booking      *domain.Booking
	Payment      *domain.Payment
	PayURL       string
	Instructions string
}

type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error)
	// CancelBooking lets the renter back out while the booking is still
	// unpaid; the vehicle slot is released.
	CancelBooking(ctx context.Context, bookingID, renterID int32, reason string) (*domain.Booking, error)
}

type PaymentService interface {
	// HandleMomoIPN processes a wallet callback: signature first, then
	// idempotency, then the post-success pipeline on result code 0.
	HandleMomoIPN(ctx context.Context, n payment.MomoIPN) error
	// ConfirmCashPayment is the staff counter confirmation; it drives the
	// same post-success pipeline as a wallet callback.
	ConfirmCashPayment(ctx context.Context, paymentID, staffID int32) (*domain.Payment, error)
}

type VerificationService interface {
	// ConfirmBooking moves a paid booking to APPROVED (creating the rental)
	// or REJECTED_* (cancelling it and releasing the vehicle). Once decided
	// the verification is terminal.
	ConfirmBooking(ctx context.Context, bookingID, staffID int32, target domain.VerificationStatus, cancelReason string) (*domain.Booking, *domain.Rental, error)
}

type RentalService interface {
	CreateInspection(ctx context.Context, rentalID, inspectorID int32, t domain.InspectionType, odometerKm, batteryPercent int32, notes string) (*domain.Inspection, error)
	// CompleteInspection finishes the walk-around, files a damage report when
	// damage was found, and drives the rental status transition.
	CompleteInspection(ctx context.Context, inspectionID int32, damageFound bool, damageNotes string, repairCost int64) (*domain.Inspection, *domain.Report, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, renterName string, bookingID int32, startAt, returnAt time.Time, totalFee int64, currency, transactionCode string) error
}

// RefundService is the external refund collaborator invoked when staff
// rejects a paid booking. Refund execution itself is outside this system.
type RefundService interface {
	RequestRefund(ctx context.Context, p *domain.Payment, reason string) error
}

// IPNVerifier is the signature check for wallet callbacks, implemented by
// payment.MomoProvider.
type IPNVerifier interface {
	VerifyIPN(n payment.MomoIPN) error
}
