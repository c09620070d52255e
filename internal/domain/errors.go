package domain

import "errors"

// ErrorKind classifies an error for callers: validation errors carry bad
// input, state conflicts are retryable after a refetch, security errors are
// rejected before any store access, integrity errors are fatal for the record
// involved, downstream errors may be retried or reconciled out-of-band
// without redoing the financial state change.
type ErrorKind string

const (
	KindValidation    ErrorKind = "VALIDATION"
	KindStateConflict ErrorKind = "STATE_CONFLICT"
	KindSecurity      ErrorKind = "SECURITY"
	KindIntegrity     ErrorKind = "INTEGRITY"
	KindDownstream    ErrorKind = "DOWNSTREAM"
)

// Error is a sentinel error with a stable kind and a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newErr(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf returns the classification of err, or empty if err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

var (
	// Booking orchestration
	ErrRenterNotFound = newErr(KindValidation, "renter not found")
	ErrNotARenter     = newErr(KindValidation, "user is not a renter")
	ErrKycMissing     = newErr(KindValidation, "renter has no approved identity verification")
	ErrKycExpired     = newErr(KindValidation, "renter identity verification has expired")
	ErrInvalidWindow  = newErr(KindValidation, "rental start must be before the expected return")
	ErrAmountMismatch = newErr(KindValidation, "submitted total does not match the computed total")

	ErrVehicleUnavailable = newErr(KindStateConflict, "vehicle is not available at this station for the requested window")
	ErrBookingNotFound    = newErr(KindValidation, "booking not found")
	ErrNotBookingOwner    = newErr(KindValidation, "booking does not belong to this renter")
	ErrBookingNotCancellable = newErr(KindStateConflict, "booking can no longer be cancelled by the renter")

	// Payment providers
	ErrPaymentInitFailed     = newErr(KindDownstream, "payment initiation failed")
	ErrProviderConfigMissing = newErr(KindDownstream, "payment provider configuration is incomplete")
	ErrProviderCallFailed    = newErr(KindDownstream, "payment provider call failed")

	// Webhook verification and post-success pipeline
	ErrInvalidSignature   = newErr(KindSecurity, "request rejected")
	ErrPaymentNotFound    = newErr(KindValidation, "payment not found")
	ErrNotCashPayment     = newErr(KindValidation, "payment is not a cash payment")
	ErrPaymentProcessed   = newErr(KindStateConflict, "payment has already been processed")
	ErrBookingMissing     = newErr(KindIntegrity, "payment references a booking that does not exist")
	ErrBookingCancelled   = newErr(KindStateConflict, "payment received for a cancelled booking")
	ErrNotificationFailed = newErr(KindDownstream, "booking confirmation notification failed")

	// Verification state machine
	ErrBookingNotPayable    = newErr(KindStateConflict, "booking has no confirmed payment")
	ErrVerificationClosed   = newErr(KindStateConflict, "booking verification has already been decided")
	ErrCancelReasonRequired = newErr(KindValidation, "a cancel reason is required to reject a booking")
	ErrRentalExists         = newErr(KindStateConflict, "a rental already exists for this booking")

	// Rental / inspection lifecycle
	ErrRentalNotFound     = newErr(KindValidation, "rental not found")
	ErrInvalidRentalState = newErr(KindStateConflict, "rental is not in a state that permits this inspection")
	ErrInspectionExists   = newErr(KindStateConflict, "an inspection of this type already exists for the rental")
	ErrInspectionNotFound = newErr(KindValidation, "inspection not found")
	ErrInspectionClosed   = newErr(KindStateConflict, "inspection has already been completed")
)
