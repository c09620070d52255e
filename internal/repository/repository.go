package repository

import (
	"context"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}

type KycRepository interface {
	// GetLatestApprovedByRenter returns the renter's most recently verified
	// APPROVED record, or nil when none exists.
	GetLatestApprovedByRenter(ctx context.Context, renterID int32) (*domain.KycRecord, error)
}

type PricingRepository interface {
	// GetEffectiveForVehicle returns the pricing row effective at the given
	// instant; most recent effective_from wins on overlap.
	GetEffectiveForVehicle(ctx context.Context, vehicleID int32, at time.Time) (*domain.Pricing, error)
}

type VehicleAtStationRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.VehicleAtStation, error)
	// UpdateStatusIf flips the status only when the current status matches
	// from, as a single atomic update. Returns false when the guard failed.
	UpdateStatusIf(ctx context.Context, id int32, from, to domain.VehicleAtStationStatus) (bool, error)
	UpdateReadings(ctx context.Context, id, odometerKm, batteryPercent int32) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// UpdateStatusIf flips booking status under a current-status guard,
	// optionally recording a cancel reason. Returns false when the guard failed.
	UpdateStatusIf(ctx context.Context, id int32, from, to domain.BookingStatus, cancelReason string) (bool, error)
	// DecideVerificationIfPending stamps the verification decision and
	// verifier only while verification is still PENDING. Returns false when
	// the decision was already taken.
	DecideVerificationIfPending(ctx context.Context, id int32, decision domain.VerificationStatus, staffID int32, decidedAt time.Time) (bool, error)
	// RestampVerification re-stamps verifier and timestamp without changing
	// the decision; used for the rare revert-to-PENDING path.
	RestampVerification(ctx context.Context, id int32, staffID int32, decidedAt time.Time) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	GetByReference(ctx context.Context, referenceCode string) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.Payment, error)
	// MarkPaidIfPending performs the PENDING→PAID transition as one atomic
	// conditional update, recording the provider transaction id. Returns
	// false when the payment was no longer PENDING.
	MarkPaidIfPending(ctx context.Context, id int32, transactionID string, paidAt time.Time) (bool, error)
}

type FeeRepository interface {
	Create(ctx context.Context, f *domain.Fee) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.Fee, error)
}

type RentalRepository interface {
	// Create inserts the rental; the unique constraint on booking_id maps to
	// domain.ErrRentalExists.
	Create(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.Rental, error)
	// UpdateStatusIf flips rental status under a current-status guard and
	// stamps the matching actual pickup/return time when provided.
	UpdateStatusIf(ctx context.Context, id int32, from, to domain.RentalStatus, at *time.Time) (bool, error)
}

type InspectionRepository interface {
	// Create inserts the inspection; the unique (rental_id, type) constraint
	// maps to domain.ErrInspectionExists.
	Create(ctx context.Context, i *domain.Inspection) error
	GetByID(ctx context.Context, id int32) (*domain.Inspection, error)
	GetByRentalAndType(ctx context.Context, rentalID int32, t domain.InspectionType) (*domain.Inspection, error)
	// CompleteIf stamps completed_at only while the inspection is still open.
	CompleteIf(ctx context.Context, id int32, completedAt time.Time) (bool, error)
}

type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
}
