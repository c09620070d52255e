package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/logger"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/utils"
)

type verificationService struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleAtStationRepository
	rentalRepo  repository.RentalRepository
	paymentRepo repository.PaymentRepository
	refundSvc   RefundService
}

func NewVerificationService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleAtStationRepository,
	rentalRepo repository.RentalRepository,
	paymentRepo repository.PaymentRepository,
	refundSvc RefundService,
) VerificationService {
	return &verificationService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		rentalRepo:  rentalRepo,
		paymentRepo: paymentRepo,
		refundSvc:   refundSvc,
	}
}

func (s *verificationService) ConfirmBooking(ctx context.Context, bookingID, staffID int32, target domain.VerificationStatus, cancelReason string) (*domain.Booking, *domain.Rental, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, domain.ErrBookingNotFound
	}

	switch target {
	case domain.VerificationApproved:
		rental, err := s.approve(ctx, b, staffID)
		if err != nil {
			return nil, nil, err
		}
		b, err = s.bookingRepo.GetByID(ctx, bookingID)
		return b, rental, err

	case domain.VerificationRejectedMismatch, domain.VerificationRejectedOther:
		if err := s.reject(ctx, b, staffID, target, cancelReason); err != nil {
			return nil, nil, err
		}
		b, err = s.bookingRepo.GetByID(ctx, bookingID)
		return b, nil, err

	case domain.VerificationPending:
		// Rare revert path: re-stamps verifier and timestamp only, no side
		// effects on the vehicle or rental.
		if err := s.bookingRepo.RestampVerification(ctx, bookingID, staffID, time.Now()); err != nil {
			return nil, nil, err
		}
		b, err = s.bookingRepo.GetByID(ctx, bookingID)
		return b, nil, err

	default:
		return nil, nil, fmt.Errorf("unknown verification target %q", target)
	}
}

func (s *verificationService) approve(ctx context.Context, b *domain.Booking, staffID int32) (*domain.Rental, error) {
	// Staff cannot approve an unpaid booking.
	if b.Status != domain.BookingStatusVerified {
		return nil, domain.ErrBookingNotPayable
	}
	if b.VerificationStatus != domain.VerificationPending {
		return nil, domain.ErrVerificationClosed
	}

	vs, err := s.vehicleRepo.GetByID(ctx, b.VehicleAtStationID)
	if err != nil {
		return nil, err
	}
	if vs == nil {
		return nil, fmt.Errorf("%w: booking %d references missing vehicle slot %d", domain.ErrBookingMissing, b.ID, b.VehicleAtStationID)
	}

	days := utils.RentalDays(b.StartAt, b.ExpectedReturnAt)
	rental := &domain.Rental{
		BookingID:        b.ID,
		VehicleID:        vs.VehicleID,
		PickupAt:         time.Now(),
		ExpectedReturnAt: b.ExpectedReturnAt,
		DailyRate:        b.RentalFee / int64(days),
		Currency:         b.Currency,
		Status:           domain.RentalStatusReserved,
	}
	// The unique booking_id constraint is the lock: a retried or concurrent
	// approval fails here instead of creating a duplicate, and the rental
	// always exists before the booking is stamped APPROVED.
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}

	decided, err := s.bookingRepo.DecideVerificationIfPending(ctx, b.ID, domain.VerificationApproved, staffID, time.Now())
	if err != nil {
		return nil, err
	}
	if !decided {
		return nil, domain.ErrVerificationClosed
	}

	logger.Info("Booking approved", "booking_id", b.ID, "staff_id", staffID, "rental_id", rental.ID)
	return rental, nil
}

func (s *verificationService) reject(ctx context.Context, b *domain.Booking, staffID int32, target domain.VerificationStatus, cancelReason string) error {
	if b.Status != domain.BookingStatusVerified {
		return domain.ErrBookingNotPayable
	}
	if b.VerificationStatus != domain.VerificationPending {
		return domain.ErrVerificationClosed
	}
	if strings.TrimSpace(cancelReason) == "" {
		return domain.ErrCancelReasonRequired
	}

	decided, err := s.bookingRepo.DecideVerificationIfPending(ctx, b.ID, target, staffID, time.Now())
	if err != nil {
		return err
	}
	if !decided {
		return domain.ErrVerificationClosed
	}

	if _, err := s.bookingRepo.UpdateStatusIf(ctx, b.ID, domain.BookingStatusVerified, domain.BookingStatusCancelled, cancelReason); err != nil {
		return fmt.Errorf("cancelling booking: %w", err)
	}

	// The slot is BOOKED by the post-success pipeline; PENDING covers a
	// booking rejected before the payment callback landed.
	released, err := s.vehicleRepo.UpdateStatusIf(ctx, b.VehicleAtStationID, domain.VehicleStatusBooked, domain.VehicleStatusAvailable)
	if err != nil {
		return fmt.Errorf("releasing vehicle slot: %w", err)
	}
	if !released {
		if _, err := s.vehicleRepo.UpdateStatusIf(ctx, b.VehicleAtStationID, domain.VehicleStatusPending, domain.VehicleStatusAvailable); err != nil {
			return fmt.Errorf("releasing vehicle slot: %w", err)
		}
	}

	// Refund execution is an external obligation; a failure here is logged
	// and reconciled out-of-band, never unwinding the rejection.
	p, err := s.paymentRepo.GetByBookingID(ctx, b.ID)
	if err != nil || p == nil {
		logger.Error("Could not resolve payment for refund on rejection", "booking_id", b.ID, "error", err)
	} else if err := s.refundSvc.RequestRefund(ctx, p, cancelReason); err != nil {
		logger.Error("Refund request failed", "booking_id", b.ID, "payment_id", p.ID, "error", err)
	}

	logger.Info("Booking rejected", "booking_id", b.ID, "staff_id", staffID, "decision", target, "reason", cancelReason)
	return nil
}
