package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/logger"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/payment"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleAtStationRepository
	userRepo    repository.UserRepository
	verifier    IPNVerifier
	emailSvc    EmailService
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleAtStationRepository,
	userRepo repository.UserRepository,
	verifier IPNVerifier,
	emailSvc EmailService,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		verifier:    verifier,
		emailSvc:    emailSvc,
	}
}

func (s *paymentService) HandleMomoIPN(ctx context.Context, n payment.MomoIPN) error {
	// Signature check happens before any store access.
	if err := s.verifier.VerifyIPN(n); err != nil {
		logger.SecurityEvent("momo_ipn_rejected", "order_id", n.OrderID, "remote_result_code", n.ResultCode)
		return domain.ErrInvalidSignature
	}

	p, err := s.paymentRepo.GetByReference(ctx, n.OrderID)
	if err != nil {
		return fmt.Errorf("resolving payment by reference: %w", err)
	}
	if p == nil {
		return domain.ErrPaymentNotFound
	}
	// Advisory idempotency guard; the atomic PENDING→PAID update below is
	// what actually closes the window against concurrent callbacks.
	if p.Status != domain.PaymentStatusPending {
		return domain.ErrPaymentProcessed
	}

	if n.ResultCode != 0 {
		// Conservative policy: an unsuccessful wallet result never flips the
		// payment; it stays PENDING for manual reconciliation.
		logger.Warn("Wallet reported unsuccessful payment, leaving payment pending for reconciliation",
			"payment_id", p.ID,
			"order_id", n.OrderID,
			"result_code", n.ResultCode,
			"message", n.Message)
		return nil
	}

	return s.completePayment(ctx, p.ID, strconv.FormatInt(n.TransID, 10))
}

func (s *paymentService) ConfirmCashPayment(ctx context.Context, paymentID, staffID int32) (*domain.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPaymentNotFound
	}
	if p.Method != domain.PaymentMethodCash {
		return nil, domain.ErrNotCashPayment
	}
	if p.Status != domain.PaymentStatusPending {
		return nil, domain.ErrPaymentProcessed
	}

	logger.Info("Cash payment confirmed at counter", "payment_id", paymentID, "staff_id", staffID)
	if err := s.completePayment(ctx, p.ID, p.ReferenceCode); err != nil {
		if errors.Is(err, domain.ErrNotificationFailed) {
			// The payment is final even though the email failed; the caller
			// still gets the paid record.
			if paid, ferr := s.paymentRepo.GetByID(ctx, paymentID); ferr == nil && paid != nil {
				return paid, err
			}
		}
		return nil, err
	}
	return s.paymentRepo.GetByID(ctx, paymentID)
}

// completePayment is the shared post-success pipeline: mark paid, verify the
// booking, book the vehicle, notify the renter. Each step is individually
// idempotent. A notification failure is surfaced but never rolls back the
// financial and availability state.
func (s *paymentService) completePayment(ctx context.Context, paymentID int32, transactionID string) error {
	now := time.Now()

	paid, err := s.paymentRepo.MarkPaidIfPending(ctx, paymentID, transactionID, now)
	if err != nil {
		return fmt.Errorf("marking payment paid: %w", err)
	}
	if !paid {
		return domain.ErrPaymentProcessed
	}

	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("refetching payment: %w", err)
	}

	b, err := s.bookingRepo.GetByID(ctx, p.BookingID)
	if err != nil {
		return fmt.Errorf("resolving booking: %w", err)
	}
	if b == nil {
		logger.Error("Paid payment references a missing booking", "payment_id", paymentID, "booking_id", p.BookingID)
		return domain.ErrBookingMissing
	}
	if b.Status == domain.BookingStatusCancelled {
		// The expiry job got there first. The capture stands as PAID; the
		// refund is a reconciliation action, never an automatic unwind here.
		logger.Warn("Payment captured for a cancelled booking, needs refund reconciliation",
			"payment_id", p.ID,
			"booking_id", b.ID,
			"transaction_id", transactionID,
			"amount", p.Amount)
		return domain.ErrBookingCancelled
	}

	if _, err := s.bookingRepo.UpdateStatusIf(ctx, b.ID, domain.BookingStatusPendingVerification, domain.BookingStatusVerified, ""); err != nil {
		return fmt.Errorf("verifying booking: %w", err)
	}
	if _, err := s.vehicleRepo.UpdateStatusIf(ctx, b.VehicleAtStationID, domain.VehicleStatusPending, domain.VehicleStatusBooked); err != nil {
		return fmt.Errorf("booking vehicle slot: %w", err)
	}

	logger.Info("Payment completed",
		"payment_id", p.ID,
		"booking_id", b.ID,
		"transaction_id", transactionID,
		"amount", p.Amount)

	renter, err := s.userRepo.GetByID(ctx, b.RenterID)
	if err != nil || renter == nil {
		logger.Error("Could not resolve renter for confirmation email", "booking_id", b.ID, "renter_id", b.RenterID, "error", err)
		return fmt.Errorf("%w: renter unresolvable", domain.ErrNotificationFailed)
	}
	if err := s.emailSvc.SendBookingConfirmation(ctx, renter.Email, renter.Name, b.ID, b.StartAt, b.ExpectedReturnAt, b.TotalFee, b.Currency, transactionID); err != nil {
		logger.Error("Booking confirmation email failed", "booking_id", b.ID, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}
	return nil
}
