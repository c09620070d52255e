package service

import (
	"context"
	"fmt"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/logger"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/payment"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/utils"
)

type bookingService struct {
	userRepo    repository.UserRepository
	kycRepo     repository.KycRepository
	pricingRepo repository.PricingRepository
	vehicleRepo repository.VehicleAtStationRepository
	bookingRepo repository.BookingRepository
	feeRepo     repository.FeeRepository
	paymentRepo repository.PaymentRepository
	providers   map[domain.PaymentMethod]payment.Provider
	kycValidity time.Duration
}

func NewBookingService(
	userRepo repository.UserRepository,
	kycRepo repository.KycRepository,
	pricingRepo repository.PricingRepository,
	vehicleRepo repository.VehicleAtStationRepository,
	bookingRepo repository.BookingRepository,
	feeRepo repository.FeeRepository,
	paymentRepo repository.PaymentRepository,
	providers []payment.Provider,
	kycValidity time.Duration,
) BookingService {
	byMethod := make(map[domain.PaymentMethod]payment.Provider, len(providers))
	for _, p := range providers {
		byMethod[p.Method()] = p
	}
	return &bookingService{
		userRepo:    userRepo,
		kycRepo:     kycRepo,
		pricingRepo: pricingRepo,
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		feeRepo:     feeRepo,
		paymentRepo: paymentRepo,
		providers:   byMethod,
		kycValidity: kycValidity,
	}
}

// CreateBooking persists nothing until the provider has initiated the
// payment, and persists the vehicle flip last, so the worst partial-failure
// outcome is an orphaned PENDING booking with no hold on the vehicle. The
// reconciliation job garbage-collects those.
func (s *bookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	now := time.Now()

	renter, err := s.userRepo.GetByID(ctx, req.RenterID)
	if err != nil {
		return nil, fmt.Errorf("resolving renter: %w", err)
	}
	if renter == nil {
		return nil, domain.ErrRenterNotFound
	}
	if renter.Role != domain.RoleRenter {
		return nil, domain.ErrNotARenter
	}

	kyc, err := s.kycRepo.GetLatestApprovedByRenter(ctx, req.RenterID)
	if err != nil {
		return nil, fmt.Errorf("resolving kyc: %w", err)
	}
	if kyc == nil || kyc.VerifiedAt == nil {
		return nil, domain.ErrKycMissing
	}
	if now.Sub(*kyc.VerifiedAt) > s.kycValidity {
		return nil, domain.ErrKycExpired
	}

	vs, err := s.vehicleRepo.GetByID(ctx, req.VehicleAtStationID)
	if err != nil {
		return nil, fmt.Errorf("resolving vehicle at station: %w", err)
	}
	if vs == nil {
		return nil, domain.ErrVehicleUnavailable
	}
	pricing, err := s.pricingRepo.GetEffectiveForVehicle(ctx, vs.VehicleID, now)
	if err != nil {
		return nil, fmt.Errorf("resolving pricing: %w", err)
	}
	if pricing == nil {
		// A vehicle with no effective tariff cannot be offered.
		return nil, domain.ErrVehicleUnavailable
	}

	fees, err := utils.CalculateBookingFees(vs, pricing, req.StartAt, req.ExpectedReturnAt)
	if err != nil {
		return nil, err
	}
	if fees.TotalFee != req.StatedTotal {
		return nil, domain.ErrAmountMismatch
	}

	provider, ok := s.providers[req.Method]
	if !ok {
		return nil, fmt.Errorf("%w: no provider for method %s", domain.ErrPaymentInitFailed, req.Method)
	}
	init, err := provider.Initiate(ctx, payment.InitiationRequest{
		Amount:    fees.TotalFee,
		Currency:  fees.Currency,
		OrderInfo: fmt.Sprintf("EV rental booking for renter %d", req.RenterID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentInitFailed, err)
	}
	if init.ReferenceCode == "" {
		return nil, domain.ErrPaymentInitFailed
	}

	// Cash is collected at the counter, so there is no online confirmation to
	// wait for before the booking counts as verified.
	status := domain.BookingStatusPendingVerification
	if req.Method == domain.PaymentMethodCash {
		status = domain.BookingStatusVerified
	}

	booking := &domain.Booking{
		RenterID:           req.RenterID,
		VehicleAtStationID: vs.ID,
		StartAt:            req.StartAt,
		ExpectedReturnAt:   req.ExpectedReturnAt,
		RentalFee:          fees.RentalFee,
		DepositFee:         fees.DepositFee,
		TotalFee:           fees.TotalFee,
		Currency:           fees.Currency,
		Status:             status,
		VerificationStatus: domain.VerificationPending,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	for _, fee := range []domain.Fee{
		{BookingID: booking.ID, Type: domain.FeeTypeRental, Amount: fees.RentalFee, Currency: fees.Currency},
		{BookingID: booking.ID, Type: domain.FeeTypeDeposit, Amount: fees.DepositFee, Currency: fees.Currency},
	} {
		f := fee
		if err := s.feeRepo.Create(ctx, &f); err != nil {
			return nil, fmt.Errorf("creating %s row: %w", f.Type, err)
		}
	}

	pay := &domain.Payment{
		BookingID:     booking.ID,
		Method:        req.Method,
		Status:        domain.PaymentStatusPending,
		Amount:        fees.TotalFee,
		Currency:      fees.Currency,
		ReferenceCode: init.ReferenceCode,
	}
	if err := s.paymentRepo.Create(ctx, pay); err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}

	// The atomic flip is the authoritative availability check; the earlier
	// status read was only advisory.
	flipped, err := s.vehicleRepo.UpdateStatusIf(ctx, vs.ID, domain.VehicleStatusAvailable, domain.VehicleStatusPending)
	if err != nil {
		return nil, fmt.Errorf("holding vehicle slot: %w", err)
	}
	if !flipped {
		// Lost the slot to a concurrent booking. Best-effort cancel; the
		// reconciliation job picks up whatever this misses.
		if _, cerr := s.bookingRepo.UpdateStatusIf(ctx, booking.ID, status, domain.BookingStatusCancelled, "vehicle slot taken by a concurrent booking"); cerr != nil {
			logger.Warn("Failed to cancel booking after losing vehicle slot", "booking_id", booking.ID, "error", cerr)
		}
		return nil, domain.ErrVehicleUnavailable
	}

	logger.Info("Booking created",
		"booking_id", booking.ID,
		"renter_id", req.RenterID,
		"vehicle_at_station_id", vs.ID,
		"method", req.Method,
		"total_fee", fees.TotalFee)

	return &CreateBookingResult{
		Booking:      booking,
		Payment:      pay,
		PayURL:       init.PayURL,
		Instructions: init.Instructions,
	}, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, renterID int32, reason string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBookingNotFound
	}
	if b.RenterID != renterID {
		return nil, domain.ErrNotBookingOwner
	}

	p, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if p != nil && p.Status != domain.PaymentStatusPending {
		return nil, domain.ErrBookingNotCancellable
	}

	ok, err := s.bookingRepo.UpdateStatusIf(ctx, bookingID, domain.BookingStatusPendingVerification, domain.BookingStatusCancelled, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrBookingNotCancellable
	}

	if _, err := s.vehicleRepo.UpdateStatusIf(ctx, b.VehicleAtStationID, domain.VehicleStatusPending, domain.VehicleStatusAvailable); err != nil {
		logger.Warn("Failed to release vehicle slot on renter cancellation", "booking_id", bookingID, "error", err)
	}

	logger.Info("Booking cancelled by renter", "booking_id", bookingID, "renter_id", renterID)
	return s.bookingRepo.GetByID(ctx, bookingID)
}
