package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/payment"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockKycRepo
type MockKycRepo struct {
	mock.Mock
}

func (m *MockKycRepo) GetLatestApprovedByRenter(ctx context.Context, renterID int32) (*domain.KycRecord, error) {
	args := m.Called(ctx, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KycRecord), args.Error(1)
}

// MockPricingRepo
type MockPricingRepo struct {
	mock.Mock
}

func (m *MockPricingRepo) GetEffectiveForVehicle(ctx context.Context, vehicleID int32, at time.Time) (*domain.Pricing, error) {
	args := m.Called(ctx, vehicleID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pricing), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.VehicleAtStation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleAtStation), args.Error(1)
}
func (m *MockVehicleRepo) UpdateStatusIf(ctx context.Context, id int32, from, to domain.VehicleAtStationStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockVehicleRepo) UpdateReadings(ctx context.Context, id, odometerKm, batteryPercent int32) error {
	args := m.Called(ctx, id, odometerKm, batteryPercent)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatusIf(ctx context.Context, id int32, from, to domain.BookingStatus, cancelReason string) (bool, error) {
	args := m.Called(ctx, id, from, to, cancelReason)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) DecideVerificationIfPending(ctx context.Context, id int32, decision domain.VerificationStatus, staffID int32, decidedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, decision, staffID, decidedAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) RestampVerification(ctx context.Context, id int32, staffID int32, decidedAt time.Time) error {
	args := m.Called(ctx, id, staffID, decidedAt)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) GetByReference(ctx context.Context, referenceCode string) (*domain.Payment, error) {
	args := m.Called(ctx, referenceCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) MarkPaidIfPending(ctx context.Context, id int32, transactionID string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, id, transactionID, paidAt)
	return args.Bool(0), args.Error(1)
}

// MockFeeRepo
type MockFeeRepo struct {
	mock.Mock
}

func (m *MockFeeRepo) Create(ctx context.Context, f *domain.Fee) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *MockFeeRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Fee, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Fee), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Rental, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) UpdateStatusIf(ctx context.Context, id int32, from, to domain.RentalStatus, at *time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, at)
	return args.Bool(0), args.Error(1)
}

// MockInspectionRepo
type MockInspectionRepo struct {
	mock.Mock
}

func (m *MockInspectionRepo) Create(ctx context.Context, i *domain.Inspection) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}
func (m *MockInspectionRepo) GetByID(ctx context.Context, id int32) (*domain.Inspection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}
func (m *MockInspectionRepo) GetByRentalAndType(ctx context.Context, rentalID int32, t domain.InspectionType) (*domain.Inspection, error) {
	args := m.Called(ctx, rentalID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inspection), args.Error(1)
}
func (m *MockInspectionRepo) CompleteIf(ctx context.Context, id int32, completedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, completedAt)
	return args.Bool(0), args.Error(1)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Create(ctx context.Context, r *domain.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, email, renterName string, bookingID int32, startAt, returnAt time.Time, totalFee int64, currency, transactionCode string) error {
	args := m.Called(ctx, email, renterName, bookingID, startAt, returnAt, totalFee, currency, transactionCode)
	return args.Error(0)
}

// MockRefundService
type MockRefundService struct {
	mock.Mock
}

func (m *MockRefundService) RequestRefund(ctx context.Context, p *domain.Payment, reason string) error {
	args := m.Called(ctx, p, reason)
	return args.Error(0)
}

// MockIPNVerifier
type MockIPNVerifier struct {
	mock.Mock
}

func (m *MockIPNVerifier) VerifyIPN(n payment.MomoIPN) error {
	args := m.Called(n)
	return args.Error(0)
}

// MockProvider
type MockProvider struct {
	mock.Mock
	method domain.PaymentMethod
}

func (m *MockProvider) Initiate(ctx context.Context, req payment.InitiationRequest) (*payment.InitiationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.InitiationResult), args.Error(1)
}
func (m *MockProvider) Method() domain.PaymentMethod {
	return m.method
}
