package utils

import (
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
)

// FeeBreakdown is the server-computed cost of a requested booking window.
type FeeBreakdown struct {
	RentalDays int32
	RentalFee  int64
	DepositFee int64
	TotalFee   int64
	Currency   string
}

// RentalDays returns ceil((end-start)/24h) with a minimum of one day.
// The computation works on the instants themselves, so it is independent of
// the time zone the inputs are expressed in.
func RentalDays(start, end time.Time) int32 {
	d := end.Sub(start)
	if d <= 0 {
		return 1
	}
	days := int32(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// CalculateBookingFees validates the requested window against the
// vehicle-at-station and computes the rental, deposit and total fees from its
// currently-effective pricing. Pure: no persistence, no clock reads.
func CalculateBookingFees(vs *domain.VehicleAtStation, pricing *domain.Pricing, start, end time.Time) (*FeeBreakdown, error) {
	if !start.Before(end) {
		return nil, domain.ErrInvalidWindow
	}
	if vs.Status != domain.VehicleStatusAvailable {
		return nil, domain.ErrVehicleUnavailable
	}
	if vs.AvailableFrom != nil && start.Before(*vs.AvailableFrom) {
		return nil, domain.ErrVehicleUnavailable
	}
	if vs.AvailableTo != nil && end.After(*vs.AvailableTo) {
		return nil, domain.ErrVehicleUnavailable
	}

	days := RentalDays(start, end)
	rentalFee := pricing.PricePerDay * int64(days)
	depositFee := pricing.DepositAmount

	return &FeeBreakdown{
		RentalDays: days,
		RentalFee:  rentalFee,
		DepositFee: depositFee,
		TotalFee:   rentalFee + depositFee,
		Currency:   pricing.Currency,
	}, nil
}
