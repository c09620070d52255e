package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
)

func TestRentalDays(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int32
	}{
		{"Exact One Day", base.Add(24 * time.Hour), 1},
		{"Partial Day Rounds Up", base.Add(25 * time.Hour), 2},
		{"Exact Two Days", base.Add(48 * time.Hour), 2},
		{"Under A Day", base.Add(3 * time.Hour), 1},
		{"Ninety Minutes", base.Add(90 * time.Minute), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(base, tt.end))
		})
	}
}

func TestRentalDays_TimezoneIndependent(t *testing.T) {
	hanoi := time.FixedZone("ICT", 7*3600)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(36 * time.Hour)

	assert.Equal(t, RentalDays(start, end), RentalDays(start.In(hanoi), end.In(hanoi)))
}

func TestCalculateBookingFees(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	slot := &domain.VehicleAtStation{ID: 3, VehicleID: 11, Status: domain.VehicleStatusAvailable}
	pricing := &domain.Pricing{VehicleID: 11, PricePerDay: 400_000, DepositAmount: 1_000_000, Currency: "VND"}

	t.Run("Two Day Window", func(t *testing.T) {
		fees, err := CalculateBookingFees(slot, pricing, start, start.Add(36*time.Hour))
		assert.NoError(t, err)
		assert.Equal(t, int32(2), fees.RentalDays)
		assert.Equal(t, int64(800_000), fees.RentalFee)
		assert.Equal(t, int64(1_000_000), fees.DepositFee)
		assert.Equal(t, int64(1_800_000), fees.TotalFee)
		assert.Equal(t, "VND", fees.Currency)
	})

	t.Run("Minimum One Day", func(t *testing.T) {
		fees, err := CalculateBookingFees(slot, pricing, start, start.Add(2*time.Hour))
		assert.NoError(t, err)
		assert.Equal(t, int32(1), fees.RentalDays)
		assert.Equal(t, int64(1_400_000), fees.TotalFee)
	})

	t.Run("Inverted Window", func(t *testing.T) {
		fees, err := CalculateBookingFees(slot, pricing, start, start.Add(-time.Hour))
		assert.ErrorIs(t, err, domain.ErrInvalidWindow)
		assert.Nil(t, fees)
	})

	t.Run("Zero Length Window", func(t *testing.T) {
		fees, err := CalculateBookingFees(slot, pricing, start, start)
		assert.ErrorIs(t, err, domain.ErrInvalidWindow)
		assert.Nil(t, fees)
	})

	t.Run("Vehicle Not Available", func(t *testing.T) {
		booked := *slot
		booked.Status = domain.VehicleStatusBooked
		fees, err := CalculateBookingFees(&booked, pricing, start, start.Add(24*time.Hour))
		assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
		assert.Nil(t, fees)
	})

	t.Run("Window Outside Availability", func(t *testing.T) {
		from := start.Add(12 * time.Hour)
		to := start.Add(24 * time.Hour)
		constrained := *slot
		constrained.AvailableFrom = &from
		constrained.AvailableTo = &to

		fees, err := CalculateBookingFees(&constrained, pricing, start, start.Add(24*time.Hour))
		assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
		assert.Nil(t, fees)

		fees, err = CalculateBookingFees(&constrained, pricing, from, to.Add(time.Hour))
		assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
		assert.Nil(t, fees)

		fees, err = CalculateBookingFees(&constrained, pricing, from, to)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), fees.RentalDays)
	})
}
