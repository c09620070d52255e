package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository/postgres"
)

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rental := &domain.Rental{
		BookingID:        42,
		VehicleID:        11,
		PickupAt:         time.Now(),
		ExpectedReturnAt: time.Now().Add(48 * time.Hour),
		DailyRate:        400_000,
		Currency:         "VND",
		Status:           domain.RentalStatusReserved,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(rental.BookingID, rental.VehicleID, rental.PickupAt, rental.ExpectedReturnAt,
				rental.DailyRate, rental.Currency, rental.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

		err := repo.Create(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, int32(9), rental.ID)
	})

	t.Run("Duplicate Booking Maps To ErrRentalExists", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(rental.BookingID, rental.VehicleID, rental.PickupAt, rental.ExpectedReturnAt,
				rental.DailyRate, rental.Currency, rental.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "rentals_booking_id_key"})

		err := repo.Create(ctx, rental)
		assert.ErrorIs(t, err, domain.ErrRentalExists)
	})
}

func TestRentalRepository_GetByBookingID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "booking_id", "vehicle_id", "pickup_at", "expected_return_at", "actual_pickup_at", "actual_return_at", "daily_rate", "currency", "status", "created_on", "updated_on"}).
		AddRow(9, 42, 11, time.Now(), time.Now().Add(48*time.Hour), nil, nil, 400_000, "VND", "RESERVED", time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE booking_id = \\$1").
		WithArgs(int32(42)).
		WillReturnRows(rows)

	r, err := repo.GetByBookingID(ctx, 42)
	assert.NoError(t, err)
	assert.NotNil(t, r)
	assert.Equal(t, domain.RentalStatusReserved, r.Status)
	assert.Nil(t, r.ActualPickupAt)
}

func TestRentalRepository_UpdateStatusIf(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Pickup Transition", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals").
			WithArgs(domain.RentalStatusInProgress, "IN_PROGRESS", now, sqlmock.AnyArg(), int32(9), domain.RentalStatusReserved).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdateStatusIf(ctx, 9, domain.RentalStatusReserved, domain.RentalStatusInProgress, &now)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Guard Fails On Wrong State", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals").
			WithArgs(domain.RentalStatusCompleted, "COMPLETED", now, sqlmock.AnyArg(), int32(9), domain.RentalStatusInProgress).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.UpdateStatusIf(ctx, 9, domain.RentalStatusInProgress, domain.RentalStatusCompleted, &now)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
