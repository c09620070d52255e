package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository/postgres"
)

func TestVehicleAtStationRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVehicleAtStationRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "vehicle_id", "station_id", "available_from", "available_to", "odometer_km", "battery_percent", "status", "created_on", "updated_on"}).
		AddRow(3, 11, 2, nil, nil, 12000, 95, "AVAILABLE", time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM vehicle_at_stations WHERE id = \\$1").
		WithArgs(int32(3)).
		WillReturnRows(rows)

	vs, err := repo.GetByID(ctx, 3)
	assert.NoError(t, err)
	assert.NotNil(t, vs)
	assert.Equal(t, domain.VehicleStatusAvailable, vs.Status)
	assert.Equal(t, int32(12000), vs.OdometerKm)
}

func TestVehicleAtStationRepository_UpdateStatusIf(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVehicleAtStationRepository(db)
	ctx := context.Background()

	t.Run("Wins The Slot", func(t *testing.T) {
		mock.ExpectExec("UPDATE vehicle_at_stations SET status").
			WithArgs(domain.VehicleStatusPending, sqlmock.AnyArg(), int32(3), domain.VehicleStatusAvailable).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdateStatusIf(ctx, 3, domain.VehicleStatusAvailable, domain.VehicleStatusPending)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Loses The Slot", func(t *testing.T) {
		mock.ExpectExec("UPDATE vehicle_at_stations SET status").
			WithArgs(domain.VehicleStatusPending, sqlmock.AnyArg(), int32(3), domain.VehicleStatusAvailable).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.UpdateStatusIf(ctx, 3, domain.VehicleStatusAvailable, domain.VehicleStatusPending)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestVehicleAtStationRepository_UpdateReadings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVehicleAtStationRepository(db)

	mock.ExpectExec("UPDATE vehicle_at_stations SET odometer_km").
		WithArgs(int32(12350), int32(40), sqlmock.AnyArg(), int32(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateReadings(context.Background(), 3, 12350, 40)
	assert.NoError(t, err)
}
