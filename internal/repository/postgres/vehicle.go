package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
)

type vehicleAtStationRepository struct {
	db *sql.DB
}

func NewVehicleAtStationRepository(db *sql.DB) repository.VehicleAtStationRepository {
	return &vehicleAtStationRepository{db: db}
}

func (r *vehicleAtStationRepository) GetByID(ctx context.Context, id int32) (*domain.VehicleAtStation, error) {
	vs := &domain.VehicleAtStation{}
	query := `SELECT id, vehicle_id, station_id, available_from, available_to, odometer_km, battery_percent, status, created_on, updated_on
	          FROM vehicle_at_stations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&vs.ID, &vs.VehicleID, &vs.StationID, &vs.AvailableFrom, &vs.AvailableTo, &vs.OdometerKm, &vs.BatteryPercent, &vs.Status, &vs.CreatedOn, &vs.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return vs, nil
}

// UpdateStatusIf is the only write path for the status field. The guard and
// the write are one statement so two concurrent bookings can never both win
// the same slot.
func (r *vehicleAtStationRepository) UpdateStatusIf(ctx context.Context, id int32, from, to domain.VehicleAtStationStatus) (bool, error) {
	query := `UPDATE vehicle_at_stations SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *vehicleAtStationRepository) UpdateReadings(ctx context.Context, id, odometerKm, batteryPercent int32) error {
	query := `UPDATE vehicle_at_stations SET odometer_km = $1, battery_percent = $2, updated_on = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, odometerKm, batteryPercent, time.Now(), id)
	return err
}
