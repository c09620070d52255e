package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (booking_id, vehicle_id, pickup_at, expected_return_at, daily_rate, currency, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		rt.BookingID, rt.VehicleID, rt.PickupAt, rt.ExpectedReturnAt,
		rt.DailyRate, rt.Currency, rt.Status, now, now,
	).Scan(&rt.ID)
	if isUniqueViolation(err) {
		return domain.ErrRentalExists
	}
	return err
}

const rentalColumns = `id, booking_id, vehicle_id, pickup_at, expected_return_at, actual_pickup_at, actual_return_at, daily_rate, currency, status, created_on, updated_on`

func (r *rentalRepository) scanOne(row *sql.Row) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.BookingID, &rt.VehicleID, &rt.PickupAt, &rt.ExpectedReturnAt,
		&rt.ActualPickupAt, &rt.ActualReturnAt, &rt.DailyRate, &rt.Currency, &rt.Status,
		&rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *rentalRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE booking_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, bookingID))
}

func (r *rentalRepository) UpdateStatusIf(ctx context.Context, id int32, from, to domain.RentalStatus, at *time.Time) (bool, error) {
	// at stamps actual_pickup_at on the RESERVED→IN_PROGRESS transition and
	// actual_return_at on the transitions out of IN_PROGRESS.
	query := `UPDATE rentals
	          SET status = $1,
	              actual_pickup_at = CASE WHEN $2 = 'IN_PROGRESS' THEN COALESCE($3, actual_pickup_at) ELSE actual_pickup_at END,
	              actual_return_at = CASE WHEN $2 IN ('COMPLETED', 'LATE') THEN COALESCE($3, actual_return_at) ELSE actual_return_at END,
	              updated_on = $4
	          WHERE id = $5 AND status = $6`
	res, err := r.db.ExecContext(ctx, query, to, string(to), at, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
