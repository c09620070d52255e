package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (renter_id, vehicle_at_station_id, start_at, expected_return_at, rental_fee, deposit_fee, total_fee, currency, status, verification_status, cancel_reason, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.RenterID, b.VehicleAtStationID, b.StartAt, b.ExpectedReturnAt,
		b.RentalFee, b.DepositFee, b.TotalFee, b.Currency,
		b.Status, b.VerificationStatus, b.CancelReason, now, now,
	).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT id, renter_id, vehicle_at_station_id, start_at, expected_return_at, rental_fee, deposit_fee, total_fee, currency, status, verification_status, verified_by, verified_at, cancel_reason, created_on, updated_on
	          FROM bookings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.RenterID, &b.VehicleAtStationID, &b.StartAt, &b.ExpectedReturnAt,
		&b.RentalFee, &b.DepositFee, &b.TotalFee, &b.Currency,
		&b.Status, &b.VerificationStatus, &b.VerifiedBy, &b.VerifiedAt,
		&b.CancelReason, &b.CreatedOn, &b.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatusIf(ctx context.Context, id int32, from, to domain.BookingStatus, cancelReason string) (bool, error) {
	query := `UPDATE bookings
	          SET status = $1, cancel_reason = CASE WHEN $2 <> '' THEN $2 ELSE cancel_reason END, updated_on = $3
	          WHERE id = $4 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, to, cancelReason, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// DecideVerificationIfPending is the staff decision's atomic guard: once the
// row leaves PENDING no further decision can land.
func (r *bookingRepository) DecideVerificationIfPending(ctx context.Context, id int32, decision domain.VerificationStatus, staffID int32, decidedAt time.Time) (bool, error) {
	query := `UPDATE bookings
	          SET verification_status = $1, verified_by = $2, verified_at = $3, updated_on = $3
	          WHERE id = $4 AND verification_status = $5`
	res, err := r.db.ExecContext(ctx, query, decision, staffID, decidedAt, id, domain.VerificationPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *bookingRepository) RestampVerification(ctx context.Context, id int32, staffID int32, decidedAt time.Time) error {
	query := `UPDATE bookings SET verified_by = $1, verified_at = $2, updated_on = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, staffID, decidedAt, id)
	return err
}
