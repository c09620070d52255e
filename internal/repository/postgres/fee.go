package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
)

type feeRepository struct {
	db *sql.DB
}

func NewFeeRepository(db *sql.DB) repository.FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) Create(ctx context.Context, f *domain.Fee) error {
	query := `INSERT INTO fees (booking_id, type, amount, currency, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, f.BookingID, f.Type, f.Amount, f.Currency, time.Now()).Scan(&f.ID)
}

func (r *feeRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Fee, error) {
	query := `SELECT id, booking_id, type, amount, currency, created_on FROM fees WHERE booking_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []domain.Fee
	for rows.Next() {
		var f domain.Fee
		if err := rows.Scan(&f.ID, &f.BookingID, &f.Type, &f.Amount, &f.Currency, &f.CreatedOn); err != nil {
			return nil, err
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}
