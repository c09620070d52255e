package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (booking_id, method, status, amount, currency, reference_code, transaction_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.BookingID, p.Method, p.Status, p.Amount, p.Currency,
		p.ReferenceCode, p.TransactionID, now, now,
	).Scan(&p.ID)
}

const paymentColumns = `id, booking_id, method, status, amount, currency, reference_code, transaction_id, paid_at, created_on, updated_on`

func (r *paymentRepository) scanOne(row *sql.Row) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(&p.ID, &p.BookingID, &p.Method, &p.Status, &p.Amount, &p.Currency,
		&p.ReferenceCode, &p.TransactionID, &p.PaidAt, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *paymentRepository) GetByReference(ctx context.Context, referenceCode string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE reference_code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, referenceCode))
}

func (r *paymentRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_on DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, bookingID))
}

// MarkPaidIfPending closes the check-then-act window: the PENDING check and
// the PAID write are a single statement, so only one of two concurrent
// callbacks can ever succeed.
func (r *paymentRepository) MarkPaidIfPending(ctx context.Context, id int32, transactionID string, paidAt time.Time) (bool, error) {
	query := `UPDATE payments
	          SET status = $1, transaction_id = $2, paid_at = $3, updated_on = $3
	          WHERE id = $4 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, domain.PaymentStatusPaid, transactionID, paidAt, id, domain.PaymentStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
