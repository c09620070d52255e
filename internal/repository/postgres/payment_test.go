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

func TestPaymentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	p := &domain.Payment{
		BookingID:     42,
		Method:        domain.PaymentMethodBankTransfer,
		Status:        domain.PaymentStatusPending,
		Amount:        1_800_000,
		Currency:      "VND",
		ReferenceCode: "REF-1",
	}

	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(p.BookingID, p.Method, p.Status, p.Amount, p.Currency, p.ReferenceCode, p.TransactionID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	err = repo.Create(ctx, p)
	assert.NoError(t, err)
	assert.Equal(t, int32(5), p.ID)
}

func TestPaymentRepository_GetByReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "booking_id", "method", "status", "amount", "currency", "reference_code", "transaction_id", "paid_at", "created_on", "updated_on"}).
			AddRow(5, 42, "BANK_TRANSFER", "PENDING", 1_800_000, "VND", "REF-1", "", nil, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM payments WHERE reference_code = \\$1").
			WithArgs("REF-1").
			WillReturnRows(rows)

		p, err := repo.GetByReference(ctx, "REF-1")
		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Equal(t, int32(5), p.ID)
		assert.Equal(t, domain.PaymentStatusPending, p.Status)
		assert.Nil(t, p.PaidAt)
	})

	t.Run("Unknown Reference", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE reference_code = \\$1").
			WithArgs("REF-404").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		p, err := repo.GetByReference(ctx, "REF-404")
		assert.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestPaymentRepository_MarkPaidIfPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()
	paidAt := time.Now()

	t.Run("First Caller Wins", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments").
			WithArgs(domain.PaymentStatusPaid, "990011", paidAt, int32(5), domain.PaymentStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.MarkPaidIfPending(ctx, 5, "990011", paidAt)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Replay Loses", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments").
			WithArgs(domain.PaymentStatusPaid, "990011", paidAt, int32(5), domain.PaymentStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.MarkPaidIfPending(ctx, 5, "990011", paidAt)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
