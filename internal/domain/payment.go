package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

type PaymentStatus string

// Payments transition PENDING→PAID or PENDING→REFUNDED and never re-enter
// PENDING.
const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID            int32         `json:"id"`
	BookingID     int32         `json:"booking_id"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	ReferenceCode string        `json:"reference_code"` // provider-assigned, unique
	TransactionID string        `json:"transaction_id"` // provider transaction on completion
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedOn     time.Time     `json:"created_on"`
	UpdatedOn     time.Time     `json:"updated_on"`
}
