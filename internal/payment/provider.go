// Package payment holds the payment-provider abstraction: every provider can
// open a payment for an amount and hand back a reference the rest of the
// system keys on. Completion is not a provider concern; both variants funnel
// into the shared post-success pipeline in the service layer.
package payment

import (
	"context"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
)

// InitiationRequest captures what a provider needs to open a payment.
type InitiationRequest struct {
	Amount    int64
	Currency  string
	OrderInfo string
	ExtraData string
}

// InitiationResult is the minimal outcome of opening a payment: a unique
// reference code plus either a redirect URL (remote wallet) or counter
// instructions (cash).
type InitiationResult struct {
	ReferenceCode string
	PayURL        string
	Instructions  string
}

// Provider abstracts a payment channel.
type Provider interface {
	Initiate(ctx context.Context, req InitiationRequest) (*InitiationResult, error)
	Method() domain.PaymentMethod
}
