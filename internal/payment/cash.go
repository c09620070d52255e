package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
)

// CashProvider mints a local receipt reference; no external call is made.
// The payment stays PENDING until staff confirms the cash was collected at
// the counter.
type CashProvider struct{}

func NewCashProvider() *CashProvider {
	return &CashProvider{}
}

func (p *CashProvider) Method() domain.PaymentMethod {
	return domain.PaymentMethodCash
}

func (p *CashProvider) Initiate(ctx context.Context, req InitiationRequest) (*InitiationResult, error) {
	ref := "CASH-" + strings.ToUpper(uuid.NewString())
	return &InitiationResult{
		ReferenceCode: ref,
		Instructions:  fmt.Sprintf("Pay %d %s at the station counter. Receipt reference: %s", req.Amount, req.Currency, ref),
	}, nil
}
