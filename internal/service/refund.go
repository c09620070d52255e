package service

import (
	"context"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/logger"
)

// loggingRefundService records the refund obligation created by a rejection.
// Actual refund execution is owned by an external system; wiring a real
// client in means replacing this implementation, not the call sites.
type loggingRefundService struct{}

func NewLoggingRefundService() RefundService {
	return &loggingRefundService{}
}

func (s *loggingRefundService) RequestRefund(ctx context.Context, p *domain.Payment, reason string) error {
	logger.Warn("Refund obligation recorded, awaiting external processing",
		"payment_id", p.ID,
		"booking_id", p.BookingID,
		"amount", p.Amount,
		"currency", p.Currency,
		"method", p.Method,
		"reason", reason)
	return nil
}
