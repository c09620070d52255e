package jobs

import (
	"context"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/logger"
)

// ExpirePendingBookings garbage-collects bookings orphaned by a partial
// failure or an abandoned wallet checkout: still PENDING_VERIFICATION past
// the TTL with their payment never completed. Cash bookings are verified at
// creation and are never touched here. Each booking's vehicle slot is
// reverted PENDING→AVAILABLE under the usual status guard.
func (jr *JobRunner) ExpirePendingBookings() {
	jr.runWithRecovery("ExpirePendingBookings", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Booking.PendingTTLMinutes) * time.Minute)

		query := `
			UPDATE bookings
			SET status = 'CANCELLED',
			    cancel_reason = 'payment window expired',
			    updated_on = NOW()
			WHERE status = 'PENDING_VERIFICATION'
			  AND created_on < $1
			  AND NOT EXISTS (
			      SELECT 1 FROM payments p
			      WHERE p.booking_id = bookings.id AND p.status <> 'PENDING'
			  )
			RETURNING id, vehicle_at_station_id
		`

		rows, err := jr.db.QueryContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to expire pending bookings", "error", err)
			return
		}
		defer rows.Close()

		type expired struct {
			ID                 int32
			VehicleAtStationID int32
		}
		var cancelled []expired
		for rows.Next() {
			var e expired
			if err := rows.Scan(&e.ID, &e.VehicleAtStationID); err != nil {
				logger.Error("Failed to scan expired booking", "error", err)
				continue
			}
			cancelled = append(cancelled, e)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired bookings", "error", err)
			return
		}

		for _, e := range cancelled {
			_, err := jr.db.ExecContext(ctx,
				`UPDATE vehicle_at_stations SET status = 'AVAILABLE', updated_on = NOW() WHERE id = $1 AND status = 'PENDING'`,
				e.VehicleAtStationID)
			if err != nil {
				logger.Error("Failed to release vehicle slot for expired booking", "booking_id", e.ID, "error", err)
				continue
			}
			logger.Debug("Expired pending booking", "booking_id", e.ID, "vehicle_at_station_id", e.VehicleAtStationID)
		}

		logger.Info("Expired pending bookings", "count", len(cancelled))
	})
}

// FlagStalePayments surfaces payments stuck PENDING beyond the configured age
// for manual reconciliation. Failed wallet results deliberately leave the
// payment PENDING, so this sweep is the operator's view of that backlog; it
// changes no state.
func (jr *JobRunner) FlagStalePayments() {
	jr.runWithRecovery("FlagStalePayments", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Booking.StalePaymentAgeHours) * time.Hour)

		query := `
			SELECT id, booking_id, method, amount, currency, reference_code, created_on
			FROM payments
			WHERE status = 'PENDING' AND created_on < $1
			ORDER BY created_on
		`

		rows, err := jr.db.QueryContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to query stale payments", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id, bookingID int32
				method        string
				amount        int64
				currency      string
				referenceCode string
				createdOn     time.Time
			)
			if err := rows.Scan(&id, &bookingID, &method, &amount, &currency, &referenceCode, &createdOn); err != nil {
				logger.Error("Failed to scan stale payment", "error", err)
				continue
			}
			logger.Warn("Payment pending beyond reconciliation age",
				"payment_id", id,
				"booking_id", bookingID,
				"method", method,
				"amount", amount,
				"currency", currency,
				"reference_code", referenceCode,
				"created_on", createdOn)
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating stale payments", "error", err)
			return
		}

		logger.Info("Flagged stale payments", "count", count)
	})
}
