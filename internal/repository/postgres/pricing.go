package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
)

type pricingRepository struct {
	db *sql.DB
}

func NewPricingRepository(db *sql.DB) repository.PricingRepository {
	return &pricingRepository{db: db}
}

func (r *pricingRepository) GetEffectiveForVehicle(ctx context.Context, vehicleID int32, at time.Time) (*domain.Pricing, error) {
	p := &domain.Pricing{}
	// Most recent effective_from wins on overlapping rows.
	query := `SELECT id, vehicle_id, price_per_day, deposit_amount, currency, effective_from, effective_to
	          FROM pricings
	          WHERE vehicle_id = $1
	            AND effective_from <= $2
	            AND (effective_to IS NULL OR effective_to >= $2)
	          ORDER BY effective_from DESC
	          LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, vehicleID, at).
		Scan(&p.ID, &p.VehicleID, &p.PricePerDay, &p.DepositAmount, &p.Currency, &p.EffectiveFrom, &p.EffectiveTo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
