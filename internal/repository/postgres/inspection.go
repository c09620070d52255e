package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
)

type inspectionRepository struct {
	db *sql.DB
}

func NewInspectionRepository(db *sql.DB) repository.InspectionRepository {
	return &inspectionRepository{db: db}
}

func (r *inspectionRepository) Create(ctx context.Context, i *domain.Inspection) error {
	query := `INSERT INTO inspections (rental_id, inspector_id, type, odometer_km, battery_percent, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		i.RentalID, i.InspectorID, i.Type, i.OdometerKm, i.BatteryPercent, i.Notes, time.Now(),
	).Scan(&i.ID)
	if isUniqueViolation(err) {
		return domain.ErrInspectionExists
	}
	return err
}

const inspectionColumns = `id, rental_id, inspector_id, type, odometer_km, battery_percent, notes, completed_at, created_on`

func (r *inspectionRepository) scanOne(row *sql.Row) (*domain.Inspection, error) {
	i := &domain.Inspection{}
	err := row.Scan(&i.ID, &i.RentalID, &i.InspectorID, &i.Type, &i.OdometerKm, &i.BatteryPercent,
		&i.Notes, &i.CompletedAt, &i.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *inspectionRepository) GetByID(ctx context.Context, id int32) (*domain.Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *inspectionRepository) GetByRentalAndType(ctx context.Context, rentalID int32, t domain.InspectionType) (*domain.Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections WHERE rental_id = $1 AND type = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, rentalID, t))
}

func (r *inspectionRepository) CompleteIf(ctx context.Context, id int32, completedAt time.Time) (bool, error) {
	query := `UPDATE inspections SET completed_at = $1 WHERE id = $2 AND completed_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, completedAt, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, rep *domain.Report) error {
	query := `INSERT INTO reports (inspection_id, damage_found, notes, repair_cost, currency, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		rep.InspectionID, rep.DamageFound, rep.Notes, rep.RepairCost, rep.Currency, time.Now(),
	).Scan(&rep.ID)
}
