package service

import (
	"context"
	"fmt"
	"time"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/logger"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/utils"
)

type rentalService struct {
	rentalRepo     repository.RentalRepository
	inspectionRepo repository.InspectionRepository
	reportRepo     repository.ReportRepository
	vehicleRepo    repository.VehicleAtStationRepository
	bookingRepo    repository.BookingRepository
	feeRepo        repository.FeeRepository
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	inspectionRepo repository.InspectionRepository,
	reportRepo repository.ReportRepository,
	vehicleRepo repository.VehicleAtStationRepository,
	bookingRepo repository.BookingRepository,
	feeRepo repository.FeeRepository,
) RentalService {
	return &rentalService{
		rentalRepo:     rentalRepo,
		inspectionRepo: inspectionRepo,
		reportRepo:     reportRepo,
		vehicleRepo:    vehicleRepo,
		bookingRepo:    bookingRepo,
		feeRepo:        feeRepo,
	}
}

func (s *rentalService) CreateInspection(ctx context.Context, rentalID, inspectorID int32, t domain.InspectionType, odometerKm, batteryPercent int32, notes string) (*domain.Inspection, error) {
	r, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrRentalNotFound
	}

	switch t {
	case domain.InspectionTypePreRental:
		if r.Status != domain.RentalStatusReserved {
			return nil, domain.ErrInvalidRentalState
		}
	case domain.InspectionTypePostRental:
		if r.Status != domain.RentalStatusInProgress && r.Status != domain.RentalStatusCompleted {
			return nil, domain.ErrInvalidRentalState
		}
	default:
		return nil, fmt.Errorf("unknown inspection type %q", t)
	}

	existing, err := s.inspectionRepo.GetByRentalAndType(ctx, rentalID, t)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrInspectionExists
	}

	insp := &domain.Inspection{
		RentalID:       rentalID,
		InspectorID:    inspectorID,
		Type:           t,
		OdometerKm:     odometerKm,
		BatteryPercent: batteryPercent,
		Notes:          notes,
	}
	// The unique (rental_id, type) constraint backstops the lookup above
	// against a concurrent duplicate.
	if err := s.inspectionRepo.Create(ctx, insp); err != nil {
		return nil, err
	}

	logger.Info("Inspection created", "inspection_id", insp.ID, "rental_id", rentalID, "type", t, "inspector_id", inspectorID)
	return insp, nil
}

func (s *rentalService) CompleteInspection(ctx context.Context, inspectionID int32, damageFound bool, damageNotes string, repairCost int64) (*domain.Inspection, *domain.Report, error) {
	insp, err := s.inspectionRepo.GetByID(ctx, inspectionID)
	if err != nil {
		return nil, nil, err
	}
	if insp == nil {
		return nil, nil, domain.ErrInspectionNotFound
	}

	r, err := s.rentalRepo.GetByID(ctx, insp.RentalID)
	if err != nil {
		return nil, nil, err
	}
	if r == nil {
		return nil, nil, domain.ErrRentalNotFound
	}

	now := time.Now()
	closed, err := s.inspectionRepo.CompleteIf(ctx, inspectionID, now)
	if err != nil {
		return nil, nil, err
	}
	if !closed {
		return nil, nil, domain.ErrInspectionClosed
	}
	insp.CompletedAt = &now

	var report *domain.Report
	if damageFound {
		report = &domain.Report{
			InspectionID: inspectionID,
			DamageFound:  true,
			Notes:        damageNotes,
			RepairCost:   repairCost,
			Currency:     r.Currency,
		}
		if err := s.reportRepo.Create(ctx, report); err != nil {
			return nil, nil, fmt.Errorf("creating damage report: %w", err)
		}
		logger.Info("Damage report filed", "inspection_id", inspectionID, "rental_id", r.ID, "repair_cost", repairCost)
	}

	switch insp.Type {
	case domain.InspectionTypePreRental:
		if err := s.completePreRental(ctx, r, insp, now); err != nil {
			return nil, nil, err
		}
	case domain.InspectionTypePostRental:
		if err := s.completePostRental(ctx, r, insp, now); err != nil {
			return nil, nil, err
		}
	}

	return insp, report, nil
}

// completePreRental hands the vehicle over: the rental starts and the slot's
// live readings are refreshed from the walk-around.
func (s *rentalService) completePreRental(ctx context.Context, r *domain.Rental, insp *domain.Inspection, now time.Time) error {
	ok, err := s.rentalRepo.UpdateStatusIf(ctx, r.ID, domain.RentalStatusReserved, domain.RentalStatusInProgress, &now)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidRentalState
	}

	b, err := s.bookingRepo.GetByID(ctx, r.BookingID)
	if err == nil && b != nil {
		if err := s.vehicleRepo.UpdateReadings(ctx, b.VehicleAtStationID, insp.OdometerKm, insp.BatteryPercent); err != nil {
			logger.Warn("Failed to refresh vehicle readings after pickup inspection", "rental_id", r.ID, "error", err)
		}
	}

	logger.Info("Rental started", "rental_id", r.ID, "actual_pickup_at", now)
	return nil
}

// completePostRental takes the vehicle back. Returning after the expected
// return marks the rental LATE and files a late-return fee from the rental's
// daily-rate snapshot.
func (s *rentalService) completePostRental(ctx context.Context, r *domain.Rental, insp *domain.Inspection, now time.Time) error {
	target := domain.RentalStatusCompleted
	if now.After(r.ExpectedReturnAt) {
		target = domain.RentalStatusLate
	}

	ok, err := s.rentalRepo.UpdateStatusIf(ctx, r.ID, domain.RentalStatusInProgress, target, &now)
	if err != nil {
		return err
	}
	if !ok && r.Status != domain.RentalStatusCompleted {
		return domain.ErrInvalidRentalState
	}

	if ok && target == domain.RentalStatusLate {
		lateDays := utils.RentalDays(r.ExpectedReturnAt, now)
		fee := &domain.Fee{
			BookingID: r.BookingID,
			Type:      domain.FeeTypeLateReturn,
			Amount:    r.DailyRate * int64(lateDays),
			Currency:  r.Currency,
		}
		if err := s.feeRepo.Create(ctx, fee); err != nil {
			return fmt.Errorf("creating late return fee: %w", err)
		}
		logger.Info("Late return fee filed", "rental_id", r.ID, "late_days", lateDays, "amount", fee.Amount)
	}

	b, err := s.bookingRepo.GetByID(ctx, r.BookingID)
	if err == nil && b != nil {
		if err := s.vehicleRepo.UpdateReadings(ctx, b.VehicleAtStationID, insp.OdometerKm, insp.BatteryPercent); err != nil {
			logger.Warn("Failed to refresh vehicle readings after return inspection", "rental_id", r.ID, "error", err)
		}
		// Vehicle goes back on offer once returned.
		if _, err := s.vehicleRepo.UpdateStatusIf(ctx, b.VehicleAtStationID, domain.VehicleStatusBooked, domain.VehicleStatusAvailable); err != nil {
			logger.Warn("Failed to release vehicle slot after return", "rental_id", r.ID, "error", err)
		}
	}

	logger.Info("Rental returned", "rental_id", r.ID, "status", target, "actual_return_at", now)
	return nil
}
