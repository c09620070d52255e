package postgres

import (
	"database/sql"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.KycRepository
	repository.PricingRepository
	repository.VehicleAtStationRepository
	repository.BookingRepository
	repository.PaymentRepository
	repository.FeeRepository
	repository.RentalRepository
	repository.InspectionRepository
	repository.ReportRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                         db,
		UserRepository:             NewUserRepository(db),
		KycRepository:              NewKycRepository(db),
		PricingRepository:          NewPricingRepository(db),
		VehicleAtStationRepository: NewVehicleAtStationRepository(db),
		BookingRepository:          NewBookingRepository(db),
		PaymentRepository:          NewPaymentRepository(db),
		FeeRepository:              NewFeeRepository(db),
		RentalRepository:           NewRentalRepository(db),
		InspectionRepository:       NewInspectionRepository(db),
		ReportRepository:           NewReportRepository(db),
	}
}
