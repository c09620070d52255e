package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/domain"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, phone, role, created_on, updated_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

type kycRepository struct {
	db *sql.DB
}

func NewKycRepository(db *sql.DB) repository.KycRepository {
	return &kycRepository{db: db}
}

func (r *kycRepository) GetLatestApprovedByRenter(ctx context.Context, renterID int32) (*domain.KycRecord, error) {
	k := &domain.KycRecord{}
	query := `SELECT id, renter_id, status, document_no, verified_at, created_on
	          FROM kyc_records
	          WHERE renter_id = $1 AND status = $2
	          ORDER BY verified_at DESC NULLS LAST
	          LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, renterID, domain.KycStatusApproved).
		Scan(&k.ID, &k.RenterID, &k.Status, &k.DocumentNo, &k.VerifiedAt, &k.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return k, nil
}
