package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Domenick1991/travelagency/internal/domain"
)

type StaffRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
	Create(ctx context.Context, staff *domain.Staff) error
}

type PGStaffRepository struct {
	db *sql.DB
}

func NewStaffRepository(db *sql.DB) StaffRepository {
	return &PGStaffRepository{db: db}
}

// GetByEmail matches email exactly as stored.
func (r *PGStaffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, password, full_name, created_at, updated_at FROM staff WHERE email=$1`, email)
	var s domain.Staff
	if err := row.Scan(&s.ID, &s.Email, &s.PasswordHash, &s.FullName, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("Staff not found")
		}
		return nil, fmt.Errorf("get staff by email: %w", err)
	}
	return &s, nil
}

func (r *PGStaffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	err := r.db.QueryRowContext(ctx, `INSERT INTO staff (email, password, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`, staff.Email, staff.PasswordHash, staff.FullName).
		Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
	if err != nil {
		if isPgError(err, uniqueViolation) {
			return domain.Conflict("User already exists")
		}
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

var _ StaffRepository = (*PGStaffRepository)(nil)
