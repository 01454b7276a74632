package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/travelagency/internal/domain"
)

type CustomerRepository interface {
	List(ctx context.Context, search string) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, customer *domain.Customer) error
}

type PGCustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &PGCustomerRepository{db: db}
}

const customerColumns = `id, first_name, last_name, email, phone_number, created_at, updated_at`

// List returns customers newest first. A non-empty search keeps only customers
// whose first name, last name or email contains it, ignoring case.
func (r *PGCustomerRepository) List(ctx context.Context, search string) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	var args []any
	if search = strings.TrimSpace(search); search != "" {
		query += ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1`
		args = append(args, containsPattern(search))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *PGCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id=$1`, id)
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("Customer not found")
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (r *PGCustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check customer: %w", err)
	}
	return exists, nil
}

func (r *PGCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE email=$1)`, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check customer email: %w", err)
	}
	return exists, nil
}

// Create inserts the customer. The unique constraint on email is the final
// word on duplicates and surfaces as domain.ErrConflict.
func (r *PGCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	err := r.db.QueryRowContext(ctx, `INSERT INTO customers (first_name, last_name, email, phone_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`, customer.FirstName, customer.LastName, customer.Email, customer.PhoneNumber).
		Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		if isPgError(err, uniqueViolation) {
			return domain.Conflict("Customer with this email already exists")
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term literally as a substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

var _ CustomerRepository = (*PGCustomerRepository)(nil)
