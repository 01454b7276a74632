package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	ListWithCustomer(ctx context.Context) ([]domain.OrderWithCustomer, error)
	SumRevenueByCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error)
	Create(ctx context.Context, order *domain.Order) error
}

type PGOrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, customer_id, departure_city, destination_city, travel_date, flight_price, created_at, updated_at
		FROM orders
		WHERE customer_id=$1
		ORDER BY travel_date DESC, id DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.DepartureCity, &o.DestinationCity, &o.TravelDate, &o.FlightPrice, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PGOrderRepository) ListWithCustomer(ctx context.Context) ([]domain.OrderWithCustomer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT o.id, o.customer_id, o.departure_city, o.destination_city, o.travel_date, o.flight_price, o.created_at, o.updated_at,
		c.first_name, c.last_name, c.email
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		ORDER BY o.created_at DESC, o.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.OrderWithCustomer, 0)
	for rows.Next() {
		var o domain.OrderWithCustomer
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.DepartureCity, &o.DestinationCity, &o.TravelDate, &o.FlightPrice, &o.CreatedAt, &o.UpdatedAt,
			&o.FirstName, &o.LastName, &o.Email); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// SumRevenueByCustomer is zero for a customer without orders.
func (r *PGOrderRepository) SumRevenueByCustomer(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(flight_price), 0) FROM orders WHERE customer_id=$1`, customerID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum revenue: %w", err)
	}
	return total, nil
}

// Create inserts the order. A customer deleted after the caller's existence
// check trips the foreign key and surfaces as domain.ErrNotFound.
func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	err := r.db.QueryRowContext(ctx, `INSERT INTO orders (customer_id, departure_city, destination_city, travel_date, flight_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		order.CustomerID, order.DepartureCity, order.DestinationCity, order.TravelDate, order.FlightPrice).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return domain.NotFound("Customer not found")
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

var _ OrderRepository = (*PGOrderRepository)(nil)
