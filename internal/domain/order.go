package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TravelDateLayout is the wire and storage layout of Order.TravelDate.
const TravelDateLayout = "2006-01-02"

type Order struct {
	ID              int64
	CustomerID      int64
	DepartureCity   string
	DestinationCity string
	TravelDate      time.Time
	FlightPrice     decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderWithCustomer is an order joined with the owning customer's contact fields.
type OrderWithCustomer struct {
	Order
	FirstName string
	LastName  string
	Email     string
}
