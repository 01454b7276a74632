package kafka

import (
	"context"
	"strconv"
	"time"

	"github.com/Domenick1991/travelagency/internal/domain"
)

const (
	EventCustomerCreated = "customer_created"
	EventOrderBooked     = "order_booked"
)

type AgencyEvent struct {
	Type            string    `json:"type"`
	CustomerID      int64     `json:"customer_id"`
	OrderID         int64     `json:"order_id,omitempty"`
	Email           string    `json:"email,omitempty"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	DepartureCity   string    `json:"departure_city,omitempty"`
	DestinationCity string    `json:"destination_city,omitempty"`
	TravelDate      string    `json:"travel_date,omitempty"`
	FlightPrice     string    `json:"flight_price,omitempty"`
	StaffID         int64     `json:"staff_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// Key partitions events by customer so a customer's events stay ordered.
func (e AgencyEvent) Key() string {
	return strconv.FormatInt(e.CustomerID, 10)
}

// withStaff records the staff member acting in ctx, if any.
func withStaff(ctx context.Context, e AgencyEvent) AgencyEvent {
	if e.StaffID == 0 {
		if p, ok := domain.PrincipalFromContext(ctx); ok {
			e.StaffID = p.ID
		}
	}
	return e
}

func CustomerCreated(c domain.Customer, at time.Time) AgencyEvent {
	return AgencyEvent{
		Type:       EventCustomerCreated,
		CustomerID: c.ID,
		Email:      c.Email,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		OccurredAt: at.UTC(),
	}
}

func OrderBooked(o domain.Order, at time.Time) AgencyEvent {
	return AgencyEvent{
		Type:            EventOrderBooked,
		CustomerID:      o.CustomerID,
		OrderID:         o.ID,
		DepartureCity:   o.DepartureCity,
		DestinationCity: o.DestinationCity,
		TravelDate:      o.TravelDate.Format(domain.TravelDateLayout),
		FlightPrice:     o.FlightPrice.StringFixed(2),
		OccurredAt:      at.UTC(),
	}
}
