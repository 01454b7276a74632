package api

import (
	"encoding/json"
	"time"

	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/shopspring/decimal"
)

// money renders an amount as a JSON number with exactly two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type staffResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type loginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    staffResponse `json:"user"`
}

type createCustomerRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type createCustomerResponse struct {
	Message    string `json:"message"`
	CustomerID int64  `json:"customerId"`
}

type customerResponse struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type createOrderRequest struct {
	CustomerID      int64            `json:"customer_id" binding:"required"`
	DepartureCity   string           `json:"departure_city" binding:"required"`
	DestinationCity string           `json:"destination_city" binding:"required"`
	TravelDate      string           `json:"travel_date" binding:"required"`
	FlightPrice     *decimal.Decimal `json:"flight_price" binding:"required"`
}

type createOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}

type orderResponse struct {
	ID              int64       `json:"id"`
	CustomerID      int64       `json:"customer_id"`
	DepartureCity   string      `json:"departure_city"`
	DestinationCity string      `json:"destination_city"`
	TravelDate      string      `json:"travel_date"`
	FlightPrice     json.Number `json:"flight_price"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func newOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		DepartureCity:   o.DepartureCity,
		DestinationCity: o.DestinationCity,
		TravelDate:      o.TravelDate.Format(domain.TravelDateLayout),
		FlightPrice:     money(o.FlightPrice),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

type orderWithCustomerResponse struct {
	orderResponse
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type revenueResponse struct {
	CustomerID   int64       `json:"customerId"`
	TotalRevenue json.Number `json:"totalRevenue"`
}
