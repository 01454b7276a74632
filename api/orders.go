package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/Domenick1991/travelagency/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// maxFlightPrice is the first value that no longer fits NUMERIC(10, 2).
var maxFlightPrice = decimal.New(1, 8)

type OrderHandler struct {
	service orders.OrderUseCase
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.listAll)
	router.POST("", h.create)
	router.GET("/customer/:customerId", h.listByCustomer)
	router.GET("/customer/:customerId/revenue", h.revenue)
}

func (h *OrderHandler) listAll(c *gin.Context) {
	list, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Server error fetching orders")
		return
	}

	resp := make([]orderWithCustomerResponse, 0, len(list))
	for _, o := range list {
		resp = append(resp, orderWithCustomerResponse{
			orderResponse: newOrderResponse(o.Order),
			FirstName:     o.FirstName,
			LastName:      o.LastName,
			Email:         o.Email,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) listByCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "customerId")
	if !ok {
		return
	}

	list, err := h.service.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "Server error fetching orders")
		return
	}

	resp := make([]orderResponse, 0, len(list))
	for _, o := range list {
		resp = append(resp, newOrderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) revenue(c *gin.Context) {
	customerID, ok := pathID(c, "customerId")
	if !ok {
		return
	}

	total, err := h.service.Revenue(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "Server error calculating revenue")
		return
	}
	c.JSON(http.StatusOK, revenueResponse{CustomerID: customerID, TotalRevenue: money(total)})
}

func (h *OrderHandler) create(c *gin.Context) {
	var req createOrderRequest
	if !bindJSON(c, &req, msgAllFieldsRequired) {
		return
	}

	travelDate, err := time.Parse(domain.TravelDateLayout, req.TravelDate)
	if err != nil {
		abortWithMessage(c, http.StatusBadRequest, "Invalid travel_date, expected YYYY-MM-DD")
		return
	}
	price := *req.FlightPrice
	if price.IsNegative() || price.GreaterThanOrEqual(maxFlightPrice) || !price.Equal(price.Round(2)) {
		abortWithMessage(c, http.StatusBadRequest, "Invalid flight_price")
		return
	}

	order, err := h.service.Create(c.Request.Context(), orders.CreateOrderInput{
		CustomerID:      req.CustomerID,
		DepartureCity:   req.DepartureCity,
		DestinationCity: req.DestinationCity,
		TravelDate:      travelDate,
		FlightPrice:     price,
	})
	if err != nil {
		respondError(c, err, "Server error creating order")
		return
	}

	c.JSON(http.StatusCreated, createOrderResponse{Message: "Flight booked successfully", OrderID: order.ID})
}
