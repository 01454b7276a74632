package api

import (
	"net/http"

	"github.com/Domenick1991/travelagency/internal/service/customers"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	service customers.CustomerUseCase
}

func NewCustomerHandler(service customers.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func (h *CustomerHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
}

func (h *CustomerHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err, "Server error fetching customers")
		return
	}

	resp := make([]customerResponse, 0, len(list))
	for _, customer := range list {
		resp = append(resp, newCustomerResponse(customer))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomerHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Server error fetching customer")
		return
	}
	c.JSON(http.StatusOK, newCustomerResponse(*customer))
}

func (h *CustomerHandler) create(c *gin.Context) {
	var req createCustomerRequest
	if !bindJSON(c, &req, msgAllFieldsRequired) {
		return
	}

	customer, err := h.service.Create(c.Request.Context(), customers.CreateCustomerInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err, "Server error creating customer")
		return
	}

	c.JSON(http.StatusCreated, createCustomerResponse{Message: "Customer created successfully", CustomerID: customer.ID})
}
