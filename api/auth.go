package api

import (
	"net/http"

	"github.com/Domenick1991/travelagency/internal/auth"
	"github.com/Domenick1991/travelagency/internal/service/staff"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service staff.StaffUseCase
}

func NewAuthHandler(service staff.StaffUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req, msgAllFieldsRequired) {
		return
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		respondError(c, auth.ErrPasswordTooLong, "")
		return
	}

	member, err := h.service.Register(c.Request.Context(), staff.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(c, err, "Server error during registration")
		return
	}

	c.JSON(http.StatusCreated, registerResponse{Message: "User registered successfully", UserID: member.ID})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "Email and password are required") {
		return
	}

	result, err := h.service.Login(c.Request.Context(), staff.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		respondError(c, err, "Server error during login")
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   result.Token,
		User: staffResponse{
			ID:       result.Staff.ID,
			Email:    result.Staff.Email,
			FullName: result.Staff.FullName,
		},
	})
}
