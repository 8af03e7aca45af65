package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"github.com/davidobi-dev/threadcart-backend/internal/services/auth"
	"github.com/davidobi-dev/threadcart-backend/utils"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.Register(ctx, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("user registered successfully", gin.H{
		"user": user,
	}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	token, user, err := h.service.Login(ctx, input)
	if err != nil {
		// do not distinguish unknown email from bad password
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("invalid email or password"))
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("login successful", gin.H{
		"access_token": token,
		"user":         user,
	}))
}
