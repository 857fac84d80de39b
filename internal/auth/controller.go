package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticketly/internal/shared/utils/response"
	"ticketly/internal/users"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Registration failed", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "User registered successfully", result, nil)
}

func (ctrl *Controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.RespondJSON(c, "error", http.StatusUnauthorized, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Login failed", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Login successful", result, nil)
}

func (ctrl *Controller) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tokens, err := ctrl.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid refresh token", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Token refreshed successfully", tokens, nil)
}

func (ctrl *Controller) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	if err := ctrl.service.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.RespondJSON(c, "error", http.StatusUnauthorized, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to change password", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

func (ctrl *Controller) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	user, err := ctrl.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, users.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "User retrieved successfully", user, nil)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
