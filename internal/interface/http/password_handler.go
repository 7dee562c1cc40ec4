package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskstack/taskstack/internal/application"
	"github.com/taskstack/taskstack/pkg/response"
	"github.com/taskstack/taskstack/pkg/validation"
)

type PasswordHandler struct {
	Svc    *application.ResetService
	Logger *logrus.Logger
	// Production keeps the token out of the response body; the only delivery
	// channel is the reset email.
	ExposeToken bool
}

func NewPasswordHandler(svc *application.ResetService, logger *logrus.Logger, exposeToken bool) *PasswordHandler {
	return &PasswordHandler{Svc: svc, Logger: logger, ExposeToken: exposeToken}
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

// Forgot POST /api/password/forgot-password
func (h *PasswordHandler) Forgot(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "email is required", validation.ToDetails(err))
		return
	}
	tok, err := h.Svc.RequestReset(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user_not_found", "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("reset request failed")
		response.Error(c, http.StatusInternalServerError, "store_error", "server error while processing request", nil)
		return
	}
	data := gin.H{}
	if h.ExposeToken {
		data["token"] = tok
	}
	response.Success(c, http.StatusOK, data, "if the email exists, a password reset link has been sent")
}

// Reset POST /api/password/reset-password
func (h *PasswordHandler) Reset(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "token and new password are required", validation.ToDetails(err))
		return
	}
	email, err := h.Svc.ConsumeReset(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrResetTokenInvalid):
			response.Error(c, http.StatusBadRequest, "token_invalid_or_expired", "token expired or invalid", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user_not_found", "user not found for password reset", nil)
		default:
			h.Logger.WithError(err).Error("password reset failed")
			response.Error(c, http.StatusInternalServerError, "store_error", "server error during password reset", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email": email}, "password updated successfully")
}
