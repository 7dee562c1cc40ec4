package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskstack/taskstack/internal/application"
	repo "github.com/taskstack/taskstack/internal/domain/repository"
	"github.com/taskstack/taskstack/internal/interface/middleware"
	"github.com/taskstack/taskstack/pkg/response"
	"github.com/taskstack/taskstack/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			response.Error(c, http.StatusBadRequest, "duplicate_email", "email already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("registration failed")
		response.Error(c, http.StatusInternalServerError, "store_error", "server error during registration", nil)
		return
	}
	response.Success(c, http.StatusCreated, u, "user registered")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "invalid payload", validation.ToDetails(err))
		return
	}
	token, exp, user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusBadRequest, "user_not_found", "user not found", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "bad_password", "invalid password", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error(c, http.StatusInternalServerError, "store_error", "server error during login", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp,
		"user":       user,
	}, "login successful")
}

// Me GET /api/auth/me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			// Valid token for a row that no longer exists.
			response.Error(c, http.StatusNotFound, "user_not_found", "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("profile fetch failed")
		response.Error(c, http.StatusInternalServerError, "store_error", "failed to fetch profile", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "profile")
}

// ListUsers GET /api/auth/users (auth required)
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("user listing failed")
		response.Error(c, http.StatusInternalServerError, "store_error", "failed to fetch users", nil)
		return
	}
	response.Success(c, http.StatusOK, users, "users")
}
