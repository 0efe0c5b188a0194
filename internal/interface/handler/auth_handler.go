package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Authenticator registers and signs in users
type Authenticator interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error)
}

// AuthHandler serves account registration and login
type AuthHandler struct {
	auth   Authenticator
	logger logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth Authenticator, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, http.StatusBadRequest, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrUserExists) {
			respondError(c, http.StatusConflict, CodeUserExists, "An account with this email already exists")
			return
		}
		h.logger.Error("Registration failed", "error", err)
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Something went wrong")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"createdAt": user.CreatedAt,
	}})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, http.StatusBadRequest, err)
		return
	}

	token, expiresAt, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, CodeUnauthorized, "Invalid email or password")
			return
		}
		h.logger.Error("Login failed", "error", err)
		respondError(c, http.StatusInternalServerError, CodeInternalError, "Something went wrong")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": expiresAt.UTC(),
	})
}
