package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Nabz863/group17-freelance-sd-sub000/config"
	"github.com/Nabz863/group17-freelance-sd-sub000/middleware"
	"github.com/Nabz863/group17-freelance-sd-sub000/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	config *config.Config
	users  *service.UserService
}

func NewAuthHandler(cfg *config.Config, users *service.UserService) *AuthHandler {
	return &AuthHandler{config: cfg, users: users}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// Signup registers a new client or freelancer account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.Signup(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"role":     user.Role,
		"approval": user.Approval,
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrNotApproved) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "Account is not approved",
				"approval": user.Approval,
			})
			return
		}
		respondError(c, err)
		return
	}

	token, expiresAt, err := middleware.GenerateToken(user.ID, user.Role, user.Name, &h.config.Auth)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		UserID:    user.ID,
		Name:      user.Name,
		Role:      user.Role,
	})
}

// GetCurrentUser returns the current user info
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": middleware.GetUserID(c),
		"name":    middleware.GetName(c),
		"role":    middleware.GetRole(c),
	})
}
