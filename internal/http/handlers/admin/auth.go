package admin

import (
	"errors"
	"time"

	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest staff login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse issued token and the account summary
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// AdminLogin checks credentials and issues a JWT
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	logger.Infow("admin_login", "admin_id", admin.ID, "username", admin.Username, "client_ip", c.ClientIP())
	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":           admin.ID,
			"username":     admin.Username,
			"display_name": admin.DisplayName,
			"is_super":     admin.IsSuper,
		},
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// ChangePasswordRequest password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword changes the caller's password and revokes its tokens
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err, "password update failed")
		return
	}
	response.Success(c, nil)
}

// GetAdminMe current account with its roles and effective policies
func (h *Handler) GetAdminMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AuthService.GetAdmin(adminID)
	if err != nil {
		respondServiceError(c, err, "profile fetch failed")
		return
	}
	roles, err := h.AuthzService.AdminRoles(adminID)
	if err != nil {
		respondServiceError(c, err, "profile fetch failed")
		return
	}
	policies, err := h.AuthzService.AdminPolicies(adminID)
	if err != nil {
		respondServiceError(c, err, "profile fetch failed")
		return
	}
	response.Success(c, gin.H{
		"admin":    admin,
		"roles":    roles,
		"policies": policies,
	})
}
