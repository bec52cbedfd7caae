package admin

import (
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

type adminPayload struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	Password    *string `json:"password"`
	IsSuper     *bool   `json:"is_super"`
}

func (p adminPayload) toInput() service.AdminInput {
	return service.AdminInput{
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Password:    p.Password,
		IsSuper:     p.IsSuper,
	}
}

// ListAdmins staff accounts
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.AuthService.ListAdmins()
	if err != nil {
		respondServiceError(c, err, "admin list failed")
		return
	}
	response.Success(c, admins)
}

// CreateAdmin creates a staff account
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req adminPayload
	if !bindJSON(c, &req) {
		return
	}
	admin, err := h.AuthService.CreateAdmin(req.toInput())
	if err != nil {
		respondServiceError(c, err, "admin create failed")
		return
	}

	h.recordRoleAudit(c, service.RoleAuditInput{
		TargetAdminID:  &admin.ID,
		TargetUsername: admin.Username,
		Action:         "admin_create",
		Detail:         models.JSON{"is_super": admin.IsSuper},
	})
	logger.Infow("admin_account_created",
		"operator_admin_id", currentAdminID(c),
		"target_admin_id", admin.ID,
		"is_super", admin.IsSuper,
	)
	response.Success(c, admin)
}

// UpdateAdmin updates a staff account
func (h *Handler) UpdateAdmin(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req adminPayload
	if !bindJSON(c, &req) {
		return
	}
	admin, err := h.AuthService.UpdateAdmin(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "admin update failed")
		return
	}

	h.recordRoleAudit(c, service.RoleAuditInput{
		TargetAdminID:  &admin.ID,
		TargetUsername: admin.Username,
		Action:         "admin_update",
		Detail: models.JSON{
			"is_super":         admin.IsSuper,
			"password_changed": req.Password != nil && *req.Password != "",
		},
	})
	response.Success(c, admin)
}

// DeleteAdmin removes a staff account and its role bindings
func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	operatorID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AuthService.GetAdmin(id)
	if err != nil {
		respondServiceError(c, err, "admin delete failed")
		return
	}
	if err := h.AuthService.DeleteAdmin(id, operatorID); err != nil {
		respondServiceError(c, err, "admin delete failed")
		return
	}
	if err := h.AuthzService.SetAdminRoles(id, nil); err != nil {
		logger.Warnw("admin_account_roles_cleanup_failed", "target_admin_id", id, "error", err)
	}

	h.recordRoleAudit(c, service.RoleAuditInput{
		TargetAdminID:  &id,
		TargetUsername: admin.Username,
		Action:         "admin_delete",
	})
	response.Success(c, nil)
}
