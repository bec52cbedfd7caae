package admin

import (
	"errors"
	"net/url"
	"strings"

	"github.com/jagoron-news/internal/authz"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/logger"
	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/service"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// respondAuthzError role input problems are bad requests unless the enforcer is down
func respondAuthzError(c *gin.Context, err error, fallbackMsg string) {
	if errors.Is(err, authz.ErrUnavailable) {
		respondError(c, response.CodeInternal, "authorization is unavailable", err)
		return
	}
	respondError(c, response.CodeBadRequest, fallbackMsg, err)
}

// ListAuthzRoles every role name
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondServiceError(c, err, "role list failed")
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole creates an empty role
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if !bindJSON(c, &req) {
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondAuthzError(c, err, "invalid role")
		return
	}
	h.recordRoleAudit(c, service.RoleAuditInput{Action: "role_create", Role: role})
	response.Success(c, gin.H{"role": role})
}

// DeleteAuthzRole drops a role with its policies and members
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondAuthzError(c, err, "invalid role")
		return
	}
	h.recordRoleAudit(c, service.RoleAuditInput{Action: "role_delete", Role: role})
	logger.Infow("admin_authz_role_deleted", "operator_admin_id", currentAdminID(c), "role", role)
	response.Success(c, nil)
}

// GetAuthzRolePolicies direct rules of a role
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.RolePolicies(decodeRoleParam(c.Param("role")))
	if err != nil {
		respondAuthzError(c, err, "invalid role")
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy adds an allow rule to a role
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if !bindJSON(c, &req) {
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondAuthzError(c, err, "invalid policy")
		return
	}
	h.recordRoleAudit(c, service.RoleAuditInput{
		Action: "policy_grant",
		Role:   req.Role,
		Object: authz.NormalizeObject(req.Object),
		Method: authz.NormalizeAction(req.Action),
	})
	response.Success(c, nil)
}

// RevokeAuthzPolicy removes an allow rule from a role
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if !bindJSON(c, &req) {
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondAuthzError(c, err, "invalid policy")
		return
	}
	h.recordRoleAudit(c, service.RoleAuditInput{
		Action: "policy_revoke",
		Role:   req.Role,
		Object: authz.NormalizeObject(req.Object),
		Method: authz.NormalizeAction(req.Action),
	})
	response.Success(c, nil)
}

// GetAuthzAdminRoles roles bound to a staff account
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.AuthService.GetAdmin(adminID); err != nil {
		respondServiceError(c, err, "admin roles fetch failed")
		return
	}
	roles, err := h.AuthzService.AdminRoles(adminID)
	if err != nil {
		respondServiceError(c, err, "admin roles fetch failed")
		return
	}
	response.Success(c, roles)
}

// SetAuthzAdminRoles replaces the roles of a staff account
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	admin, err := h.AuthService.GetAdmin(adminID)
	if err != nil {
		respondServiceError(c, err, "admin roles update failed")
		return
	}
	var req authzSetAdminRolesPayload
	if !bindJSON(c, &req) {
		return
	}
	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondAuthzError(c, err, "invalid role")
		return
	}

	h.recordRoleAudit(c, service.RoleAuditInput{
		TargetAdminID:  &adminID,
		TargetUsername: admin.Username,
		Action:         "admin_roles_update",
		Detail:         models.JSON{"roles": req.Roles},
	})
	logger.Infow("admin_authz_admin_roles_updated",
		"operator_admin_id", currentAdminID(c),
		"target_admin_id", adminID,
		"roles", req.Roles,
	)
	response.Success(c, nil)
}

// recordRoleAudit fills the operator from the request; failures only warn
func (h *Handler) recordRoleAudit(c *gin.Context, input service.RoleAuditInput) {
	if h == nil || h.RoleAuditService == nil {
		return
	}
	input.OperatorAdminID = currentAdminID(c)
	input.OperatorUsername = currentUsername(c)
	input.RequestID = currentRequestID(c)
	if input.OperatorAdminID == 0 || strings.TrimSpace(input.Action) == "" {
		return
	}
	if err := h.RoleAuditService.Record(input); err != nil {
		logger.Warnw("admin_role_audit_record_failed",
			"error", err,
			"action", input.Action,
			"operator_admin_id", input.OperatorAdminID,
		)
	}
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
