package admin

import (
	"strings"
	"time"

	handlershared "github.com/jagoron-news/internal/http/handlers/shared"
	"github.com/jagoron-news/internal/http/response"
	"github.com/jagoron-news/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuthzAuditLogs role and policy change history
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)

	operatorAdminID, ok := handlershared.OptionalUintQuery(c, "operator_admin_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid operator_admin_id", nil)
		return
	}
	targetAdminID, ok := handlershared.OptionalUintQuery(c, "target_admin_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid target_admin_id", nil)
		return
	}
	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid created_from", nil)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid created_to", nil)
		return
	}

	filter := repository.RoleAuditLogListFilter{
		Page:        page,
		PageSize:    pageSize,
		Action:      strings.TrimSpace(c.Query("action")),
		Role:        strings.TrimSpace(c.Query("role")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}
	if operatorAdminID != nil {
		filter.OperatorAdminID = *operatorAdminID
	}
	if targetAdminID != nil {
		filter.TargetAdminID = *targetAdminID
	}

	items, total, err := h.RoleAuditService.List(filter)
	if err != nil {
		respondServiceError(c, err, "audit log list failed")
		return
	}
	response.SuccessWithPage(c, items, response.NewPagination(page, pageSize, total))
}

// parseTimeNullable accepts RFC3339 or a plain date
func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
