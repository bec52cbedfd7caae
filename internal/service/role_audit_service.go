package service

import (
	"strings"
	"time"

	"github.com/jagoron-news/internal/models"
	"github.com/jagoron-news/internal/repository"
)

// RoleAuditInput one role or policy change
type RoleAuditInput struct {
	OperatorAdminID  uint
	OperatorUsername string
	TargetAdminID    *uint
	TargetUsername   string
	Action           string
	Role             string
	Object           string
	Method           string
	RequestID        string
	Detail           models.JSON
}

// RoleAuditService staff permission change log
type RoleAuditService struct {
	repo repository.RoleAuditLogRepository
}

// NewRoleAuditService creates the role audit service
func NewRoleAuditService(repo repository.RoleAuditLogRepository) *RoleAuditService {
	return &RoleAuditService{repo: repo}
}

// Record stores a change; rows without operator or action are skipped
func (s *RoleAuditService) Record(input RoleAuditInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	if input.OperatorAdminID == 0 || strings.TrimSpace(input.Action) == "" {
		return nil
	}
	return s.repo.Create(&models.RoleAuditLog{
		OperatorAdminID:  input.OperatorAdminID,
		OperatorUsername: strings.TrimSpace(input.OperatorUsername),
		TargetAdminID:    input.TargetAdminID,
		TargetUsername:   strings.TrimSpace(input.TargetUsername),
		Action:           strings.TrimSpace(input.Action),
		Role:             strings.TrimSpace(input.Role),
		Object:           strings.TrimSpace(input.Object),
		Method:           strings.ToUpper(strings.TrimSpace(input.Method)),
		RequestID:        strings.TrimSpace(input.RequestID),
		DetailJSON:       input.Detail,
		CreatedAt:        time.Now().UTC(),
	})
}

// List lists audit rows newest first
func (s *RoleAuditService) List(filter repository.RoleAuditLogListFilter) ([]models.RoleAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.RoleAuditLog{}, 0, nil
	}
	return s.repo.ListAdmin(filter)
}
