package repository

import (
	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
)

// RoleAuditLogRepository role audit data access
type RoleAuditLogRepository interface {
	Create(log *models.RoleAuditLog) error
	ListAdmin(filter RoleAuditLogListFilter) ([]models.RoleAuditLog, int64, error)
}

// GormRoleAuditLogRepository GORM implementation
type GormRoleAuditLogRepository struct {
	db *gorm.DB
}

// NewRoleAuditLogRepository creates the role audit repository
func NewRoleAuditLogRepository(db *gorm.DB) *GormRoleAuditLogRepository {
	return &GormRoleAuditLogRepository{db: db}
}

// Create stores one audit row
func (r *GormRoleAuditLogRepository) Create(log *models.RoleAuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// ListAdmin lists audit rows newest first
func (r *GormRoleAuditLogRepository) ListAdmin(filter RoleAuditLogListFilter) ([]models.RoleAuditLog, int64, error) {
	query := r.db.Model(&models.RoleAuditLog{})
	if filter.OperatorAdminID != 0 {
		query = query.Where("operator_admin_id = ?", filter.OperatorAdminID)
	}
	if filter.TargetAdminID != 0 {
		query = query.Where("target_admin_id = ?", filter.TargetAdminID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	logs := make([]models.RoleAuditLog, 0)
	if err := applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
