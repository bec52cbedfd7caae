package repository

import (
	"time"

	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
)

// AdminRepository newsroom staff account data access
type AdminRepository interface {
	GetByUsername(username string) (*models.Admin, error)
	GetByID(id uint) (*models.Admin, error)
	FindByIDs(ids []uint) ([]models.Admin, error)
	List() ([]models.Admin, error)
	Count() (int64, error)
	Create(admin *models.Admin) error
	Update(admin *models.Admin) error
	TouchLogin(id uint, at time.Time) error
	Delete(id uint) error
}

// GormAdminRepository GORM implementation
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates the admin repository
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// GetByUsername returns nil when absent
func (r *GormAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	return firstOrNil[models.Admin](r.db.Where("username = ?", username))
}

// GetByID returns nil when absent or soft deleted
func (r *GormAdminRepository) GetByID(id uint) (*models.Admin, error) {
	if id == 0 {
		return nil, nil
	}
	return firstOrNil[models.Admin](r.db.Where("id = ?", id))
}

// FindByIDs loads admins among ids, used to label reporter stats
func (r *GormAdminRepository) FindByIDs(ids []uint) ([]models.Admin, error) {
	admins := make([]models.Admin, 0)
	if len(ids) == 0 {
		return admins, nil
	}
	if err := r.db.Unscoped().Where("id IN ?", ids).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// List lists admins without credentials
func (r *GormAdminRepository) List() ([]models.Admin, error) {
	admins := make([]models.Admin, 0)
	err := r.db.
		Select("id", "username", "display_name", "is_super", "last_login_at", "created_at").
		Order("id ASC").
		Find(&admins).Error
	if err != nil {
		return nil, err
	}
	return admins, nil
}

// Count counts live admins
func (r *GormAdminRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts an admin
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// Update saves an admin
func (r *GormAdminRepository) Update(admin *models.Admin) error {
	return r.db.Save(admin).Error
}

// TouchLogin records the last login time
func (r *GormAdminRepository) TouchLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).UpdateColumn("last_login_at", at.UTC()).Error
}

// Delete soft deletes an admin
func (r *GormAdminRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Admin{}, id).Error
}
