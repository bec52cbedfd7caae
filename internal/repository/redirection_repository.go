package repository

import (
	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
)

// RedirectionRepository url redirection data access
type RedirectionRepository interface {
	ListActive() ([]models.URLRedirection, error)
	List(filter RedirectionListFilter) ([]models.URLRedirection, int64, error)
	GetByID(id uint) (*models.URLRedirection, error)
	CountByOldURL(oldURL string, excludeID *uint) (int64, error)
	Save(redirection *models.URLRedirection) error
	Delete(id uint) error
}

// GormRedirectionRepository GORM implementation
type GormRedirectionRepository struct {
	db *gorm.DB
}

// NewRedirectionRepository creates the redirection repository
func NewRedirectionRepository(db *gorm.DB) *GormRedirectionRepository {
	return &GormRedirectionRepository{db: db}
}

// ListActive lists every active redirection
func (r *GormRedirectionRepository) ListActive() ([]models.URLRedirection, error) {
	rows := make([]models.URLRedirection, 0)
	if err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// List lists redirections newest first
func (r *GormRedirectionRepository) List(filter RedirectionListFilter) ([]models.URLRedirection, int64, error) {
	query := r.db.Model(&models.URLRedirection{})
	if filter.Search != "" {
		condition, count := buildLikeCondition(r.db, "old_url", "new_url")
		query = query.Where(condition, repeatLikeArgs(likePattern(filter.Search), count)...)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query.Order("created_at DESC").Order("id DESC"), filter.Page, filter.PageSize)
	rows := make([]models.URLRedirection, 0)
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetByID returns nil when absent
func (r *GormRedirectionRepository) GetByID(id uint) (*models.URLRedirection, error) {
	return firstOrNil[models.URLRedirection](r.db.Where("id = ?", id))
}

// CountByOldURL counts rows using oldURL, skipping excludeID
func (r *GormRedirectionRepository) CountByOldURL(oldURL string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.URLRedirection{}).Where("old_url = ?", oldURL)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a redirection
func (r *GormRedirectionRepository) Save(redirection *models.URLRedirection) error {
	return r.db.Save(redirection).Error
}

// Delete removes a redirection
func (r *GormRedirectionRepository) Delete(id uint) error {
	return r.db.Delete(&models.URLRedirection{}, id).Error
}
