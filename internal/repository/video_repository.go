package repository

import (
	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
)

// VideoRepository video post data access
type VideoRepository interface {
	List(filter VideoListFilter) ([]models.VideoPost, int64, error)
	GetByID(id uint) (*models.VideoPost, error)
	Save(video *models.VideoPost) error
	Delete(id uint) error
}

// GormVideoRepository GORM implementation
type GormVideoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates the video repository
func NewVideoRepository(db *gorm.DB) *GormVideoRepository {
	return &GormVideoRepository{db: db}
}

// List lists videos newest first
func (r *GormVideoRepository) List(filter VideoListFilter) ([]models.VideoPost, int64, error) {
	query := r.db.Model(&models.VideoPost{})
	if filter.SectionID != nil {
		query = query.Where("section_id = ?", *filter.SectionID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query.Order("created_at DESC").Order("id DESC"), filter.Page, filter.PageSize)
	rows := make([]models.VideoPost, 0)
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetByID returns nil when absent
func (r *GormVideoRepository) GetByID(id uint) (*models.VideoPost, error) {
	return firstOrNil[models.VideoPost](r.db.Where("id = ?", id))
}

// Save creates or updates a video
func (r *GormVideoRepository) Save(video *models.VideoPost) error {
	return r.db.Save(video).Error
}

// Delete removes a video
func (r *GormVideoRepository) Delete(id uint) error {
	return r.db.Delete(&models.VideoPost{}, id).Error
}
