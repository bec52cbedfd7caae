package repository

import (
	"errors"

	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository reader review data access
type ReviewRepository interface {
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	GetByID(id uint) (*models.Review, error)
	Create(review *models.Review) error
	Delete(id uint) error
}

// GormReviewRepository GORM implementation
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates the review repository
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// List lists reviews newest first
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if filter.ArticleID != 0 {
		query = query.Where("article_id = ?", filter.ArticleID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query.Order("created_at DESC").Order("id DESC"), filter.Page, filter.PageSize)
	reviews := make([]models.Review, 0)
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// GetByID returns nil when absent
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// Create inserts a review
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Delete removes a review
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}
