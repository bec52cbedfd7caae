package repository

import (
	"errors"

	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
)

// ShortURLRepository short url data access
type ShortURLRepository interface {
	GetByCode(code string) (*models.ShortURL, error)
	GetByOriginalURL(originalURL string) (*models.ShortURL, error)
	CountByCode(code string) (int64, error)
	Create(shortURL *models.ShortURL) error
	IncrementClicks(id uint) error
	List(filter ShortURLListFilter) ([]models.ShortURL, int64, error)
	Delete(id uint) error
}

// GormShortURLRepository GORM implementation
type GormShortURLRepository struct {
	db *gorm.DB
}

// NewShortURLRepository creates the short url repository
func NewShortURLRepository(db *gorm.DB) *GormShortURLRepository {
	return &GormShortURLRepository{db: db}
}

// GetByCode returns nil when absent
func (r *GormShortURLRepository) GetByCode(code string) (*models.ShortURL, error) {
	var shortURL models.ShortURL
	if err := r.db.Where("short_code = ?", code).First(&shortURL).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shortURL, nil
}

// GetByOriginalURL returns the oldest short url for originalURL, nil when absent
func (r *GormShortURLRepository) GetByOriginalURL(originalURL string) (*models.ShortURL, error) {
	var shortURL models.ShortURL
	if err := r.db.Where("original_url = ?", originalURL).Order("id ASC").First(&shortURL).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shortURL, nil
}

// CountByCode counts rows using code
func (r *GormShortURLRepository) CountByCode(code string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.ShortURL{}).Where("short_code = ?", code).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a short url
func (r *GormShortURLRepository) Create(shortURL *models.ShortURL) error {
	return r.db.Create(shortURL).Error
}

// IncrementClicks adds one click without reading the row
func (r *GormShortURLRepository) IncrementClicks(id uint) error {
	return r.db.Model(&models.ShortURL{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1)).Error
}

// List lists short urls newest first
func (r *GormShortURLRepository) List(filter ShortURLListFilter) ([]models.ShortURL, int64, error) {
	query := r.db.Model(&models.ShortURL{})
	if filter.Search != "" {
		condition, count := buildLikeCondition(r.db, "original_url", "short_code")
		query = query.Where(condition, repeatLikeArgs(likePattern(filter.Search), count)...)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize)
	items := make([]models.ShortURL, 0)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Delete removes a short url
func (r *GormShortURLRepository) Delete(id uint) error {
	return r.db.Delete(&models.ShortURL{}, id).Error
}
