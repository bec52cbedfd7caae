package repository

import (
	"time"

	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
)

// SpecialRepository home page special block data access
type SpecialRepository interface {
	ListTitles(activeOnly bool) ([]models.SpecialTitle, error)
	GetTitleByID(id uint) (*models.SpecialTitle, error)
	SaveTitle(title *models.SpecialTitle) error
	DeleteTitle(id uint) error
	ListArticles(titleID uint, mainNews *bool, now time.Time, limit int) ([]models.SpecialArticle, error)
	ListAllArticles(titleID uint) ([]models.SpecialArticle, error)
	PinnedArticleIDs(activeOnly bool) ([]uint, error)
	GetArticleByID(id uint) (*models.SpecialArticle, error)
	SaveArticle(row *models.SpecialArticle) error
	DeleteArticle(id uint) error
}

// GormSpecialRepository GORM implementation
type GormSpecialRepository struct {
	db *gorm.DB
}

// NewSpecialRepository creates the special block repository
func NewSpecialRepository(db *gorm.DB) *GormSpecialRepository {
	return &GormSpecialRepository{db: db}
}

// ListTitles lists special block headings newest first
func (r *GormSpecialRepository) ListTitles(activeOnly bool) ([]models.SpecialTitle, error) {
	query := r.db.Model(&models.SpecialTitle{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	rows := make([]models.SpecialTitle, 0)
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTitleByID returns nil when absent
func (r *GormSpecialRepository) GetTitleByID(id uint) (*models.SpecialTitle, error) {
	return firstOrNil[models.SpecialTitle](r.db.Where("id = ?", id))
}

// SaveTitle creates or updates a heading
func (r *GormSpecialRepository) SaveTitle(title *models.SpecialTitle) error {
	return r.db.Save(title).Error
}

// DeleteTitle removes a heading and its pinned rows
func (r *GormSpecialRepository) DeleteTitle(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("special_title_id = ?", id).Delete(&models.SpecialArticle{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SpecialTitle{}, id).Error
	})
}

// ListArticles lists pinned rows whose article is visible at now, newest first
func (r *GormSpecialRepository) ListArticles(titleID uint, mainNews *bool, now time.Time, limit int) ([]models.SpecialArticle, error) {
	query := r.db.Model(&models.SpecialArticle{}).
		Joins("JOIN articles ON articles.id = special_articles.article_id").
		Scopes(visibleAt(now)).
		Where("special_articles.special_title_id = ?", titleID)
	if mainNews != nil {
		query = query.Where("special_articles.main_news = ?", *mainNews)
	}
	query = query.
		Order("special_articles.created_at DESC").
		Order("special_articles.id DESC").
		Preload("Article.Section").
		Preload("Article.Subsection")
	query = applyLimitOffset(query, limit, 0)

	rows := make([]models.SpecialArticle, 0)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAllArticles lists every pinned row of a heading, scheduled ones included
func (r *GormSpecialRepository) ListAllArticles(titleID uint) ([]models.SpecialArticle, error) {
	rows := make([]models.SpecialArticle, 0)
	err := r.db.Where("special_title_id = ?", titleID).
		Order("created_at DESC").
		Preload("Article").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PinnedArticleIDs returns the distinct article ids pinned to headings
func (r *GormSpecialRepository) PinnedArticleIDs(activeOnly bool) ([]uint, error) {
	query := r.db.Model(&models.SpecialArticle{})
	if activeOnly {
		query = query.
			Joins("JOIN special_titles ON special_titles.id = special_articles.special_title_id").
			Where("special_titles.is_active = ?", true)
	}
	ids := make([]uint, 0)
	if err := query.Distinct().Pluck("special_articles.article_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// GetArticleByID returns nil when absent
func (r *GormSpecialRepository) GetArticleByID(id uint) (*models.SpecialArticle, error) {
	return firstOrNil[models.SpecialArticle](r.db.Preload("Article").Where("id = ?", id))
}

// SaveArticle creates or updates a pinned row
func (r *GormSpecialRepository) SaveArticle(row *models.SpecialArticle) error {
	return r.db.Omit("SpecialTitle", "Article").Save(row).Error
}

// DeleteArticle removes a pinned row
func (r *GormSpecialRepository) DeleteArticle(id uint) error {
	return r.db.Delete(&models.SpecialArticle{}, id).Error
}
