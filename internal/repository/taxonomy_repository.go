package repository

import (
	"errors"

	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
)

// TaxonomyRepository category and tag data access
type TaxonomyRepository interface {
	ListCategories() ([]models.Category, error)
	GetCategoryByID(id uint) (*models.Category, error)
	FindCategoriesByIDs(ids []uint) ([]models.Category, error)
	CategoryIDsByName(name string) ([]uint, error)
	CreateCategory(category *models.Category) error
	UpdateCategory(category *models.Category) error
	DeleteCategory(id uint) error
	ListTags(search string) ([]models.Tag, error)
	GetTagByID(id uint) (*models.Tag, error)
	GetTagBySlug(slug string) (*models.Tag, error)
	FindTagsByIDs(ids []uint) ([]models.Tag, error)
	CountTagBySlug(slug string, excludeID *uint) (int64, error)
	CreateTag(tag *models.Tag) error
	UpdateTag(tag *models.Tag) error
	DeleteTag(id uint) error
}

// GormTaxonomyRepository GORM implementation
type GormTaxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates the taxonomy repository
func NewTaxonomyRepository(db *gorm.DB) *GormTaxonomyRepository {
	return &GormTaxonomyRepository{db: db}
}

// ListCategories lists categories by id
func (r *GormTaxonomyRepository) ListCategories() ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := r.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryByID returns nil when absent
func (r *GormTaxonomyRepository) GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// FindCategoriesByIDs loads existing categories among ids
func (r *GormTaxonomyRepository) FindCategoriesByIDs(ids []uint) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if len(ids) == 0 {
		return categories, nil
	}
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryIDsByName ids of every category named name; names are not unique
func (r *GormTaxonomyRepository) CategoryIDsByName(name string) ([]uint, error) {
	ids := make([]uint, 0)
	if name == "" {
		return ids, nil
	}
	if err := r.db.Model(&models.Category{}).Where("name = ?", name).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateCategory inserts a category
func (r *GormTaxonomyRepository) CreateCategory(category *models.Category) error {
	return r.db.Create(category).Error
}

// UpdateCategory saves a category
func (r *GormTaxonomyRepository) UpdateCategory(category *models.Category) error {
	return r.db.Save(category).Error
}

// DeleteCategory removes a category and its article links
func (r *GormTaxonomyRepository) DeleteCategory(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}

// ListTags lists tags by name, optionally filtered
func (r *GormTaxonomyRepository) ListTags(search string) ([]models.Tag, error) {
	query := r.db.Model(&models.Tag{})
	if search != "" {
		condition, count := buildLikeCondition(r.db, "name", "slug")
		query = query.Where(condition, repeatLikeArgs(likePattern(search), count)...)
	}
	tags := make([]models.Tag, 0)
	if err := query.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTagByID returns nil when absent
func (r *GormTaxonomyRepository) GetTagByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetTagBySlug returns nil when absent
func (r *GormTaxonomyRepository) GetTagBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// FindTagsByIDs loads existing tags among ids
func (r *GormTaxonomyRepository) FindTagsByIDs(ids []uint) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// CountTagBySlug counts tags using slug, skipping excludeID
func (r *GormTaxonomyRepository) CountTagBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Tag{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateTag inserts a tag
func (r *GormTaxonomyRepository) CreateTag(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// UpdateTag saves a tag
func (r *GormTaxonomyRepository) UpdateTag(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// DeleteTag removes a tag and its article links
func (r *GormTaxonomyRepository) DeleteTag(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM article_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
}
