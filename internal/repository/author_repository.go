package repository

import (
	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
)

// AuthorRepository author directory data access
type AuthorRepository interface {
	ListCategories(withActiveAuthors bool) ([]models.AuthorCategory, error)
	GetCategoryByID(id uint) (*models.AuthorCategory, error)
	SaveCategory(category *models.AuthorCategory) error
	DeleteCategory(id uint) error
	GetRoleByID(id uint) (*models.AuthorRole, error)
	SaveRole(role *models.AuthorRole) error
	DeleteRole(id uint) error
	List(filter AuthorListFilter) ([]models.Author, error)
	GetByID(id uint) (*models.Author, error)
	GetBySlug(slug string) (*models.Author, error)
	CountBySlug(slug string, excludeID *uint) (int64, error)
	Save(author *models.Author) error
	Delete(id uint) error
}

// GormAuthorRepository GORM implementation
type GormAuthorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates the author repository
func NewAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

// ListCategories lists categories with roles by priority; authors are preloaded on request
func (r *GormAuthorRepository) ListCategories(withActiveAuthors bool) ([]models.AuthorCategory, error) {
	query := r.db.Model(&models.AuthorCategory{}).
		Preload("Roles", func(db *gorm.DB) *gorm.DB {
			return db.Order("priority ASC").Order("id ASC")
		})
	if withActiveAuthors {
		query = query.Preload("Roles.Authors", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("created_at ASC").Order("id ASC")
		})
	}
	rows := make([]models.AuthorCategory, 0)
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetCategoryByID returns nil when absent
func (r *GormAuthorRepository) GetCategoryByID(id uint) (*models.AuthorCategory, error) {
	return firstOrNil[models.AuthorCategory](r.db.Where("id = ?", id))
}

// SaveCategory creates or updates a category
func (r *GormAuthorRepository) SaveCategory(category *models.AuthorCategory) error {
	return r.db.Omit("Roles").Save(category).Error
}

// DeleteCategory removes a category with its roles and authors
func (r *GormAuthorRepository) DeleteCategory(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Author{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.AuthorRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.AuthorCategory{}, id).Error
	})
}

// GetRoleByID returns nil when absent
func (r *GormAuthorRepository) GetRoleByID(id uint) (*models.AuthorRole, error) {
	return firstOrNil[models.AuthorRole](r.db.Where("id = ?", id))
}

// SaveRole creates or updates a role
func (r *GormAuthorRepository) SaveRole(role *models.AuthorRole) error {
	return r.db.Omit("Authors").Save(role).Error
}

// DeleteRole removes a role and detaches its authors
func (r *GormAuthorRepository) DeleteRole(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Author{}).Where("role_id = ?", id).Update("role_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.AuthorRole{}, id).Error
	})
}

// List lists authors oldest first
func (r *GormAuthorRepository) List(filter AuthorListFilter) ([]models.Author, error) {
	query := r.db.Model(&models.Author{})
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	rows := make([]models.Author, 0)
	if err := query.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns nil when absent
func (r *GormAuthorRepository) GetByID(id uint) (*models.Author, error) {
	return firstOrNil[models.Author](r.db.Where("id = ?", id))
}

// GetBySlug returns nil when absent
func (r *GormAuthorRepository) GetBySlug(slug string) (*models.Author, error) {
	return firstOrNil[models.Author](r.db.Where("slug = ?", slug))
}

// CountBySlug counts authors using slug, skipping excludeID
func (r *GormAuthorRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Author{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an author
func (r *GormAuthorRepository) Save(author *models.Author) error {
	return r.db.Save(author).Error
}

// Delete removes an author
func (r *GormAuthorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Author{}, id).Error
}
