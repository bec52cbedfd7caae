package repository

import (
	"errors"

	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
)

// SectionRepository section and subsection data access
type SectionRepository interface {
	ListSections(filter SectionListFilter) ([]models.Section, error)
	GetSectionByID(id uint) (*models.Section, error)
	CreateSection(section *models.Section) error
	UpdateSection(section *models.Section) error
	DeleteSection(id uint) error
	CountSectionArticles(sectionID uint) (int64, error)
	ListSubsections(sectionID uint, activeOnly bool) ([]models.Subsection, error)
	GetSubsectionByID(id uint) (*models.Subsection, error)
	CreateSubsection(subsection *models.Subsection) error
	UpdateSubsection(subsection *models.Subsection) error
	DeleteSubsection(id uint) error
	CountSubsectionArticles(subsectionID uint) (int64, error)
}

// GormSectionRepository GORM implementation
type GormSectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository creates the section repository
func NewSectionRepository(db *gorm.DB) *GormSectionRepository {
	return &GormSectionRepository{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("id ASC")
}

// ListSections lists sections ordered by position
func (r *GormSectionRepository) ListSections(filter SectionListFilter) ([]models.Section, error) {
	query := r.db.Model(&models.Section{}).Scopes(byPosition)
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.WithSubsections {
		query = query.Preload("Subsections", func(db *gorm.DB) *gorm.DB {
			if filter.ActiveOnly {
				db = db.Where("is_active = ?", true)
			}
			return byPosition(db)
		})
	}
	sections := make([]models.Section, 0)
	if err := query.Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// GetSectionByID returns nil when the section does not exist
func (r *GormSectionRepository) GetSectionByID(id uint) (*models.Section, error) {
	if id == 0 {
		return nil, nil
	}
	var section models.Section
	if err := r.db.First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &section, nil
}

// CreateSection inserts a section
func (r *GormSectionRepository) CreateSection(section *models.Section) error {
	return r.db.Omit("Subsections").Create(section).Error
}

// UpdateSection saves a section
func (r *GormSectionRepository) UpdateSection(section *models.Section) error {
	return r.db.Omit("Subsections").Save(section).Error
}

// DeleteSection removes a section, its subsections and their SEO rows
func (r *GormSectionRepository) DeleteSection(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		subIDs := tx.Model(&models.Subsection{}).Select("id").Where("section_id = ?", id)
		if err := tx.Where("subsection_id IN (?)", subIDs).Delete(&models.SubsectionSeo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id = ?", id).Delete(&models.Subsection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id = ?", id).Delete(&models.SectionSeo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Section{}, id).Error
	})
}

// CountSectionArticles counts every article in the section
func (r *GormSectionRepository) CountSectionArticles(sectionID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Article{}).Where("section_id = ?", sectionID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListSubsections lists the subsections of a section ordered by position
func (r *GormSectionRepository) ListSubsections(sectionID uint, activeOnly bool) ([]models.Subsection, error) {
	query := r.db.Model(&models.Subsection{}).Where("section_id = ?", sectionID).Scopes(byPosition)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	subsections := make([]models.Subsection, 0)
	if err := query.Find(&subsections).Error; err != nil {
		return nil, err
	}
	return subsections, nil
}

// GetSubsectionByID returns the subsection with its section, nil when absent
func (r *GormSectionRepository) GetSubsectionByID(id uint) (*models.Subsection, error) {
	if id == 0 {
		return nil, nil
	}
	var subsection models.Subsection
	if err := r.db.Preload("Section").First(&subsection, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subsection, nil
}

// CreateSubsection inserts a subsection
func (r *GormSectionRepository) CreateSubsection(subsection *models.Subsection) error {
	return r.db.Omit("Section").Create(subsection).Error
}

// UpdateSubsection saves a subsection
func (r *GormSectionRepository) UpdateSubsection(subsection *models.Subsection) error {
	return r.db.Omit("Section").Save(subsection).Error
}

// DeleteSubsection removes a subsection and its SEO row
func (r *GormSectionRepository) DeleteSubsection(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subsection_id = ?", id).Delete(&models.SubsectionSeo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Subsection{}, id).Error
	})
}

// CountSubsectionArticles counts every article in the subsection
func (r *GormSectionRepository) CountSubsectionArticles(subsectionID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Article{}).Where("subsection_id = ?", subsectionID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
