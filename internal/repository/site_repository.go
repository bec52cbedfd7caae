package repository

import (
	"errors"

	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteRepository site-wide singleton rows: settings, robots, site info, default pages
type SiteRepository interface {
	GetSetting(key string) (*models.Setting, error)
	UpsertSetting(key string, value models.JSON) (*models.Setting, error)

	GetActiveRobots() (*models.RobotsTxt, error)
	ListRobots() ([]models.RobotsTxt, error)
	GetRobotsByID(id uint) (*models.RobotsTxt, error)
	SaveRobots(robots *models.RobotsTxt) error
	DeleteRobots(id uint) error

	GetSiteInfo() (*models.SiteInfo, error)
	SaveSiteInfo(info *models.SiteInfo) error

	ListDefaultPages() ([]models.DefaultPage, error)
	GetDefaultPageByID(id uint) (*models.DefaultPage, error)
	GetDefaultPageByLink(link string) (*models.DefaultPage, error)
	CountDefaultPageByLink(link string, excludeID *uint) (int64, error)
	SaveDefaultPage(page *models.DefaultPage) error
	DeleteDefaultPage(id uint) error
}

// GormSiteRepository GORM implementation
type GormSiteRepository struct {
	db *gorm.DB
}

// NewSiteRepository creates the site repository
func NewSiteRepository(db *gorm.DB) *GormSiteRepository {
	return &GormSiteRepository{db: db}
}

func firstOrNil[T any](query *gorm.DB) (*T, error) {
	var row T
	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetSetting returns nil when the key is unset
func (r *GormSiteRepository) GetSetting(key string) (*models.Setting, error) {
	return firstOrNil[models.Setting](r.db.Where("key = ?", key))
}

// UpsertSetting writes the value under key
func (r *GormSiteRepository) UpsertSetting(key string, value models.JSON) (*models.Setting, error) {
	setting := &models.Setting{Key: key, ValueJSON: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value_json", "updated_at"}),
	}).Create(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

// GetActiveRobots returns the most recently updated active robots row
func (r *GormSiteRepository) GetActiveRobots() (*models.RobotsTxt, error) {
	return firstOrNil[models.RobotsTxt](r.db.Where("is_active = ?", true).Order("updated_at DESC").Order("id DESC"))
}

// ListRobots lists every robots row
func (r *GormSiteRepository) ListRobots() ([]models.RobotsTxt, error) {
	rows := make([]models.RobotsTxt, 0)
	if err := r.db.Order("updated_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRobotsByID returns nil when absent
func (r *GormSiteRepository) GetRobotsByID(id uint) (*models.RobotsTxt, error) {
	return firstOrNil[models.RobotsTxt](r.db.Where("id = ?", id))
}

// SaveRobots saves the row; an active row deactivates every other row
func (r *GormSiteRepository) SaveRobots(robots *models.RobotsTxt) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(robots).Error; err != nil {
			return err
		}
		if !robots.IsActive {
			return nil
		}
		return tx.Model(&models.RobotsTxt{}).
			Where("id <> ? AND is_active = ?", robots.ID, true).
			Update("is_active", false).Error
	})
}

// DeleteRobots removes a robots row
func (r *GormSiteRepository) DeleteRobots(id uint) error {
	return r.db.Delete(&models.RobotsTxt{}, id).Error
}

// GetSiteInfo returns the first site info row, nil when unset
func (r *GormSiteRepository) GetSiteInfo() (*models.SiteInfo, error) {
	return firstOrNil[models.SiteInfo](r.db.Order("id ASC"))
}

// SaveSiteInfo saves the site info row
func (r *GormSiteRepository) SaveSiteInfo(info *models.SiteInfo) error {
	return r.db.Save(info).Error
}

// ListDefaultPages lists default pages by id
func (r *GormSiteRepository) ListDefaultPages() ([]models.DefaultPage, error) {
	pages := make([]models.DefaultPage, 0)
	if err := r.db.Order("id ASC").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// GetDefaultPageByID returns nil when absent
func (r *GormSiteRepository) GetDefaultPageByID(id uint) (*models.DefaultPage, error) {
	return firstOrNil[models.DefaultPage](r.db.Where("id = ?", id))
}

// GetDefaultPageByLink returns nil when absent
func (r *GormSiteRepository) GetDefaultPageByLink(link string) (*models.DefaultPage, error) {
	return firstOrNil[models.DefaultPage](r.db.Where("link = ?", link))
}

// CountDefaultPageByLink counts pages using link, skipping excludeID
func (r *GormSiteRepository) CountDefaultPageByLink(link string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.DefaultPage{}).Where("link = ?", link)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SaveDefaultPage saves a default page
func (r *GormSiteRepository) SaveDefaultPage(page *models.DefaultPage) error {
	return r.db.Save(page).Error
}

// DeleteDefaultPage removes a default page
func (r *GormSiteRepository) DeleteDefaultPage(id uint) error {
	return r.db.Delete(&models.DefaultPage{}, id).Error
}
