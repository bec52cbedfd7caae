package repository

import (
	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeoRepository SEO override data access
type SeoRepository interface {
	GetArticleSeo(articleID uint) (*models.ArticleSeo, error)
	GetSectionSeo(sectionID uint) (*models.SectionSeo, error)
	GetSubsectionSeo(subsectionID uint) (*models.SubsectionSeo, error)
	UpsertArticleSeo(row *models.ArticleSeo) error
	UpsertSectionSeo(row *models.SectionSeo) error
	UpsertSubsectionSeo(row *models.SubsectionSeo) error
}

// GormSeoRepository GORM implementation
type GormSeoRepository struct {
	db *gorm.DB
}

// NewSeoRepository creates the SEO repository
func NewSeoRepository(db *gorm.DB) *GormSeoRepository {
	return &GormSeoRepository{db: db}
}

var seoColumns = []string{
	"meta_title", "meta_description", "meta_author",
	"og_title", "og_description", "og_image", "og_type", "og_site_name",
	"twitter_card", "twitter_title", "twitter_description", "twitter_image",
	"canonical_url",
}

func upsertSeo(db *gorm.DB, ownerColumn string, row interface{}) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: ownerColumn}},
		DoUpdates: clause.AssignmentColumns(seoColumns),
	}).Create(row).Error
}

// GetArticleSeo returns nil when the article has no override
func (r *GormSeoRepository) GetArticleSeo(articleID uint) (*models.ArticleSeo, error) {
	return firstOrNil[models.ArticleSeo](r.db.Where("article_id = ?", articleID))
}

// GetSectionSeo returns nil when the section has no override
func (r *GormSeoRepository) GetSectionSeo(sectionID uint) (*models.SectionSeo, error) {
	return firstOrNil[models.SectionSeo](r.db.Where("section_id = ?", sectionID))
}

// GetSubsectionSeo returns nil when the subsection has no override
func (r *GormSeoRepository) GetSubsectionSeo(subsectionID uint) (*models.SubsectionSeo, error) {
	return firstOrNil[models.SubsectionSeo](r.db.Where("subsection_id = ?", subsectionID))
}

// UpsertArticleSeo writes the article override
func (r *GormSeoRepository) UpsertArticleSeo(row *models.ArticleSeo) error {
	return upsertSeo(r.db, "article_id", row)
}

// UpsertSectionSeo writes the section override
func (r *GormSeoRepository) UpsertSectionSeo(row *models.SectionSeo) error {
	return upsertSeo(r.db, "section_id", row)
}

// UpsertSubsectionSeo writes the subsection override
func (r *GormSeoRepository) UpsertSubsectionSeo(row *models.SubsectionSeo) error {
	return upsertSeo(r.db, "subsection_id", row)
}
