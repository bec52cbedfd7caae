package repository

import (
	"errors"
	"time"

	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleRepository article data access
type ArticleRepository interface {
	GetByID(id uint) (*models.Article, error)
	FindVisible(filter ArticleVisibleFilter) ([]models.Article, error)
	CountVisible(filter ArticleVisibleFilter) (int64, error)
	ListAdmin(filter ArticleAdminFilter) ([]models.Article, int64, error)
	ListScheduledBetween(from, to time.Time) ([]models.Article, error)
	Create(article *models.Article) error
	Update(article *models.Article) error
	Delete(id uint) error
	IncrementViewAtomic(articleID uint) error
	CountViews(articleID uint) (int64, error)
	MostViewed(filter MostViewedFilter) ([]models.Article, error)
	TagsLastModified(now time.Time) (map[uint]time.Time, error)
	CategoriesLastModified(now time.Time) (map[uint]time.Time, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormArticleRepository
}

// GormArticleRepository GORM implementation
type GormArticleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates the article repository
func NewArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// WithTx binds the repository to a transaction
func (r *GormArticleRepository) WithTx(tx *gorm.DB) *GormArticleRepository {
	if tx == nil {
		return r
	}
	return &GormArticleRepository{db: tx}
}

// Transaction runs fn in a transaction
func (r *GormArticleRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// visibleAt restricts a query to articles whose schedule has passed.
func visibleAt(now time.Time) func(*gorm.DB) *gorm.DB {
	if now.IsZero() {
		now = time.Now()
	}
	cutoff := now.UTC()
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(articles.scheduled_publish_at IS NULL OR articles.scheduled_publish_at <= ?)", cutoff)
	}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("articles.created_at DESC").Order("articles.id DESC")
}

func latestUpdatedFirst(db *gorm.DB) *gorm.DB {
	return db.Order("articles.updated_at DESC").Order("articles.id DESC")
}

// GetByID loads an article with section, subsection, categories and tags.
// Visibility is not applied here.
func (r *GormArticleRepository) GetByID(id uint) (*models.Article, error) {
	if id == 0 {
		return nil, nil
	}
	var article models.Article
	err := r.db.
		Preload("Section").
		Preload("Subsection").
		Preload("Categories").
		Preload("Tags").
		First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func (r *GormArticleRepository) visibleQuery(filter ArticleVisibleFilter) *gorm.DB {
	query := r.db.Model(&models.Article{}).Scopes(visibleAt(filter.Now))
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("articles.id IN (?)",
			r.db.Table("article_categories").Select("article_id").Where("category_id IN ?", filter.CategoryIDs))
	}
	if filter.SectionID != nil {
		query = query.Where("articles.section_id = ?", *filter.SectionID)
	}
	if filter.SubsectionID != nil {
		query = query.Where("articles.subsection_id = ?", *filter.SubsectionID)
	}
	if filter.TagID != nil {
		query = query.Where("articles.id IN (?)",
			r.db.Table("article_tags").Select("article_id").Where("tag_id = ?", *filter.TagID))
	}
	if len(filter.IDs) > 0 {
		query = query.Where("articles.id IN ?", filter.IDs)
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where("articles.id NOT IN ?", filter.ExcludeIDs)
	}
	if filter.CreatedSince != nil {
		query = query.Where("articles.created_at >= ?", filter.CreatedSince.UTC())
	}
	if filter.Search != "" {
		condition, count := buildLikeCondition(r.db, "articles.title")
		query = query.Where(condition, repeatLikeArgs(likePattern(filter.Search), count)...)
	}
	return query
}

// FindVisible lists visible articles matching filter, newest first
func (r *GormArticleRepository) FindVisible(filter ArticleVisibleFilter) ([]models.Article, error) {
	query := r.visibleQuery(filter)
	if filter.LatestUpdated {
		query = query.Scopes(latestUpdatedFirst)
	} else {
		query = query.Scopes(newestFirst)
	}
	if filter.WithRelations {
		query = query.Preload("Section").Preload("Subsection")
	}
	if filter.WithTaxonomy {
		query = query.Preload("Categories").Preload("Tags")
	}
	query = applyLimitOffset(query, filter.Limit, filter.Offset)

	articles := make([]models.Article, 0)
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// CountVisible counts visible articles matching filter; Limit and Offset are ignored
func (r *GormArticleRepository) CountVisible(filter ArticleVisibleFilter) (int64, error) {
	var total int64
	if err := r.visibleQuery(filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListAdmin lists every article including scheduled ones
func (r *GormArticleRepository) ListAdmin(filter ArticleAdminFilter) ([]models.Article, int64, error) {
	query := r.db.Model(&models.Article{})
	if filter.SectionID != nil {
		query = query.Where("articles.section_id = ?", *filter.SectionID)
	}
	if filter.SubsectionID != nil {
		query = query.Where("articles.subsection_id = ?", *filter.SubsectionID)
	}
	if filter.Search != "" {
		condition, count := buildLikeCondition(r.db, "articles.title", "articles.reporter")
		query = query.Where(condition, repeatLikeArgs(likePattern(filter.Search), count)...)
	}
	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}
	switch filter.Status {
	case "scheduled":
		query = query.Where("articles.scheduled_publish_at > ?", now.UTC())
	case "published":
		query = query.Scopes(visibleAt(now))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query.Scopes(newestFirst), filter.Page, filter.PageSize)
	articles := make([]models.Article, 0)
	if err := query.Preload("Section").Preload("Subsection").Find(&articles).Error; err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// ListScheduledBetween lists articles whose schedule falls in (from, to]
func (r *GormArticleRepository) ListScheduledBetween(from, to time.Time) ([]models.Article, error) {
	articles := make([]models.Article, 0)
	err := r.db.
		Where("scheduled_publish_at > ? AND scheduled_publish_at <= ?", from.UTC(), to.UTC()).
		Order("scheduled_publish_at ASC").
		Preload("Section").
		Preload("Subsection").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// Create inserts the article with its categories and tags
func (r *GormArticleRepository) Create(article *models.Article) error {
	return r.db.Omit("Section", "Subsection").Create(article).Error
}

// Update saves article columns and replaces categories and tags.
// created_at and created_by_id are never overwritten.
func (r *GormArticleRepository) Update(article *models.Article) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(article).
			Select("*").
			Omit("id", "created_at", "created_by_id", "Section", "Subsection", "Categories", "Tags").
			Updates(article).Error; err != nil {
			return err
		}
		if err := replaceAssociation(tx.Model(article).Association("Categories"), article.Categories, len(article.Categories)); err != nil {
			return err
		}
		return replaceAssociation(tx.Model(article).Association("Tags"), article.Tags, len(article.Tags))
	})
}

func replaceAssociation(association *gorm.Association, values interface{}, count int) error {
	if count == 0 {
		return association.Clear()
	}
	return association.Replace(values)
}

// Delete removes the article and every dependent row
func (r *GormArticleRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		dependents := []interface{}{
			&models.ArticleView{},
			&models.ArticleReaction{},
			&models.Review{},
			&models.ArticleSeo{},
			&models.SpecialArticle{},
		}
		for _, model := range dependents {
			if err := tx.Where("article_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		for _, table := range []string{"article_categories", "article_tags"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE article_id = ?", id).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Article{}, id).Error
	})
}

// IncrementViewAtomic adds one view in a single upsert statement
func (r *GormArticleRepository) IncrementViewAtomic(articleID uint) error {
	now := time.Now().UTC()
	view := models.ArticleView{ArticleID: articleID, ViewCount: 1, UpdatedAt: now}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "article_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"view_count": gorm.Expr("article_views.view_count + ?", 1),
			"updated_at": now,
		}),
	}).Create(&view).Error
}

// CountViews returns the article view count, 0 when never viewed
func (r *GormArticleRepository) CountViews(articleID uint) (int64, error) {
	var view models.ArticleView
	if err := r.db.Where("article_id = ?", articleID).First(&view).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return view.ViewCount, nil
}

// MostViewed ranks visible articles by view count
func (r *GormArticleRepository) MostViewed(filter MostViewedFilter) ([]models.Article, error) {
	query := r.db.Model(&models.Article{}).
		Joins("JOIN article_views ON article_views.article_id = articles.id").
		Scopes(visibleAt(filter.Now))
	if filter.CreatedSince != nil {
		query = query.Where("articles.created_at >= ?", filter.CreatedSince.UTC())
	}
	query = query.
		Order("article_views.view_count DESC").
		Order("articles.id DESC").
		Preload("Section").
		Preload("Subsection")
	query = applyLimitOffset(query, filter.Limit, 0)

	articles := make([]models.Article, 0)
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

type taxonomyUpdateRow struct {
	TaxonomyID uint
	UpdatedAt  time.Time
}

// TagsLastModified maps each tag carried by a visible article to the latest
// updated_at among those articles.
func (r *GormArticleRepository) TagsLastModified(now time.Time) (map[uint]time.Time, error) {
	return r.taxonomyLastModified("article_tags", "tag_id", now)
}

// CategoriesLastModified maps each category of a visible article to the latest
// updated_at among those articles.
func (r *GormArticleRepository) CategoriesLastModified(now time.Time) (map[uint]time.Time, error) {
	return r.taxonomyLastModified("article_categories", "category_id", now)
}

func (r *GormArticleRepository) taxonomyLastModified(joinTable, column string, now time.Time) (map[uint]time.Time, error) {
	rows := make([]taxonomyUpdateRow, 0)
	err := r.db.Model(&models.Article{}).
		Scopes(visibleAt(now)).
		Select(joinTable + "." + column + " AS taxonomy_id, articles.updated_at AS updated_at").
		Joins("JOIN " + joinTable + " ON " + joinTable + ".article_id = articles.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	latest := make(map[uint]time.Time, len(rows))
	for _, row := range rows {
		if current, ok := latest[row.TaxonomyID]; !ok || row.UpdatedAt.After(current) {
			latest[row.TaxonomyID] = row.UpdatedAt.UTC()
		}
	}
	return latest, nil
}
