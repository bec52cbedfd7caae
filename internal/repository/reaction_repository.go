package repository

import (
	"errors"

	"github.com/jagoron-news/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionCountRow reaction kind with its count
type ReactionCountRow struct {
	Reaction string
	Total    int64
}

// ReactionRepository article reaction data access
type ReactionRepository interface {
	Upsert(reaction *models.ArticleReaction) error
	GetByVisitor(articleID uint, visitorKey string) (*models.ArticleReaction, error)
	CountByKind(articleID uint) ([]ReactionCountRow, error)
}

// GormReactionRepository GORM implementation
type GormReactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates the reaction repository
func NewReactionRepository(db *gorm.DB) *GormReactionRepository {
	return &GormReactionRepository{db: db}
}

// Upsert stores the visitor reaction, replacing an earlier one
func (r *GormReactionRepository) Upsert(reaction *models.ArticleReaction) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "visitor_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"reaction", "updated_at"}),
	}).Create(reaction).Error
}

// GetByVisitor returns nil when the visitor has not reacted
func (r *GormReactionRepository) GetByVisitor(articleID uint, visitorKey string) (*models.ArticleReaction, error) {
	var reaction models.ArticleReaction
	err := r.db.Where("article_id = ? AND visitor_key = ?", articleID, visitorKey).First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

// CountByKind groups the article reactions by kind
func (r *GormReactionRepository) CountByKind(articleID uint) ([]ReactionCountRow, error) {
	rows := make([]ReactionCountRow, 0)
	err := r.db.Model(&models.ArticleReaction{}).
		Select("reaction, COUNT(*) AS total").
		Where("article_id = ?", articleID).
		Group("reaction").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
