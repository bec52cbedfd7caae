package models

import "time"

// ArticleReaction one reaction per visitor per article
type ArticleReaction struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ArticleID  uint      `gorm:"not null;uniqueIndex:idx_reaction_article_visitor" json:"article_id"`
	VisitorKey string    `gorm:"size:128;not null;uniqueIndex:idx_reaction_article_visitor" json:"-"`
	Reaction   string    `gorm:"size:10;not null;index" json:"reaction"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName table name
func (ArticleReaction) TableName() string {
	return "article_reactions"
}

// Review reader comment on an article
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ArticleID uint      `gorm:"not null;index" json:"article_id"`
	Name      string    `gorm:"size:100" json:"name"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	ClientIP  string    `gorm:"size:64" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName table name
func (Review) TableName() string {
	return "reviews"
}

// ShortURL short link with a click counter
type ShortURL struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	OriginalURL string    `gorm:"size:2000;not null;index" json:"original_url"`
	ShortCode   string    `gorm:"size:10;uniqueIndex;not null" json:"short_code"`
	Clicks      int64     `gorm:"not null;default:0" json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName table name
func (ShortURL) TableName() string {
	return "short_urls"
}
