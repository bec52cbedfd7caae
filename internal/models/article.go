package models

import "time"

// Article news article
type Article struct {
	ID                 uint        `gorm:"primarykey" json:"id"`
	SectionID          *uint       `gorm:"index" json:"section_id"`                  // owning section
	Section            *Section    `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	SubsectionID       *uint       `gorm:"index" json:"subsection_id"`               // optional subsection, must belong to SectionID
	Subsection         *Subsection `gorm:"foreignKey:SubsectionID" json:"subsection,omitempty"`
	Categories         []Category  `gorm:"many2many:article_categories;" json:"categories,omitempty"`
	Tags               []Tag       `gorm:"many2many:article_tags;" json:"tags,omitempty"`
	TopSubTitle        string      `gorm:"size:1000" json:"top_sub_title"`
	Title              string      `gorm:"size:1000;index" json:"title"`
	SubTitle           string      `gorm:"size:1000" json:"sub_title"`
	Content            string      `gorm:"type:text" json:"content"`
	SubContent         string      `gorm:"type:text" json:"sub_content"`
	HeadingImage       string      `gorm:"size:500" json:"heading_image"`
	HeadingImageTitle  string      `gorm:"size:1000" json:"heading_image_title"`
	MainImage          string      `gorm:"size:500" json:"main_image"`
	MainImageTitle     string      `gorm:"size:1000" json:"main_image_title"`
	Reporter           string      `gorm:"size:1000" json:"reporter"`
	ScheduledPublishAt *time.Time  `gorm:"index" json:"scheduled_publish_at"`        // nil means publish immediately
	CreatedByID        *uint       `gorm:"index" json:"created_by_id"`               // admin id
	UpdatedByID        *uint       `json:"updated_by_id"`                            // admin id
	CreatedAt          time.Time   `gorm:"index" json:"created_at"`                  // set once
	UpdatedAt          time.Time   `json:"updated_at"`                               // refreshed on every save
}

// TableName table name
func (Article) TableName() string {
	return "articles"
}

// CategoryIDs returns the ids of the loaded categories
func (a *Article) CategoryIDs() []uint {
	if a == nil {
		return nil
	}
	ids := make([]uint, 0, len(a.Categories))
	for _, category := range a.Categories {
		ids = append(ids, category.ID)
	}
	return ids
}

// Category editorial category (e.g. lead news, live)
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:100;index" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName table name
func (Category) TableName() string {
	return "categories"
}

// Tag free tag with a unique slug
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName table name
func (Tag) TableName() string {
	return "tags"
}

// ArticleView per-article view counter
type ArticleView struct {
	ArticleID uint      `gorm:"primaryKey;autoIncrement:false" json:"article_id"`
	ViewCount int64     `gorm:"not null;default:0;index" json:"view_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName table name
func (ArticleView) TableName() string {
	return "article_views"
}
