package models

// SeoFields shared SEO override columns
type SeoFields struct {
	MetaTitle          string `gorm:"size:60" json:"meta_title"`
	MetaDescription    string `gorm:"size:160" json:"meta_description"`
	MetaAuthor         string `gorm:"size:100" json:"meta_author"`
	OGTitle            string `gorm:"size:95" json:"og_title"`
	OGDescription      string `gorm:"size:200" json:"og_description"`
	OGImage            string `gorm:"size:500" json:"og_image"`
	OGType             string `gorm:"size:50" json:"og_type"`
	OGSiteName         string `gorm:"size:100" json:"og_site_name"`
	TwitterCard        string `gorm:"size:50" json:"twitter_card"`
	TwitterTitle       string `gorm:"size:70" json:"twitter_title"`
	TwitterDescription string `gorm:"size:200" json:"twitter_description"`
	TwitterImage       string `gorm:"size:500" json:"twitter_image"`
	CanonicalURL       string `gorm:"size:500" json:"canonical_url"`
}

// ArticleSeo per-article SEO override
type ArticleSeo struct {
	ID        uint `gorm:"primarykey" json:"id"`
	ArticleID uint `gorm:"uniqueIndex;not null" json:"article_id"`
	SeoFields
}

// TableName table name
func (ArticleSeo) TableName() string {
	return "article_seos"
}

// SectionSeo per-section SEO override
type SectionSeo struct {
	ID        uint `gorm:"primarykey" json:"id"`
	SectionID uint `gorm:"uniqueIndex;not null" json:"section_id"`
	SeoFields
}

// TableName table name
func (SectionSeo) TableName() string {
	return "section_seos"
}

// SubsectionSeo per-subsection SEO override
type SubsectionSeo struct {
	ID           uint `gorm:"primarykey" json:"id"`
	SubsectionID uint `gorm:"uniqueIndex;not null" json:"subsection_id"`
	SeoFields
}

// TableName table name
func (SubsectionSeo) TableName() string {
	return "subsection_seos"
}
