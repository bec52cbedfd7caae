package models

import "time"

// URLRedirection admin-managed redirect applied before routing
type URLRedirection struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	OldURL       string    `gorm:"size:500;uniqueIndex;not null" json:"old_url"`  // request path, e.g. /old-page/
	NewURL       string    `gorm:"size:500;not null" json:"new_url"`              // path or absolute url
	RedirectType string    `gorm:"size:3;not null" json:"redirect_type"`          // 301 / 302
	IsActive     bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName table name
func (URLRedirection) TableName() string {
	return "url_redirections"
}

// RobotsTxt robots.txt body; at most one row is active
type RobotsTxt struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName table name
func (RobotsTxt) TableName() string {
	return "robots_txts"
}

// SiteInfo site name and logo
type SiteInfo struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:100" json:"name"`
	Logo string `gorm:"size:500" json:"logo"`
}

// TableName table name
func (SiteInfo) TableName() string {
	return "site_infos"
}

// DefaultPage static page such as about or privacy, addressed by link
type DefaultPage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"size:100" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Link      string    `gorm:"size:250;uniqueIndex;not null" json:"link"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName table name
func (DefaultPage) TableName() string {
	return "default_pages"
}

// VideoPost embedded YouTube video
type VideoPost struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	SectionID   *uint     `gorm:"index" json:"section_id"`
	VideoTitle  string    `gorm:"size:1000" json:"video_title"`
	YoutubeLink string    `gorm:"size:500;not null" json:"youtube_link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName table name
func (VideoPost) TableName() string {
	return "video_posts"
}

// SpecialTitle home page special block heading
type SpecialTitle struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"size:250" json:"title"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName table name
func (SpecialTitle) TableName() string {
	return "special_titles"
}

// SpecialArticle article pinned to a special block
type SpecialArticle struct {
	ID             uint          `gorm:"primarykey" json:"id"`
	SpecialTitleID uint          `gorm:"not null;index" json:"special_title_id"`
	SpecialTitle   *SpecialTitle `gorm:"foreignKey:SpecialTitleID" json:"special_title,omitempty"`
	ArticleID      uint          `gorm:"not null;index" json:"article_id"`
	Article        *Article      `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	MainNews       bool          `gorm:"not null;index" json:"main_news"`
	CreatedByID    *uint         `json:"created_by_id"`
	UpdatedByID    *uint         `json:"updated_by_id"`
	CreatedAt      time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// TableName table name
func (SpecialArticle) TableName() string {
	return "special_articles"
}
