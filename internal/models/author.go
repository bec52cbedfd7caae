package models

import "time"

// AuthorCategory author group, e.g. editorial board
type AuthorCategory struct {
	ID    uint         `gorm:"primarykey" json:"id"`
	Title string       `gorm:"size:100;not null" json:"title"`
	Slug  string       `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Roles []AuthorRole `gorm:"foreignKey:CategoryID" json:"roles,omitempty"`
}

// TableName table name
func (AuthorCategory) TableName() string {
	return "author_categories"
}

// AuthorRole role inside a category; lower priority ranks higher
type AuthorRole struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	CategoryID uint     `gorm:"not null;uniqueIndex:idx_author_role_category_title" json:"category_id"`
	Title      string   `gorm:"size:100;not null;uniqueIndex:idx_author_role_category_title" json:"title"`
	Priority   int      `gorm:"not null;default:1" json:"priority"`
	Authors    []Author `gorm:"foreignKey:RoleID" json:"authors,omitempty"`
}

// TableName table name
func (AuthorRole) TableName() string {
	return "author_roles"
}

// Author staff writer profile
type Author struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	RoleID      *uint     `gorm:"index" json:"role_id"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Slug        string    `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	Image       string    `gorm:"size:500" json:"image"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName table name
func (Author) TableName() string {
	return "authors"
}
