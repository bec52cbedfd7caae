package models

import "time"

// Section top-level navigation section
type Section struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	Title        string       `gorm:"size:100;not null" json:"title"`            // display title (Bengali)
	EnglishTitle string       `gorm:"size:100" json:"english_title"`             // slug source, empty means no slug
	Position     int          `gorm:"not null;default:0;index" json:"position"`  // navigation order
	IsActive     bool         `gorm:"not null;index" json:"is_active"`           // shown in the navbar
	CreatedAt    time.Time    `json:"created_at"`                                // created at
	UpdatedAt    time.Time    `json:"updated_at"`                                // updated at
	Subsections  []Subsection `gorm:"foreignKey:SectionID" json:"subsections,omitempty"`
}

// TableName table name
func (Section) TableName() string {
	return "sections"
}

// Subsection second-level section
type Subsection struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SectionID    *uint     `gorm:"index" json:"section_id"`
	Section      *Section  `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Title        string    `gorm:"size:100" json:"title"`
	EnglishTitle string    `gorm:"size:100" json:"english_title"`
	Position     int       `gorm:"not null;default:0;index" json:"position"`
	IsActive     bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName table name
func (Subsection) TableName() string {
	return "subsections"
}
