package models

import "time"

// Setting key/value settings table
type Setting struct {
	Key       string    `gorm:"primarykey;size:64" json:"key"`
	ValueJSON JSON      `gorm:"type:json" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName table name
func (Setting) TableName() string {
	return "settings"
}
