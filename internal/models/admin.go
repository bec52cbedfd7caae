package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin newsroom staff account
type Admin struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName        string         `gorm:"size:150" json:"display_name"`                 // shown in reporter stats
	PasswordHash       string         `gorm:"not null" json:"-"`                            // bcrypt hash
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                  // bumped to revoke every token
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                               // tokens issued earlier are rejected
	IsSuper            bool           `gorm:"not null;default:false;index" json:"is_super"` // bypasses RBAC
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName table name
func (Admin) TableName() string {
	return "admins"
}
