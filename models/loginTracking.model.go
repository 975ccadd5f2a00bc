package models

import "gorm.io/gorm"

// LoginTracking records every successful login for audit
type LoginTracking struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	IsDeleted bool   `gorm:"default:false"`
}
