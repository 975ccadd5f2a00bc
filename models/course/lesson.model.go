package course

import "gorm.io/gorm"

// Lesson represents a video lesson within a module
type Lesson struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	Title      string `json:"title"`
	VideoURL   string `json:"video_url"`
	Content    string `json:"content"`
	OrderIndex int    `json:"order_index" gorm:"default:1"` // Lesson order in module
	IsDeleted  bool   `gorm:"default:false"`
}
