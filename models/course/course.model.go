package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	ThumbnailURL string `json:"thumbnail_url"`
	InstructorID uint   `json:"instructor_id" gorm:"index"`
	IsPublished  bool   `json:"is_published" gorm:"default:true"`
	IsDeleted    bool   `gorm:"default:false"`
}
