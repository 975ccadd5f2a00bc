package course

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress is the single per-(user, lesson) row holding the latest quiz
// outcome. The composite unique index backs the atomic upsert in the quiz
// controller, so two racing submissions can never create a second row.
type UserProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID    uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	Score       int        `json:"score" gorm:"default:0"` // 0-100
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
}
