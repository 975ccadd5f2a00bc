package utils

import (
	"log"
	"time"
	"tka-lms/database"
	"tka-lms/models"
	courseModels "tka-lms/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler sets up the daily lesson reminder job
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing lesson reminder scheduler...")

	c := cron.New()

	// Run daily at 9 AM to nudge users with stale unfinished lessons
	c.AddFunc("0 9 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily lesson reminder check...")
		SendLessonReminders()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Lesson reminder scheduler started - runs daily at 9 AM")
}

// SendLessonReminders emails users holding incomplete progress rows that
// haven't been touched for 3 days
func SendLessonReminders() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -3)

	var staleProgress []courseModels.UserProgress
	if err := db.
		Where("completed = ? AND updated_at < ?", false, cutoff).
		Find(&staleProgress).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching stale progress: %v", err)
		return
	}

	log.Printf("[REMINDER-SCHEDULER] Found %d stale unfinished lessons", len(staleProgress))

	for _, progress := range staleProgress {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", progress.UserID, false).First(&user).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error fetching user %d: %v", progress.UserID, err)
			continue
		}

		var lesson courseModels.Lesson
		if err := db.Where("id = ? AND is_deleted = ?", progress.LessonID, false).First(&lesson).Error; err != nil {
			continue
		}

		SendLessonReminderEmail(user.Email, user.Name, lesson.Title)
		log.Printf("[REMINDER-SCHEDULER] Sent lesson reminder for lesson %d to %s", lesson.ID, user.Email)
	}
}
