package utils

import (
	"log"
	"time"

	"lms_backend/config"
	"lms_backend/database"
	courseModels "lms_backend/models/course"
	"lms_backend/workflow"

	"github.com/robfig/cron/v3"
)

// InitializePurgeScheduler sets up the archived-course purge scheduler
func InitializePurgeScheduler() {
	log.Println("[PURGE-SCHEDULER] Initializing archived course purge scheduler...")

	c := cron.New()

	// Run daily at 3 AM to remove archived courses past retention
	c.AddFunc("0 3 * * *", func() {
		log.Println("[PURGE-SCHEDULER] Running daily archived course purge...")
		PurgeArchivedCourses()
	})

	c.Start()
	log.Println("[PURGE-SCHEDULER] Purge scheduler started - runs daily at 3 AM")
}

// PurgeArchivedCourses hard-deletes course aggregates that were archived
// longer than the retention window ago. Children go first, same order the
// authoring workflow uses.
func PurgeArchivedCourses() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.ArchiveRetentionDays)

	var courses []courseModels.Course
	if err := db.
		Where("status = ? AND is_deleted = ? AND updated_at < ?", courseModels.StatusArchived, true, cutoff).
		Find(&courses).Error; err != nil {
		log.Printf("[PURGE-SCHEDULER] Error fetching archived courses: %v", err)
		return
	}

	log.Printf("[PURGE-SCHEDULER] Found %d archived courses past retention", len(courses))

	for _, course := range courses {
		if err := workflow.DeleteCourseAggregate(db, course.ID); err != nil {
			log.Printf("[PURGE-SCHEDULER] Error purging course %d: %v", course.ID, err)
			continue
		}
		log.Printf("[PURGE-SCHEDULER] Purged course %d (%s)", course.ID, course.Title)
	}
}
