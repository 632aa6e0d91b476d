package utils

import (
	"log"
	"time"

	"lms-educate/config"
	"lms-educate/database"
	"lms-educate/models"
	courseModels "lms-educate/models/course"

	"github.com/robfig/cron/v3"
)

// logCleanup logs cleanup events with timestamp
func logCleanup(message string) {
	log.Printf("[CLEANUP-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// PurgeSoftDeleted hard-deletes rows that were soft-deleted longer ago than
// the configured retention window. Live rows and their order sequences are
// untouched; only rows already invisible to the application are purged.
func PurgeSoftDeleted() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.CleanupRetentionDays)

	targets := []interface{}{
		&courseModels.Enrollment{},
		&courseModels.Unit{},
		&courseModels.SubCourse{},
		&courseModels.Course{},
		&models.Membership{},
	}

	for _, target := range targets {
		result := db.Unscoped().
			Where("is_deleted = ? AND updated_at < ?", true, cutoff).
			Delete(target)
		if result.Error != nil {
			logCleanup("Error purging rows: " + result.Error.Error())
			continue
		}
		if result.RowsAffected > 0 {
			logCleanup("Purged soft-deleted rows")
		}
	}
}

// InitializeCleanupScheduler runs the purge nightly.
func InitializeCleanupScheduler() {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", PurgeSoftDeleted)
	if err != nil {
		logCleanup("Failed to schedule purge job: " + err.Error())
		return
	}

	c.Start()
	logCleanup("Cleanup scheduler started")
}
