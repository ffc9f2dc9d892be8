package jobs

import (
	"log"
	"time"

	"inan-survey-server/database"
	"inan-survey-server/models"
	"inan-survey-server/services"
)

// ArchiveJob enforces the retention policy from the settings document:
// it closes expired polls, archives stale form schemas and purges old
// responses past the retention window.
type ArchiveJob struct {
	interval time.Duration
	stopChan chan bool
}

// NewArchiveJob creates a new archive job
func NewArchiveJob() *ArchiveJob {
	return &ArchiveJob{
		interval: time.Hour,
		stopChan: make(chan bool),
	}
}

// Start begins the archive job
func (j *ArchiveJob) Start() {
	go j.run()
	log.Println("🚀 Archive job started")
}

// Stop stops the archive job
func (j *ArchiveJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Archive job stopped")
}

func (j *ArchiveJob) run() {
	// Run once on startup so a restart never skips a cycle
	j.runOnce()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.runOnce()
		case <-j.stopChan:
			return
		}
	}
}

func (j *ArchiveJob) runOnce() {
	j.closeExpiredPolls()

	settings, err := services.LoadSettings()
	if err != nil {
		log.Printf("❌ Archive job could not load settings: %v", err)
		return
	}
	if settings.ResponseMgmt == nil {
		return
	}

	j.archiveStaleSchemas(settings.ResponseMgmt.AutoArchiveAfterDays)
	j.purgeOldResponses(settings.ResponseMgmt.DataRetentionDays)
}

// closeExpiredPolls deactivates polls whose end date has passed
func (j *ArchiveJob) closeExpiredPolls() {
	result := database.DB.Model(&models.Poll{}).
		Where("is_active = ? AND end_date IS NOT NULL AND end_date <= ?", true, time.Now()).
		Update("is_active", false)

	if result.Error != nil {
		log.Printf("❌ Error closing expired polls: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("⏰ Closed %d expired polls", result.RowsAffected)
	}
}

// archiveStaleSchemas deactivates forms and questionnaires that have not
// been updated within the archive window. Zero disables archiving.
func (j *ArchiveJob) archiveStaleSchemas(afterDays int) {
	if afterDays <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -afterDays)
	result := database.DB.Model(&models.FormSchema{}).
		Where("is_active = ? AND updated_at <= ?", true, cutoff).
		Update("is_active", false)

	if result.Error != nil {
		log.Printf("❌ Error archiving stale schemas: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("🧹 Archived %d stale schemas", result.RowsAffected)
	}
}

// purgeOldResponses deletes responses older than the retention window.
// Zero keeps everything.
func (j *ArchiveJob) purgeOldResponses(retentionDays int) {
	if retentionDays <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	result := database.DB.Where("submitted_at <= ?", cutoff).Delete(&models.FormResponse{})
	if result.Error != nil {
		log.Printf("❌ Error purging form responses: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("🧹 Purged %d form responses past retention", result.RowsAffected)
	}

	result = database.DB.Where("submitted_at <= ?", cutoff).Delete(&models.PollResponse{})
	if result.Error != nil {
		log.Printf("❌ Error purging poll responses: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("🧹 Purged %d poll responses past retention", result.RowsAffected)
	}
}
