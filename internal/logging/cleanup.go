package logging

import (
	"log/slog"
	"time"

	"github.com/Dhaval523/WorkJunction/internal/models"
	"gorm.io/gorm"
)

const retention = 30 * 24 * time.Hour

// StartCleanup deletes system_logs older than the retention window once a day
// until done is closed.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				purgeOlderThan(db, time.Now().Add(-retention))
			case <-done:
				return
			}
		}
	}()
}

func purgeOlderThan(db *gorm.DB, cutoff time.Time) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("system log cleanup failed", "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("system log cleanup completed", "deleted", result.RowsAffected)
	}
}
