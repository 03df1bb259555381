package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/fims-api/internal/models"
)

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// taskNotifier abstracts the fire-and-forget notification collaborator.
type taskNotifier interface {
	NotifyUser(userID int64, message string, entityID int64)
	NotifySupervisors(message string, entityID int64)
}

// normalizePage clamps the requested page window. Page sizes are capped so a
// single request cannot pull the whole table.
func normalizePage(page, size, defaultSize, maxSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return page, size
}

// daysUntil returns the calendar-day difference between now and due in now's
// location. Negative when the due date has passed.
func daysUntil(now, due time.Time) int {
	due = due.In(now.Location())
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	b := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
	return int(b.Sub(a).Hours() / 24)
}

// shortSuffix yields 8 hex chars of randomness appended to time-derived
// identifiers so concurrent same-second creation cannot collide.
func shortSuffix() string {
	return uuid.NewString()[:8]
}

// generateTaskCode derives the human-readable task label.
func generateTaskCode(now time.Time) string {
	return fmt.Sprintf("TASK-%s-%s", now.Format("20060102150405"), shortSuffix())
}
