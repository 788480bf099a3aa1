package account

import (
	"context"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

// defaultRecentLimit caps ListRecent when the caller passes no limit.
const defaultRecentLimit = 50

type ActivityLog struct {
	repo storage.ActivityRepository
}

func NewActivityLog(repo storage.ActivityRepository) *ActivityLog {
	return &ActivityLog{repo: repo}
}

// Record appends one entry. Entries are immutable once written.
func (l *ActivityLog) Record(ctx context.Context, userID, kind, detail string) error {
	if userID == "" || kind == "" {
		return common.ErrValidation
	}
	return l.repo.Append(ctx, &models.Activity{
		UserID: userID,
		Kind:   kind,
		Detail: detail,
	})
}

// Recent returns up to limit entries, newest first.
func (l *ActivityLog) Recent(ctx context.Context, userID string, limit int) ([]*models.Activity, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return l.repo.ListRecent(ctx, userID, limit)
}
