package account

import (
	"context"
	"errors"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

type Settings struct {
	repo storage.KeyedRepository[*models.Settings]
}

func NewSettings(repo storage.KeyedRepository[*models.Settings]) *Settings {
	return &Settings{repo: repo}
}

// DefaultSettings are what a user sees before ever saving. They live here,
// not in the store: a user with no settings row gets these on every Get
// until an explicit Save.
func DefaultSettings(userID string) *models.Settings {
	return &models.Settings{
		UserID:        userID,
		AutoReply:     false,
		ReplyLanguage: "en",
		NotifyEmail:   true,
		Timezone:      "Asia/Kolkata",
	}
}

// Get returns the user's saved settings, or the defaults when none exist.
func (s *Settings) Get(ctx context.Context, userID string) (*models.Settings, error) {
	got, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return DefaultSettings(userID), nil
		}
		return nil, err
	}
	return got, nil
}

// Save upserts the settings singleton for set.UserID.
func (s *Settings) Save(ctx context.Context, set *models.Settings) error {
	if set.UserID == "" {
		return common.ErrValidation
	}
	if existing, err := s.repo.GetByUser(ctx, set.UserID); err == nil {
		// Keep the singleton's identity stable across saves.
		set.Meta = existing.Meta
	} else if !errors.Is(err, common.ErrNotFound) {
		return err
	}
	return s.repo.Upsert(ctx, set)
}
