package account

import (
	"context"
	"errors"
	"time"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

type Onboarding struct {
	repo storage.KeyedRepository[*models.Onboarding]
	now  func() time.Time
}

func NewOnboarding(repo storage.KeyedRepository[*models.Onboarding]) *Onboarding {
	return &Onboarding{repo: repo, now: time.Now}
}

// Get returns the user's onboarding progress, all-false when nothing has
// been recorded yet.
func (o *Onboarding) Get(ctx context.Context, userID string) (*models.Onboarding, error) {
	got, err := o.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &models.Onboarding{UserID: userID}, nil
		}
		return nil, err
	}
	return got, nil
}

// MarkStep flips one step to done and stamps CompletedAt when that closes
// the last open step. Unknown step names are a validation error.
func (o *Onboarding) MarkStep(ctx context.Context, userID, step string) (*models.Onboarding, error) {
	state, err := o.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch step {
	case "profile":
		state.ProfileDone = true
	case "catalog":
		state.CatalogDone = true
	case "instagram":
		state.InstagramDone = true
	case "payments":
		state.PaymentsDone = true
	default:
		return nil, common.ErrValidation
	}

	if state.Complete() && state.CompletedAt.IsZero() {
		state.CompletedAt = o.now()
	}
	if err := o.repo.Upsert(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}
