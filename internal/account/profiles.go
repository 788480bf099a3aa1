// Package account holds the per-seller domain managers on top of the
// storage contracts: profile, settings, onboarding progress, the activity
// log and the aggregated business-data view. Managers apply defaults in
// memory; nothing is persisted unless the caller saves.
package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/logging"
	"github.com/salespilots/platform/internal/models"
	"github.com/salespilots/platform/internal/storage"
)

type Profiles struct {
	repo storage.ProfileRepository
	log  logging.Logger
}

func NewProfiles(repo storage.ProfileRepository, log logging.Logger) *Profiles {
	return &Profiles{repo: repo, log: log}
}

// Create registers the 1:1 business profile for an auth user. The starter
// plan and INR currency apply unless set.
func (p *Profiles) Create(ctx context.Context, authUserID, businessName, instagramHandle string) (*models.Profile, error) {
	if authUserID == "" {
		return nil, fmt.Errorf("missing auth user: %w", common.ErrValidation)
	}
	prof := &models.Profile{
		AuthUserID:      authUserID,
		BusinessName:    strings.TrimSpace(businessName),
		InstagramHandle: strings.TrimPrefix(strings.TrimSpace(instagramHandle), "@"),
		Plan:            models.PlanStarter,
		Currency:        "INR",
	}
	if err := p.repo.Create(ctx, prof); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	p.log.Info(ctx, "profile created", "profileID", prof.ID, "authUserID", authUserID)
	return prof, nil
}

func (p *Profiles) Get(ctx context.Context, id string) (*models.Profile, error) {
	return p.repo.GetByID(ctx, id)
}

func (p *Profiles) GetByAuthUser(ctx context.Context, authUserID string) (*models.Profile, error) {
	return p.repo.GetByAuthUser(ctx, authUserID)
}

func (p *Profiles) Update(ctx context.Context, id string, patch func(*models.Profile)) (*models.Profile, error) {
	return p.repo.Update(ctx, id, patch)
}
