package models

import "time"

// Onboarding is the per-user singleton tracking setup progress.
type Onboarding struct {
	Meta
	UserID        string    `json:"userId"`
	ProfileDone   bool      `json:"profileDone"`
	CatalogDone   bool      `json:"catalogDone"`
	InstagramDone bool      `json:"instagramDone"`
	PaymentsDone  bool      `json:"paymentsDone"`
	CompletedAt   time.Time `json:"completedAt"`
}

func (o *Onboarding) OwnerID() string { return o.UserID }

// Complete reports whether every onboarding step is done.
func (o *Onboarding) Complete() bool {
	return o.ProfileDone && o.CatalogDone && o.InstagramDone && o.PaymentsDone
}
