package models

// Plan is a subscription tier.
type Plan string

const (
	PlanStarter Plan = "starter"
	PlanGrowth  Plan = "growth"
	PlanPro     Plan = "pro"
)

// Profile is the business profile owned 1:1 by an AuthUser. All seller-side
// entities (products, orders, customers, ...) hang off the profile's ID via
// their UserID field.
type Profile struct {
	Meta
	AuthUserID         string `json:"authUserId"`
	BusinessName       string `json:"businessName"`
	InstagramHandle    string `json:"instagramHandle"`
	Plan               Plan   `json:"plan"`
	InstagramConnected bool   `json:"instagramConnected"`
	WhatsAppConnected  bool   `json:"whatsappConnected"`
	Currency           string `json:"currency"`
}

func (p *Profile) OwnerID() string { return p.AuthUserID }
