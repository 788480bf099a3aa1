package models

import "time"

// Customer is an Instagram buyer known to a seller.
type Customer struct {
	Meta
	UserID          string    `json:"userId"`
	InstagramUserID string    `json:"instagramUserId"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Notes           string    `json:"notes"`
	LastSeenAt      time.Time `json:"lastSeenAt"`
}

func (c *Customer) OwnerID() string { return c.UserID }
