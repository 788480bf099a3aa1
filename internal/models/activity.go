package models

// Activity is one append-only log entry ("order 123 confirmed", "payment
// screenshot verified"). Entries are never updated after creation.
type Activity struct {
	Meta
	UserID string `json:"userId"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

func (a *Activity) OwnerID() string { return a.UserID }
