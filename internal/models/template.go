package models

// Template is a reusable reply text.
type Template struct {
	Meta
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Body     string `json:"body"`
	Language string `json:"language"`
	Category string `json:"category"`
}

func (t *Template) OwnerID() string { return t.UserID }
