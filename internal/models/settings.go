package models

// Settings is the per-user singleton of messaging preferences. Managers
// apply defaults when no row exists yet; defaults are never persisted
// implicitly.
type Settings struct {
	Meta
	UserID        string `json:"userId"`
	AutoReply     bool   `json:"autoReply"`
	ReplyLanguage string `json:"replyLanguage"`
	UPIID         string `json:"upiId"`
	NotifyEmail   bool   `json:"notifyEmail"`
	Timezone      string `json:"timezone"`
}

func (s *Settings) OwnerID() string { return s.UserID }
