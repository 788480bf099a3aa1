package models

import "time"

// Direction of a message relative to the seller.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Channel the message travelled on.
type Channel string

const (
	ChannelInstagram Channel = "instagram"
	ChannelWhatsApp  Channel = "whatsapp"
)

// Message is one DM exchanged with a customer.
type Message struct {
	Meta
	UserID     string    `json:"userId"`
	CustomerID string    `json:"customerId"`
	Direction  Direction `json:"direction"`
	Channel    Channel   `json:"channel"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sentAt"`
}

func (m *Message) OwnerID() string { return m.UserID }
