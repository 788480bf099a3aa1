// Package models defines the persisted entity types of the SalesPilots data
// layer. Every entity embeds Meta, which carries the identity and timestamp
// convention shared by all backends: IDs and timestamps are assigned by the
// store, never by the caller.
package models

import "time"

// Record is the contract every persisted entity satisfies. The storage
// backends use it to assign identity and stamp timestamps without knowing
// the concrete entity type.
type Record interface {
	RecordID() string
	SetRecordID(id string)

	// TouchCreated stamps both CreatedAt and UpdatedAt. Called once, at
	// create time.
	TouchCreated(now time.Time)

	// TouchUpdated re-stamps UpdatedAt. Called on every update.
	TouchUpdated(now time.Time)

	CreatedTime() time.Time

	// OwnerID returns the owning user's ID, or an empty string for
	// entities that are not owner-scoped.
	OwnerID() string
}

// Meta carries the common identity and timestamp fields.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Meta) RecordID() string      { return m.ID }
func (m *Meta) SetRecordID(id string) { m.ID = id }

func (m *Meta) TouchCreated(now time.Time) {
	m.CreatedAt = now
	m.UpdatedAt = now
}

func (m *Meta) TouchUpdated(now time.Time) { m.UpdatedAt = now }

func (m *Meta) CreatedTime() time.Time { return m.CreatedAt }
