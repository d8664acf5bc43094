package models

import "time"

// Notification is a transient message shown on the dashboard
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message" validate:"required"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetID returns the entity identifier.
func (n *Notification) GetID() string { return n.ID }

// SetID assigns the entity identifier.
func (n *Notification) SetID(id string) { n.ID = id }
