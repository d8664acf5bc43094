package models

import "time"

// ActivityEntry is one row of a user's activity feed
type ActivityEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// GetID returns the entity identifier.
func (a *ActivityEntry) GetID() string { return a.ID }

// SetID assigns the entity identifier.
func (a *ActivityEntry) SetID(id string) { a.ID = id }
