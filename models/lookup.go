package models

// University is a lookup record used on signup and profile forms
type University struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
	City string `json:"city"`
}

// GetID returns the entity identifier.
func (u *University) GetID() string { return u.ID }

// SetID assigns the entity identifier.
func (u *University) SetID(id string) { u.ID = id }

// City is a lookup record used on signup and profile forms
type City struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

// GetID returns the entity identifier.
func (c *City) GetID() string { return c.ID }

// SetID assigns the entity identifier.
func (c *City) SetID(id string) { c.ID = id }

// EventBookmark links a user to a bookmarked event
type EventBookmark struct {
	ID      string `json:"id"`
	UserID  string `json:"userId" validate:"required"`
	EventID string `json:"eventId" validate:"required"`
}

// GetID returns the entity identifier.
func (b *EventBookmark) GetID() string { return b.ID }

// SetID assigns the entity identifier.
func (b *EventBookmark) SetID(id string) { b.ID = id }
