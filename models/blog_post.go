package models

import "time"

// BlogPost represents an article in the blogging feature
type BlogPost struct {
	ID        string     `json:"id"`
	Title     string     `json:"title" validate:"required"`
	Content   string     `json:"content" validate:"required"`
	Author    string     `json:"author"`
	Category  string     `json:"category"`
	Status    PostStatus `json:"status"`
	Excerpt   string     `json:"excerpt"`
	Image     string     `json:"image,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// GetID returns the entity identifier.
func (p *BlogPost) GetID() string { return p.ID }

// SetID assigns the entity identifier.
func (p *BlogPost) SetID(id string) { p.ID = id }
