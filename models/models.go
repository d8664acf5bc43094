package models

import "github.com/google/uuid"

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin RoleType = "admin"
	RoleUser  RoleType = "user"
)

// UserStatus represents the account state of a user
type UserStatus string

const (
	UserStatusActive    UserStatus = "Active"
	UserStatusSuspended UserStatus = "Suspended"
)

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "Upcoming"
	EventStatusOngoing   EventStatus = "Ongoing"
	EventStatusCompleted EventStatus = "Completed"
	EventStatusCancelled EventStatus = "Cancelled"
)

// PostStatus represents the publication state of a blog post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "Draft"
	PostStatusPublished PostStatus = "Published"
)

// NewID returns a server-assigned entity identifier.
func NewID() string {
	return uuid.NewString()
}
