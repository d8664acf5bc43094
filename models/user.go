package models

import "time"

// User represents a community member or administrator
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name" validate:"required"`
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password,omitempty" validate:"omitempty,min=8"`
	Role       RoleType   `json:"role"`
	Status     UserStatus `json:"status"`
	University string     `json:"university"`
	City       string     `json:"city"`
	AvatarURL  string     `json:"avatarUrl,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// GetID returns the entity identifier.
func (u *User) GetID() string { return u.ID }

// SetID assigns the entity identifier.
func (u *User) SetID(id string) { u.ID = id }

// Suspend flips the account into the suspended state.
func (u *User) Suspend() { u.Status = UserStatusSuspended }

// Activate flips the account back into the active state.
func (u *User) Activate() { u.Status = UserStatusActive }

// Sanitized returns a copy safe for API responses, with the password
// hash stripped.
func (u *User) Sanitized() *User {
	clone := *u
	clone.Password = ""
	return &clone
}
