package models

import "time"

// Event represents a campus event or meetup
type Event struct {
	ID              string      `json:"id"`
	Name            string      `json:"name" validate:"required"`
	DateTime        time.Time   `json:"datetime" validate:"required"`
	Location        string      `json:"location"`
	Type            string      `json:"type"`
	Status          EventStatus `json:"status"`
	Participants    []string    `json:"participants"`
	MaxParticipants int         `json:"maxParticipants" validate:"gte=0"`
	ImageURL        string      `json:"imageUrl,omitempty"`
	CreatedBy       string      `json:"createdBy,omitempty"`
}

// GetID returns the entity identifier.
func (e *Event) GetID() string { return e.ID }

// SetID assigns the entity identifier.
func (e *Event) SetID(id string) { e.ID = id }

// IsFull reports whether the participant list has reached capacity.
func (e *Event) IsFull() bool {
	return e.MaxParticipants > 0 && len(e.Participants) >= e.MaxParticipants
}

// Join appends a participant and then, if the event reached capacity,
// flips the status to Completed. The add happens first; there is no
// pre-check rejection.
func (e *Event) Join(userID string) {
	e.Participants = append(e.Participants, userID)
	if e.MaxParticipants > 0 && len(e.Participants) >= e.MaxParticipants {
		e.Status = EventStatusCompleted
	}
}

// Leave removes a participant if present.
func (e *Event) Leave(userID string) {
	kept := e.Participants[:0]
	for _, id := range e.Participants {
		if id != userID {
			kept = append(kept, id)
		}
	}
	e.Participants = kept
}

// HasParticipant reports whether the user already joined.
func (e *Event) HasParticipant(userID string) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Cancel flips the event into the cancelled state.
func (e *Event) Cancel() { e.Status = EventStatusCancelled }
