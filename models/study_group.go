package models

// StudyGroup represents a student-run study circle
type StudyGroup struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Subject     string   `json:"subject" validate:"required"`
	University  string   `json:"university"`
	Members     []string `json:"members"`
	Description string   `json:"description"`
}

// GetID returns the entity identifier.
func (g *StudyGroup) GetID() string { return g.ID }

// SetID assigns the entity identifier.
func (g *StudyGroup) SetID(id string) { g.ID = id }

// HasMember reports whether the user is already a member.
func (g *StudyGroup) HasMember(userID string) bool {
	for _, id := range g.Members {
		if id == userID {
			return true
		}
	}
	return false
}
