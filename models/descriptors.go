package models

import "github.com/campushub/campushub/collection"

// UserDescriptor drives the user management screens. Search scans name and
// email; role and status filters compare case-insensitively, as those
// screens always have.
func UserDescriptor() collection.Descriptor[*User] {
	return collection.Descriptor[*User]{
		Fields: map[string]func(*User) interface{}{
			"name":       func(u *User) interface{} { return u.Name },
			"email":      func(u *User) interface{} { return u.Email },
			"role":       func(u *User) interface{} { return u.Role },
			"status":     func(u *User) interface{} { return u.Status },
			"university": func(u *User) interface{} { return u.University },
			"city":       func(u *User) interface{} { return u.City },
			"createdAt":  func(u *User) interface{} { return u.CreatedAt },
		},
		SearchFields: []string{"name", "email"},
		FoldFilters:  []string{"role", "status"},
	}
}

// EventDescriptor drives the event discovery and management screens.
func EventDescriptor() collection.Descriptor[*Event] {
	return collection.Descriptor[*Event]{
		Fields: map[string]func(*Event) interface{}{
			"name":            func(e *Event) interface{} { return e.Name },
			"datetime":        func(e *Event) interface{} { return e.DateTime },
			"location":        func(e *Event) interface{} { return e.Location },
			"type":            func(e *Event) interface{} { return e.Type },
			"status":          func(e *Event) interface{} { return e.Status },
			"participants":    func(e *Event) interface{} { return len(e.Participants) },
			"maxParticipants": func(e *Event) interface{} { return e.MaxParticipants },
		},
		SearchFields: []string{"name", "location"},
		FoldFilters:  []string{"status"},
	}
}

// BlogPostDescriptor drives the blog management screens. Search scans title
// and author.
func BlogPostDescriptor() collection.Descriptor[*BlogPost] {
	return collection.Descriptor[*BlogPost]{
		Fields: map[string]func(*BlogPost) interface{}{
			"title":     func(p *BlogPost) interface{} { return p.Title },
			"author":    func(p *BlogPost) interface{} { return p.Author },
			"category":  func(p *BlogPost) interface{} { return p.Category },
			"status":    func(p *BlogPost) interface{} { return p.Status },
			"createdAt": func(p *BlogPost) interface{} { return p.CreatedAt },
		},
		SearchFields: []string{"title", "author"},
	}
}

// StudyGroupDescriptor drives the study group discovery screens.
func StudyGroupDescriptor() collection.Descriptor[*StudyGroup] {
	return collection.Descriptor[*StudyGroup]{
		Fields: map[string]func(*StudyGroup) interface{}{
			"name":       func(g *StudyGroup) interface{} { return g.Name },
			"subject":    func(g *StudyGroup) interface{} { return g.Subject },
			"university": func(g *StudyGroup) interface{} { return g.University },
			"members":    func(g *StudyGroup) interface{} { return len(g.Members) },
		},
		SearchFields: []string{"name", "subject"},
	}
}
