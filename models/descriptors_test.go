package models

import (
	"testing"

	"github.com/campushub/campushub/collection"
)

func TestUserDescriptorSearchAndFilters(t *testing.T) {
	users := []*User{
		{Name: "Anna Schmidt", Email: "anna@uni.edu", Role: RoleAdmin, Status: UserStatusActive},
		{Name: "Bert Miller", Email: "bert@uni.edu", Role: RoleUser, Status: UserStatusActive},
		{Name: "Joanna Lee", Email: "jlee@uni.edu", Role: RoleUser, Status: UserStatusSuspended},
	}

	query := collection.NewQueryState()
	query.SetSearchTerm("anna")
	result := collection.Project(users, UserDescriptor(), query, collection.DefaultPageSize)
	if result.TotalCount != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", "anna", result.TotalCount)
	}

	// role filter folds case
	query.SetFilter("role", "ADMIN")
	result = collection.Project(users, UserDescriptor(), query, collection.DefaultPageSize)
	if result.TotalCount != 1 || result.Items[0].Name != "Anna Schmidt" {
		t.Fatalf("unexpected filtered result: %+v", result.Items)
	}
}

func TestEventDescriptorSortsByParticipantCount(t *testing.T) {
	events := []*Event{
		{Name: "crowded", Participants: []string{"a", "b", "c"}},
		{Name: "empty"},
		{Name: "pair", Participants: []string{"a", "b"}},
	}

	query := collection.NewQueryState()
	query.SetSort("participants")
	result := collection.Project(events, EventDescriptor(), query, collection.DefaultPageSize)

	want := []string{"empty", "pair", "crowded"}
	for i, name := range want {
		if result.Items[i].Name != name {
			t.Fatalf("unexpected order: %v", result.Items)
		}
	}
}

func TestBlogPostDescriptorSearchesTitleAndAuthor(t *testing.T) {
	posts := []*BlogPost{
		{Title: "Go Generics in Practice", Author: "Anna"},
		{Title: "Campus Food Guide", Author: "Bert"},
	}

	query := collection.NewQueryState()
	query.SetSearchTerm("anna")
	result := collection.Project(posts, BlogPostDescriptor(), query, collection.DefaultPageSize)
	if result.TotalCount != 1 || result.Items[0].Title != "Go Generics in Practice" {
		t.Fatalf("unexpected search result: %+v", result.Items)
	}
}
