// Package seed populates an empty store backend with a usable starting
// data set for local development.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/campushub/internal/app/stores"
	"github.com/campushub/campushub/internal/pkg/auth"
	"github.com/campushub/campushub/models"
)

// Run seeds default data when the users collection is empty. A non-empty
// users collection means the backend was already seeded (or is real
// data), so Run is a no-op then.
func Run(ctx context.Context, st *stores.Stores, lgr zerolog.Logger) error {
	existing, err := st.Users.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		lgr.Debug().Int("users", len(existing)).Msg("Store already seeded, skipping")
		return nil
	}

	lgr.Info().Msg("Seeding default data...")
	var finalErr error

	hash, err := auth.HashPassword("admin12345")
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:       "Admin",
		Email:      "admin@campushub.dev",
		Password:   hash,
		Role:       models.RoleAdmin,
		Status:     models.UserStatusActive,
		University: "Istanbul Technical University",
		City:       "Istanbul",
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := st.Users.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error seeding admin user")
		finalErr = errors.Join(finalErr, err)
	}

	cities := []*models.City{
		{Name: "Istanbul"},
		{Name: "Ankara"},
		{Name: "Izmir"},
	}
	for _, c := range cities {
		if _, err := st.Cities.Create(ctx, c); err != nil {
			lgr.Error().Err(err).Str("city", c.Name).Msg("Error seeding city")
			finalErr = errors.Join(finalErr, err)
		}
	}

	universities := []*models.University{
		{Name: "Istanbul Technical University", City: "Istanbul"},
		{Name: "Bogazici University", City: "Istanbul"},
		{Name: "Middle East Technical University", City: "Ankara"},
		{Name: "Ege University", City: "Izmir"},
	}
	for _, u := range universities {
		if _, err := st.Universities.Create(ctx, u); err != nil {
			lgr.Error().Err(err).Str("university", u.Name).Msg("Error seeding university")
			finalErr = errors.Join(finalErr, err)
		}
	}

	events := []*models.Event{
		{
			Name:            "Freshman Welcome Picnic",
			DateTime:        time.Now().AddDate(0, 0, 14).UTC(),
			Location:        "Campus Lawn",
			Type:            "social",
			Status:          models.EventStatusUpcoming,
			MaxParticipants: 50,
		},
		{
			Name:            "Go Workshop",
			DateTime:        time.Now().AddDate(0, 0, 7).UTC(),
			Location:        "Engineering Building B-104",
			Type:            "workshop",
			Status:          models.EventStatusUpcoming,
			MaxParticipants: 25,
		},
		{
			Name:     "Spring Concert",
			DateTime: time.Now().AddDate(0, 1, 0).UTC(),
			Location: "Main Auditorium",
			Type:     "concert",
			Status:   models.EventStatusUpcoming,
		},
	}
	for _, e := range events {
		if _, err := st.Events.Create(ctx, e); err != nil {
			lgr.Error().Err(err).Str("event", e.Name).Msg("Error seeding event")
			finalErr = errors.Join(finalErr, err)
		}
	}

	blogs := []*models.BlogPost{
		{
			Title:     "Surviving Your First Semester",
			Content:   "A short guide to course registration, the library and the cafeteria.",
			Author:    "Admin",
			Category:  "campus-life",
			Status:    models.PostStatusPublished,
			Excerpt:   "A short guide for freshmen.",
			CreatedAt: time.Now().UTC(),
		},
		{
			Title:     "Why Join a Study Group",
			Content:   "Study groups are the fastest way to keep up with a heavy course load.",
			Author:    "Admin",
			Category:  "academics",
			Status:    models.PostStatusPublished,
			Excerpt:   "The case for studying together.",
			CreatedAt: time.Now().UTC(),
		},
	}
	for _, b := range blogs {
		if _, err := st.Blogs.Create(ctx, b); err != nil {
			lgr.Error().Err(err).Str("title", b.Title).Msg("Error seeding blog post")
			finalErr = errors.Join(finalErr, err)
		}
	}

	groups := []*models.StudyGroup{
		{
			Name:        "Calculus I Crash Group",
			Subject:     "Mathematics",
			University:  "Istanbul Technical University",
			Description: "Weekly problem sessions before the midterms.",
		},
		{
			Name:        "Distributed Systems Reading Club",
			Subject:     "Computer Engineering",
			University:  "Bogazici University",
			Description: "One paper per week, discussion on Thursdays.",
		},
	}
	for _, g := range groups {
		if _, err := st.StudyGroups.Create(ctx, g); err != nil {
			lgr.Error().Err(err).Str("group", g.Name).Msg("Error seeding study group")
			finalErr = errors.Join(finalErr, err)
		}
	}

	welcome := &models.Notification{
		Message:   "Welcome to CampusHub!",
		Type:      "info",
		CreatedAt: time.Now().UTC(),
	}
	if _, err := st.Notifications.Create(ctx, welcome); err != nil {
		lgr.Error().Err(err).Msg("Error seeding notification")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr != nil {
		lgr.Warn().Err(finalErr).Msg("Seeding finished with errors")
	} else {
		lgr.Info().Msg("Seeding complete")
	}
	return finalErr
}
