package client

import (
	"context"
	"io"
	"net/http"

	"github.com/campushub/campushub/models"
)

// UsersService extends the users resource with the profile, membership and
// bookmark endpoints.
type UsersService struct {
	Resource[*models.User]
}

// membershipRequest is the join/leave-event payload.
type membershipRequest struct {
	UserID  string `json:"userId"`
	EventID string `json:"eventId"`
}

// EventsOf lists the events a user participates in.
func (s *UsersService) EventsOf(ctx context.Context, userID string) ([]*models.Event, error) {
	var out []*models.Event
	err := s.client.do(ctx, http.MethodGet, s.url("/"+userID+"/events"), nil, &out)
	return out, err
}

// ActivityOf lists a user's activity feed.
func (s *UsersService) ActivityOf(ctx context.Context, userID string) ([]*models.ActivityEntry, error) {
	var out []*models.ActivityEntry
	err := s.client.do(ctx, http.MethodGet, s.url("/"+userID+"/activity"), nil, &out)
	return out, err
}

// JoinEvent adds the user to an event's participants. The backend performs
// the add first and flips the event to Completed when it reaches capacity.
func (s *UsersService) JoinEvent(ctx context.Context, userID, eventID string) (*models.Event, error) {
	var out models.Event
	err := s.client.do(ctx, http.MethodPost, s.url("/join-event"),
		membershipRequest{UserID: userID, EventID: eventID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LeaveEvent removes the user from an event's participants.
func (s *UsersService) LeaveEvent(ctx context.Context, userID, eventID string) (*models.Event, error) {
	var out models.Event
	err := s.client.do(ctx, http.MethodPost, s.url("/leave-event"),
		membershipRequest{UserID: userID, EventID: eventID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Onboard completes a user's profile, optionally with a profile image. The
// request is multipart; non-file fields travel as form values.
func (s *UsersService) Onboard(ctx context.Context, userID string, fields map[string]string, imageName string, image io.Reader) (*models.User, error) {
	form := map[string]string{"userId": userID}
	for k, v := range fields {
		form[k] = v
	}
	var out models.User
	err := s.client.doMultipart(ctx, s.url("/onboard"), form, "profileImage", imageName, image, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// EventBookmarks lists the caller's event bookmarks.
func (s *UsersService) EventBookmarks(ctx context.Context) ([]*models.EventBookmark, error) {
	var out []*models.EventBookmark
	err := s.client.do(ctx, http.MethodGet, s.url("/event-bookmarks"), nil, &out)
	return out, err
}

// AddEventBookmark bookmarks an event.
func (s *UsersService) AddEventBookmark(ctx context.Context, bookmark *models.EventBookmark) (*models.EventBookmark, error) {
	var out models.EventBookmark
	err := s.client.do(ctx, http.MethodPost, s.url("/event-bookmarks"), bookmark, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveEventBookmark deletes a bookmark by id.
func (s *UsersService) RemoveEventBookmark(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, s.url("/event-bookmarks/"+id), nil, nil)
}
