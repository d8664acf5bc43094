package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campushub/campushub/internal/app/stores"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/auth"
	"github.com/campushub/campushub/internal/pkg/filestorage"
	"github.com/campushub/campushub/models"
)

// UserController handles the /users surface: CRUD plus profile, event
// membership and bookmark endpoints.
type UserController struct {
	ResourceController[*models.User]
	stores      *stores.Stores
	fileStorage *filestorage.LocalStorage
	logger      zerolog.Logger
}

// NewUserController creates a new UserController.
func NewUserController(st *stores.Stores, fileStorage *filestorage.LocalStorage, logger zerolog.Logger) *UserController {
	return &UserController{
		ResourceController: ResourceController[*models.User]{store: st.Users},
		stores:             st,
		fileStorage:        fileStorage,
		logger:             logger,
	}
}

// List handles GET /users, with password hashes stripped.
func (uc *UserController) List(c *gin.Context) {
	users, err := uc.stores.Users.List(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	out := make([]*models.User, 0, len(users))
	for _, user := range users {
		out = append(out, user.Sanitized())
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /users/:id.
func (uc *UserController) Get(c *gin.Context) {
	user, err := uc.find(c, c.Param("id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Sanitized())
}

// Create handles POST /users. Plaintext passwords in the payload are
// hashed before the record is stored.
func (uc *UserController) Create(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if user.Password != "" {
		hash, err := auth.HashPassword(user.Password)
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		user.Password = hash
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = time.Now()

	created, err := uc.stores.Users.Create(c.Request.Context(), &user)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created.Sanitized())
}

// EventsOf handles GET /users/:id/events.
func (uc *UserController) EventsOf(c *gin.Context) {
	userID := c.Param("id")
	events, err := uc.stores.Events.List(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	joined := []*models.Event{}
	for _, event := range events {
		if event.HasParticipant(userID) {
			joined = append(joined, event)
		}
	}
	c.JSON(http.StatusOK, joined)
}

// ActivityOf handles GET /users/:id/activity.
func (uc *UserController) ActivityOf(c *gin.Context) {
	userID := c.Param("id")
	entries, err := uc.stores.Activity.List(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	own := []*models.ActivityEntry{}
	for _, entry := range entries {
		if entry.UserID == userID {
			own = append(own, entry)
		}
	}
	c.JSON(http.StatusOK, own)
}

// Onboard handles POST /users/onboard, a multipart form with profile
// fields and an optional profile image.
func (uc *UserController) Onboard(c *gin.Context) {
	userID := c.PostForm("userId")
	if userID == "" {
		userID = currentUserID(c)
	}

	user, err := uc.find(c, userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if university := c.PostForm("university"); university != "" {
		user.University = university
	}
	if city := c.PostForm("city"); city != "" {
		user.City = city
	}
	if file, err := c.FormFile("profileImage"); err == nil && file != nil {
		url, err := uc.fileStorage.SaveFile(file, "profiles")
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		user.AvatarURL = url
	}

	updated, err := uc.stores.Users.Update(c.Request.Context(), userID, user)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	uc.recordActivity(c, userID, "onboarded", "")
	c.JSON(http.StatusOK, updated.Sanitized())
}

type membershipRequest struct {
	UserID  string `json:"userId" binding:"required"`
	EventID string `json:"eventId" binding:"required"`
}

// JoinEvent handles POST /users/join-event. The participant is appended
// first; reaching capacity then flips the event to Completed. There is no
// pre-check rejection.
func (uc *UserController) JoinEvent(c *gin.Context) {
	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	event, err := uc.findEvent(c, req.EventID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if event.HasParticipant(req.UserID) {
		c.JSON(http.StatusOK, event)
		return
	}

	event.Join(req.UserID)
	updated, err := uc.stores.Events.Update(c.Request.Context(), event.ID, event)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	uc.recordActivity(c, req.UserID, "joined-event", event.Name)
	c.JSON(http.StatusOK, updated)
}

// LeaveEvent handles POST /users/leave-event.
func (uc *UserController) LeaveEvent(c *gin.Context) {
	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	event, err := uc.findEvent(c, req.EventID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	event.Leave(req.UserID)
	updated, err := uc.stores.Events.Update(c.Request.Context(), event.ID, event)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	uc.recordActivity(c, req.UserID, "left-event", event.Name)
	c.JSON(http.StatusOK, updated)
}

// Bookmarks handles GET /users/event-bookmarks for the authenticated user.
func (uc *UserController) Bookmarks(c *gin.Context) {
	bookmarks, err := uc.stores.Bookmarks.List(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	userID := currentUserID(c)
	own := []*models.EventBookmark{}
	for _, bookmark := range bookmarks {
		if bookmark.UserID == userID {
			own = append(own, bookmark)
		}
	}
	c.JSON(http.StatusOK, own)
}

// AddBookmark handles POST /users/event-bookmarks.
func (uc *UserController) AddBookmark(c *gin.Context) {
	var bookmark models.EventBookmark
	if err := c.ShouldBindJSON(&bookmark); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if bookmark.UserID == "" {
		bookmark.UserID = currentUserID(c)
	}
	created, err := uc.stores.Bookmarks.Create(c.Request.Context(), &bookmark)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// RemoveBookmark handles DELETE /users/event-bookmarks/:id.
func (uc *UserController) RemoveBookmark(c *gin.Context) {
	if err := uc.stores.Bookmarks.Remove(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (uc *UserController) findEvent(c *gin.Context, id string) (*models.Event, error) {
	events, err := uc.stores.Events.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	for _, event := range events {
		if event.ID == id {
			return event, nil
		}
	}
	return nil, notFound(id)
}

// recordActivity is best-effort; a failed write only logs.
func (uc *UserController) recordActivity(c *gin.Context, userID, action, subject string) {
	_, err := uc.stores.Activity.Create(c.Request.Context(), &models.ActivityEntry{
		UserID:    userID,
		Action:    action,
		Subject:   subject,
		Timestamp: time.Now(),
	})
	if err != nil {
		uc.logger.Warn().Err(err).Str("action", action).Msg("Failed to record activity")
	}
}
