package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/filestorage"
	"github.com/campushub/campushub/models"
	"github.com/campushub/campushub/store"
)

// EventController handles the /events surface.
type EventController struct {
	ResourceController[*models.Event]
	fileStorage *filestorage.LocalStorage
}

// NewEventController creates a new EventController.
func NewEventController(st store.Store[*models.Event], fileStorage *filestorage.LocalStorage) *EventController {
	return &EventController{
		ResourceController: ResourceController[*models.Event]{store: st},
		fileStorage:        fileStorage,
	}
}

// UploadImage handles POST /events/upload-event-image.
func (ec *EventController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "image file is required"})
		return
	}
	url, err := ec.fileStorage.SaveFile(file, "events")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
