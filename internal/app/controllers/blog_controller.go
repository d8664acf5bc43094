package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/filestorage"
	"github.com/campushub/campushub/models"
	"github.com/campushub/campushub/store"
)

// BlogController handles the /blogs surface and the generic /uploads
// endpoint.
type BlogController struct {
	ResourceController[*models.BlogPost]
	fileStorage *filestorage.LocalStorage
}

// NewBlogController creates a new BlogController.
func NewBlogController(st store.Store[*models.BlogPost], fileStorage *filestorage.LocalStorage) *BlogController {
	return &BlogController{
		ResourceController: ResourceController[*models.BlogPost]{store: st},
		fileStorage:        fileStorage,
	}
}

// Upload handles POST /uploads, a multipart form with a file part and a
// prefix field selecting the target folder.
func (bc *BlogController) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is required"})
		return
	}
	url, err := bc.fileStorage.SaveFile(file, c.PostForm("prefix"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
