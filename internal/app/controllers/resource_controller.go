package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/store"
)

// ResourceController serves the plain CRUD surface of one collection. List
// endpoints return flat arrays; mutation endpoints return the mutated
// resource.
type ResourceController[E store.Entity] struct {
	store store.Store[E]
}

// NewResourceController creates a controller over one collection.
func NewResourceController[E store.Entity](st store.Store[E]) *ResourceController[E] {
	return &ResourceController[E]{store: st}
}

// List handles GET /<resource>.
func (rc *ResourceController[E]) List(c *gin.Context) {
	entities, err := rc.store.List(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, entities)
}

// Get handles GET /<resource>/:id.
func (rc *ResourceController[E]) Get(c *gin.Context) {
	entity, err := rc.find(c, c.Param("id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// Create handles POST /<resource>.
func (rc *ResourceController[E]) Create(c *gin.Context) {
	var entity E
	if err := c.ShouldBindJSON(&entity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	created, err := rc.store.Create(c.Request.Context(), entity)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PATCH /<resource>/:id. The request body is merged over
// the stored entity, so both partial and full payloads work.
func (rc *ResourceController[E]) Update(c *gin.Context) {
	id := c.Param("id")
	entity, err := rc.find(c, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if err := c.ShouldBindJSON(&entity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	updated, err := rc.store.Update(c.Request.Context(), id, entity)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /<resource>/:id.
func (rc *ResourceController[E]) Delete(c *gin.Context) {
	if err := rc.store.Remove(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// find scans the collection for one id.
func (rc *ResourceController[E]) find(c *gin.Context, id string) (E, error) {
	var zero E
	entities, err := rc.store.List(c.Request.Context())
	if err != nil {
		return zero, err
	}
	for _, entity := range entities {
		if entity.GetID() == id {
			return entity, nil
		}
	}
	return zero, notFound(id)
}
