// Package controllers holds the gin handlers of the development API
// server.
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/internal/middleware"
)

func notFound(id string) error {
	return apperrors.NewNotFoundError("no resource with id " + id)
}

// currentUserID returns the authenticated user id set by the auth
// middleware.
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}
