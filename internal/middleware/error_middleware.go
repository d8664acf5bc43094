package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/apperrors"
	"github.com/campushub/campushub/internal/pkg/logger"
)

// HandleAPIError maps an application error to the conventional HTTP status
// and the JSON message body. Every handler funnels failures through here so
// status mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case apperrors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	case apperrors.Is(err, apperrors.ErrUnauthorized, apperrors.ErrInvalidCredentials,
		apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case apperrors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
