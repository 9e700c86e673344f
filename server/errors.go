package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/inkpress/auth"
	"github.com/inkpress/inkpress/store"
	Logger "github.com/inkpress/inkpress/utils/log"
	"github.com/pkg/errors"
)

// abortWithError maps store/auth sentinel errors onto HTTP statuses.
// Anything unrecognized is a 500 with a generic body, the cause only goes
// to the server log.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, auth.ErrSetupCompleted):
		c.JSON(http.StatusForbidden, gin.H{"error": "Setup already completed. Please login."})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, auth.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	case errors.Is(err, store.ErrEmptyComment):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment content is required"})
	case errors.Is(err, store.ErrInvalidParent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parent comment"})
	case errors.Is(err, store.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
	case errors.Is(err, store.ErrSelfDelete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete yourself"})
	default:
		Logger.Log.Error("request failed: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}
