package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/inkpress/auth"
	"github.com/inkpress/inkpress/model"
	"github.com/inkpress/inkpress/store"
	Logger "github.com/inkpress/inkpress/utils/log"
	"gorm.io/gorm"
)

// context key under which the resolved user is stashed
const userKey = "user"

// Session resolves the session token into a user and stashes it in the
// gin context. The token comes from the HTTP-only "token" cookie, with an
// Authorization bearer header as fallback for non-browser clients. The
// user row is reloaded from the DB on every request so role changes apply
// immediately. A missing or invalid token just leaves the request
// anonymous; RequireAuth is what turns that into a 401.
func Session(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.Next()
			return
		}

		user, err := store.GetUserById(db, claims.UserId)
		if err != nil {
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// ExternalSession is the alternative auth mode: a verifying gateway in
// front of the server strips any inbound identity headers and installs
// its own after validating the provider token. Here we only sync the
// already-verified identity onto a local user row.
func ExternalSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalId := c.GetHeader("X-Auth-External-Id")
		if externalId == "" {
			c.Next()
			return
		}

		user, err := auth.SyncExternalUser(db, externalId, c.GetHeader("X-Auth-Email"), c.GetHeader("X-Auth-Name"))
		if err != nil {
			Logger.Log.Warn("failed to sync external identity: ", err)
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireAuth aborts anonymous requests with 401. Must run after Session
// or ExternalSession.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by the session middleware, or
// nil for anonymous requests.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

func tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(auth.TokenCookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
