package middleware

import (
	"net/http"

	"karmafeed/internal/models"
	"karmafeed/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// SessionUserKey is the session field holding the logged-in user's id.
const SessionUserKey = "user_id"

// AuthRequired rejects requests without a loaded user. It must run after LoadUser.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": services.ErrUnauthorized.Error()})
			return
		}
		c.Next()
	}
}

// LoadUser retrieves user from session and sets to context
func LoadUser(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		var userID uint
		switch v := session.Get(SessionUserKey).(type) {
		case uint:
			userID = v
		case int:
			userID = uint(v)
		}

		if userID != 0 {
			user, err := accounts.Get(c.Request.Context(), userID)
			if err == nil {
				c.Set(CheckUserKey, user)
			} else {
				// stale session, user was deleted
				session.Delete(SessionUserKey)
				_ = session.Save()
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user set by LoadUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get(CheckUserKey)
	if !exists {
		return nil, false
	}
	return user.(*models.User), true
}
