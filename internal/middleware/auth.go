package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionUserKey is the session entry holding the remembered user id.
	SessionUserKey = "user_id"
	// ContextKeyUserID is where CurrentUser stores the resolved user id.
	ContextKeyUserID = "userId"
	// UserIDHeader lets non-browser clients name the acting user.
	UserIDHeader = "X-User-Id"
)

// CurrentUser resolves the acting user from the X-User-Id header or, failing
// that, from the session. Requests without either continue anonymously.
func CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader(UserIDHeader)); userID != "" {
			c.Set(ContextKeyUserID, userID)
			c.Next()
			return
		}

		if userID, ok := sessionUserID(c); ok {
			c.Set(ContextKeyUserID, userID)
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}

// InitiatorID is the user credited with a mutation in board events: the
// current user when known, otherwise fallback (a body authorId or userId).
func InitiatorID(c *gin.Context, fallback *string) *string {
	if userID, ok := GetUserID(c); ok {
		return &userID
	}
	if fallback != nil && *fallback != "" {
		return fallback
	}
	return nil
}

// RememberUser stores userID in the session so later requests resolve it.
func RememberUser(c *gin.Context, userID string) error {
	session := sessions.Default(c)
	session.Set(SessionUserKey, userID)
	return session.Save()
}

// SessionUserID returns the user remembered by RememberUser.
func SessionUserID(c *gin.Context) (string, bool) {
	return sessionUserID(c)
}

func sessionUserID(c *gin.Context) (string, bool) {
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return "", false
	}
	userID, ok := sessions.Default(c).Get(SessionUserKey).(string)
	return userID, ok && userID != ""
}
