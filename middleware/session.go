package middleware

import (
	"github.com/gin-gonic/gin"

	"mavryck/services"
	"mavryck/utils"
)

// RequireSession guards privileged routes. It is the explicit
// authorization extension point for all authenticated operations: a
// request only proceeds when a valid session exists, and each request
// that passes counts as activity and extends the session.
func RequireSession(sessions *services.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsValid() {
			utils.Unauthorized(c, "Session expired or not logged in")
			c.Abort()
			return
		}

		sessions.Touch()

		if session := sessions.Current(); session != nil {
			c.Set("session", session)
		}
		c.Next()
	}
}
