package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mavryck/services"
	"mavryck/utils"
)

const CSRFHeader = "X-CSRF-Token"

// CSRFMiddleware rejects state-changing requests that do not carry the
// current anti-forgery token. Safe methods pass through.
func CSRFMiddleware(csrf *services.CSRFIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if !csrf.Validate(c.GetHeader(CSRFHeader)) {
			utils.TrackError("csrf", "token_mismatch")
			utils.Forbidden(c, "Invalid or missing CSRF token")
			c.Abort()
			return
		}

		c.Next()
	}
}
