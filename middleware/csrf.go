package middleware

import (
	"crypto/subtle"
	"net/http"

	"clarimed/utils"

	"github.com/gin-gonic/gin"
)

// CSRFHeader is the double-submit header the browser must echo on mutating
// requests. Its value is handed out at login time together with the cookie.
const CSRFHeader = "X-CSRF-Token"

// CSRFMiddleware enforces the double-submit check on mutating methods.
// Must run after SessionAuthMiddleware, which puts the session's CSRF
// secret into the context.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		secretVal, _ := c.Get(CtxCSRFSecret)
		secret, _ := secretVal.(string)
		supplied := c.GetHeader(CSRFHeader)
		if secret == "" || supplied == "" ||
			subtle.ConstantTimeCompare([]byte(secret), []byte(supplied)) != 1 {
			utils.JSONError(c, http.StatusForbidden, "Invalid request", "CSRF token missing or invalid")
			c.Abort()
			return
		}
		c.Next()
	}
}
