package middleware

import (
	"clarimed/config"
	"clarimed/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by SessionAuthMiddleware.
const (
	CtxUpstreamToken = "upstreamToken"
	CtxCSRFSecret    = "csrfSecret"
	CtxUserEmail     = "userEmail"
)

// SessionAuthMiddleware resolves the signed session cookie and injects the
// upstream API token into the request context. A missing or invalid cookie
// gets the login-required response so the browser opens the login prompt
// instead of hitting a dead end.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(config.AppConfig.SessionCookieName)
		if err != nil || cookie == "" {
			utils.JSONLoginRequired(c)
			c.Abort()
			return
		}

		claims, err := utils.ParseSessionCookie(cookie)
		if err != nil || claims.UpstreamToken == "" {
			utils.JSONLoginRequired(c)
			c.Abort()
			return
		}

		c.Set(CtxUpstreamToken, claims.UpstreamToken)
		c.Set(CtxCSRFSecret, claims.CSRFSecret)
		c.Set(CtxUserEmail, claims.Email)
		c.Next()
	}
}

// UpstreamToken extracts the upstream API token placed by the middleware.
func UpstreamToken(c *gin.Context) string {
	token, _ := c.Get(CtxUpstreamToken)
	s, _ := token.(string)
	return s
}

// UserEmail extracts the signed-in user's email placed by the middleware.
func UserEmail(c *gin.Context) string {
	email, _ := c.Get(CtxUserEmail)
	s, _ := email.(string)
	return s
}
