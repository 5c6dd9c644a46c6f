package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Action  string `json:"action,omitempty"`
}

// ActionLoginRequired tells the browser to open the login prompt instead of
// showing a dead-end error. Set on session-expiry responses.
const ActionLoginRequired = "login_required"

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response.
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// JSONLoginRequired sends the session-expired response that prompts the
// browser to re-authenticate.
func JSONLoginRequired(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Message: "Your session has expired",
		Details: "Please sign in again to continue.",
		Action:  ActionLoginRequired,
	})
}
