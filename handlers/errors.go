package handlers

import (
	"errors"
	"net/http"

	"clarimed/upstream"
	"clarimed/utils"

	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error onto the response taxonomy: session
// expiry prompts a login, the two flavors of 429 get distinct messages,
// transport failures get the generic connection message, and upstream
// rejections are surfaced verbatim. Everything else is a local validation
// failure shown inline as a 400.
func respondWithError(c *gin.Context, err error) {
	if errors.Is(err, upstream.ErrConnection) {
		utils.JSONError(c, http.StatusBadGateway, "Connection error", "Could not reach the server, please try again.")
		return
	}

	if apiErr, ok := upstream.AsAPIError(err); ok {
		switch apiErr.Kind {
		case upstream.KindSessionExpired:
			utils.JSONLoginRequired(c)
		case upstream.KindRateLimited:
			utils.JSONError(c, http.StatusTooManyRequests, "Too many requests", "Please wait a minute and try again.")
		case upstream.KindQuotaExhausted:
			utils.JSONError(c, http.StatusTooManyRequests, "Monthly quota exhausted", "You have used all the reports included in your plan this month.")
		case upstream.KindServer:
			utils.JSONError(c, http.StatusBadGateway, "Something went wrong", "The service is temporarily unavailable, please try again.")
		default:
			utils.JSONError(c, apiErr.Status, apiErr.Message, "")
		}
		return
	}

	utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
}
