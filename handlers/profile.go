package handlers

import (
	"net/http"

	"clarimed/middleware"
	"clarimed/models"
	"clarimed/utils"

	"github.com/gin-gonic/gin"
)

// GetProfileHandler returns the signed-in user's profile.
func (hb *HandlerBundle) GetProfileHandler(c *gin.Context) {
	profile, err := hb.Account.Profile(c.Request.Context(), middleware.UpstreamToken(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler persists profile edits.
func (hb *HandlerBundle) UpdateProfileHandler(c *gin.Context) {
	var req models.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	updated, err := hb.Account.UpdateProfile(c.Request.Context(), middleware.UpstreamToken(c), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
