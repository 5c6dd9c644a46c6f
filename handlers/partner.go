package handlers

import (
	"net/http"

	"clarimed/middleware"
	"clarimed/models"
	"clarimed/utils"

	"github.com/gin-gonic/gin"
)

// ListPartnerKeysHandler serves the partner console's key list.
func (hb *HandlerBundle) ListPartnerKeysHandler(c *gin.Context) {
	keys, err := hb.Partner.List(c.Request.Context(), middleware.UpstreamToken(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// CreatePartnerKeyHandler provisions a new key.
func (hb *HandlerBundle) CreatePartnerKeyHandler(c *gin.Context) {
	var req models.PartnerAPIKeyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	key, err := hb.Partner.Create(c.Request.Context(), middleware.UpstreamToken(c), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, key)
}

// UpdatePartnerKeyHandler updates rate limits, expiry, whitelist or the
// active flag of an existing key.
func (hb *HandlerBundle) UpdatePartnerKeyHandler(c *gin.Context) {
	var req models.PartnerAPIKeyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	key, err := hb.Partner.Update(c.Request.Context(), middleware.UpstreamToken(c), c.Param("keyID"), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, key)
}

// DeletePartnerKeyHandler revokes a key.
func (hb *HandlerBundle) DeletePartnerKeyHandler(c *gin.Context) {
	if err := hb.Partner.Delete(c.Request.Context(), middleware.UpstreamToken(c), c.Param("keyID")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
