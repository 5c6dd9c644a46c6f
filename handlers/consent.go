package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConsentRequirementsHandler serves the (cached) consent catalog.
func (hb *HandlerBundle) ConsentRequirementsHandler(c *gin.Context) {
	catalog, err := hb.Consent.Catalog(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}
