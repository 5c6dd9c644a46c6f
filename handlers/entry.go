package handlers

import (
	"net/http"

	"clarimed/models"
	"clarimed/services/registration"
	"clarimed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EntryHandler resolves the deep-link URL parameters carried by
// transactional emails into a typed descriptor the browser acts on:
// password reset, B2B activation, or a resumable registration. For a
// registration link a wizard session is created immediately so the browser
// lands on the right step with prefilled fields.
func (hb *HandlerBundle) EntryHandler(c *gin.Context) {
	switch {
	case c.Query("reset") == "true" && c.Query("token") != "":
		c.JSON(http.StatusOK, gin.H{
			"flow":  "password_reset",
			"token": c.Query("token"),
		})

	case c.Query("activate") == "b2b":
		c.JSON(http.StatusOK, gin.H{
			"flow":  "b2b_activation",
			"email": c.Query("email"),
			"token": c.Query("token"),
		})

	case c.Query("verify") == "email":
		entry := models.EntryParams{
			Email:         c.Query("email"),
			Token:         c.Query("token"),
			GivenName:     c.Query("nome"),
			FamilyName:    c.Query("cognome"),
			BirthDate:     c.Query("birth_date"),
			LicenseNumber: c.Query("odm"),
		}
		// Token presence decides between silent confirmation and manual
		// code entry with the email pre-filled.
		if entry.Token != "" {
			entry.StepHint = registration.HintAutoConfirm
		} else {
			entry.StepHint = registration.HintEmailConfirm
		}

		session, err := hb.Registration.Start(c.Request.Context(), entry)
		if err != nil {
			getLogger(c).Error("Failed to start wizard from deep link", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Could not resume your registration", "Please try again.")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"flow":    "registration",
			"session": session.ID,
			"step":    session.CurrentStep,
			"email":   session.VerifiedEmail,
			"doctor":  session.Doctor,
		})

	default:
		c.JSON(http.StatusOK, gin.H{"flow": "none"})
	}
}
