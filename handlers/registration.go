package handlers

import (
	"net/http"
	"strings"

	"clarimed/models"
	"clarimed/services/registration"
	"clarimed/utils"

	"github.com/gin-gonic/gin"
)

// StartRegistrationHandler opens a fresh wizard session (a visitor starting
// from step one; deep-link entries go through EntryHandler instead).
func (hb *HandlerBundle) StartRegistrationHandler(c *gin.Context) {
	session, err := hb.Registration.Start(c.Request.Context(), models.EntryParams{})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not start registration", "Please try again.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session.ID, "step": session.CurrentStep})
}

// RegistrationSessionHandler reports the wizard's current state so a page
// reload can resume where it left off.
func (hb *HandlerBundle) RegistrationSessionHandler(c *gin.Context) {
	session, err := hb.Registration.Session(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Registration session not found", "It may have expired; please start again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": session.ID,
		"step":    session.CurrentStep,
		"email":   session.VerifiedEmail,
		"doctor":  session.Doctor,
	})
}

// VerifyDoctorHandler runs the first wizard step.
func (hb *HandlerBundle) VerifyDoctorHandler(c *gin.Context) {
	var req models.DoctorCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	result, err := hb.Registration.VerifyDoctor(c.Request.Context(), c.Param("sessionID"), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RequestEmailCodeHandler asks upstream to send the verification code.
func (hb *HandlerBundle) RequestEmailCodeHandler(c *gin.Context) {
	var req struct {
		Email         string `json:"email" binding:"required"`
		TermsAccepted bool   `json:"terms_accepted"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	result, err := hb.Registration.RequestEmailCode(c.Request.Context(), c.Param("sessionID"), req.Email, req.TermsAccepted)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitCodeHandler confirms the 6-digit code. The browser may send the
// joined code or the six raw cells; cells win when both are present.
func (hb *HandlerBundle) SubmitCodeHandler(c *gin.Context) {
	var req struct {
		Code  string     `json:"code"`
		Cells *[6]string `json:"cells"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	code := strings.TrimSpace(req.Code)
	if req.Cells != nil {
		cells := registration.CodeCells(*req.Cells)
		code = cells.Join()
	}

	result, err := hb.Registration.SubmitCode(c.Request.Context(), c.Param("sessionID"), code)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AutoConfirmHandler silently confirms a deep-link token.
func (hb *HandlerBundle) AutoConfirmHandler(c *gin.Context) {
	result, err := hb.Registration.AutoConfirm(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitRegistrationHandler runs the final step.
func (hb *HandlerBundle) SubmitRegistrationHandler(c *gin.Context) {
	var req struct {
		Form     models.RegistrationForm `json:"form"`
		Consents models.ConsentSet       `json:"consents"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	result, err := hb.Registration.SubmitRegistration(c.Request.Context(), c.Param("sessionID"), req.Form, req.Consents)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ChangeEmailHandler is the explicit go-back action from code entry.
func (hb *HandlerBundle) ChangeEmailHandler(c *gin.Context) {
	result, err := hb.Registration.ChangeEmail(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AbandonRegistrationHandler destroys the wizard session (modal closed).
func (hb *HandlerBundle) AbandonRegistrationHandler(c *gin.Context) {
	if err := hb.Registration.Abandon(c.Request.Context(), c.Param("sessionID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not close registration", "")
		return
	}
	c.Status(http.StatusNoContent)
}

// FiscalCodeCheckHandler reports the three per-rule results so the form can
// show granular pass/fail while the user types.
func (hb *HandlerBundle) FiscalCodeCheckHandler(c *gin.Context) {
	code := c.Query("code")
	c.JSON(http.StatusOK, registration.ValidateFiscalCode(code))
}

// DistributePasteHandler spreads pasted text across the six code cells for
// browsers that delegate the paste handling.
func (hb *HandlerBundle) DistributePasteHandler(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	cells := registration.DistributePaste(req.Text)
	c.JSON(http.StatusOK, gin.H{"cells": cells})
}
