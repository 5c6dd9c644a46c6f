package handlers

import (
	"net/http"
	"time"

	"clarimed/config"
	"clarimed/middleware"
	"clarimed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setSessionCookie signs and installs the session cookie, returning the
// CSRF token the browser must echo on mutating requests.
func setSessionCookie(c *gin.Context, upstreamToken, email string) (string, error) {
	csrfSecret, err := utils.NewCSRFSecret()
	if err != nil {
		return "", err
	}
	ttl := time.Duration(config.AppConfig.SessionTTLMins) * time.Minute
	cookie, err := utils.SignSessionCookie(upstreamToken, csrfSecret, email, ttl)
	if err != nil {
		return "", err
	}
	c.SetCookie(config.AppConfig.SessionCookieName, cookie, int(ttl.Seconds()), "/", "", config.IsProduction(), true)
	return csrfSecret, nil
}

// LoginHandler authenticates against upstream and installs the session cookie.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := hb.Account.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		respondWithError(c, err)
		return
	}

	csrfToken, err := setSessionCookie(c, resp.Token, resp.User.Email)
	if err != nil {
		logger.Error("Failed to issue session cookie", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed", "Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": resp.User, "csrf_token": csrfToken})
}

// LogoutHandler invalidates the upstream session and clears the cookie.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	token := middleware.UpstreamToken(c)
	if err := hb.Account.Logout(c.Request.Context(), token); err != nil {
		// Best effort: the cookie is cleared regardless.
		getLogger(c).Warn("Upstream logout failed", zap.Error(err))
	}
	c.SetCookie(config.AppConfig.SessionCookieName, "", -1, "/", "", config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// PasswordResetRequestHandler triggers the reset email.
func (hb *HandlerBundle) PasswordResetRequestHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := hb.Account.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the address exists, a reset link is on its way"})
}

// PasswordResetConfirmHandler sets the new password from a deep-link token.
func (hb *HandlerBundle) PasswordResetConfirmHandler(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := hb.Account.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated, you can sign in now"})
}

// B2BActivateHandler completes a sub-account activation deep link.
func (hb *HandlerBundle) B2BActivateHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	if err := hb.Account.ActivateB2B(c.Request.Context(), req.Email, req.Token); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account activated, you can sign in now"})
}

// B2BAccountsHandler lists selectable sub-accounts.
func (hb *HandlerBundle) B2BAccountsHandler(c *gin.Context) {
	accounts, err := hb.Account.AvailableAccounts(c.Request.Context(), middleware.UpstreamToken(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// B2BSelectHandler switches the session to another sub-account and rotates
// the session cookie to the re-scoped token.
func (hb *HandlerBundle) B2BSelectHandler(c *gin.Context) {
	var req struct {
		AccountID string `json:"account_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := hb.Account.SelectAccount(c.Request.Context(), middleware.UpstreamToken(c), req.AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	csrfToken, err := setSessionCookie(c, resp.Token, resp.User.Email)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Account switch failed", "Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": resp.User, "csrf_token": csrfToken})
}
