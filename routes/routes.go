package routes

import (
	"net/http"
	"time"

	"clarimed/handlers"
	"clarimed/middleware"
	"clarimed/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the login/logout/reset/B2B endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)
		api.POST("/password-reset/request", hb.PasswordResetRequestHandler)
		api.POST("/password-reset/confirm", hb.PasswordResetConfirmHandler)
		api.POST("/b2b/activate", hb.B2BActivateHandler)

		// Protected routes (require a valid session cookie).
		protected := api.Group("")
		protected.Use(middleware.SessionAuthMiddleware(), middleware.CSRFMiddleware())
		protected.POST("/logout", hb.LogoutHandler)
		protected.GET("/b2b/accounts", hb.B2BAccountsHandler)
		protected.POST("/b2b/select", hb.B2BSelectHandler)
	}
}

// RegisterEntryRoute registers the deep-link resolution endpoint hit once
// per page load.
func RegisterEntryRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/entry", hb.EntryHandler)
}

// RegisterRegistrationRoutes registers the sign-up wizard. Wizard sessions
// exist before authentication, so none of these require the session cookie.
func RegisterRegistrationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/registration")
	{
		api.POST("", hb.StartRegistrationHandler)
		api.GET("/validate/fiscal-code", hb.FiscalCodeCheckHandler)
		api.POST("/code-cells/paste", hb.DistributePasteHandler)

		api.GET("/:sessionID", hb.RegistrationSessionHandler)
		api.POST("/:sessionID/verify-doctor", hb.VerifyDoctorHandler)
		api.POST("/:sessionID/request-code", hb.RequestEmailCodeHandler)
		api.POST("/:sessionID/submit-code", hb.SubmitCodeHandler)
		api.POST("/:sessionID/auto-confirm", hb.AutoConfirmHandler)
		api.POST("/:sessionID/submit", hb.SubmitRegistrationHandler)
		api.POST("/:sessionID/change-email", hb.ChangeEmailHandler)
		api.DELETE("/:sessionID", hb.AbandonRegistrationHandler)
	}
}

// RegisterConsentRoute registers the consent catalog endpoint.
func RegisterConsentRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/consent/requirements", hb.ConsentRequirementsHandler)
}

// RegisterReportRoutes registers the streaming workspace endpoints.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	{
		api.Use(middleware.SessionAuthMiddleware(), middleware.CSRFMiddleware())
		api.POST("/improve", hb.ImproveReportHandler)
		api.POST("/transcribe", hb.TranscribeHandler)
	}
}

// RegisterPartnerRoutes registers the partner-key console.
func RegisterPartnerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/partner/keys")
	{
		api.Use(middleware.SessionAuthMiddleware(), middleware.CSRFMiddleware())
		api.GET("", hb.ListPartnerKeysHandler)
		api.POST("", hb.CreatePartnerKeyHandler)
		api.PUT("/:keyID", hb.UpdatePartnerKeyHandler)
		api.DELETE("/:keyID", hb.DeletePartnerKeyHandler)
	}
}

// RegisterBillingRoutes registers pricing, checkout and the profile area.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/billing/plans", hb.PlansHandler)

	api := r.Group("/api")
	{
		api.Use(middleware.SessionAuthMiddleware(), middleware.CSRFMiddleware())
		api.POST("/billing/checkout", hb.CheckoutHandler)
		api.GET("/checkout/return", hb.CheckoutReturnHandler)
		api.GET("/billing/subscription", hb.SubscriptionHandler)
		api.POST("/billing/subscription/cancel", hb.CancelSubscriptionHandler)
		api.GET("/account/profile", hb.GetProfileHandler)
		api.PUT("/account/profile", hb.UpdateProfileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.CSRFHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterEntryRoute(r, hb)
	RegisterRegistrationRoutes(r, hb)
	RegisterConsentRoute(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterPartnerRoutes(r, hb)
	RegisterBillingRoutes(r, hb)
	RegisterHealthRoute(r)
}
