// File: clarimed/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clarimed/config"
	"clarimed/cron"
	"clarimed/handlers"
	"clarimed/middleware"
	"clarimed/routes"
	"clarimed/services/account"
	"clarimed/services/billing"
	"clarimed/services/consent"
	"clarimed/services/partner"
	"clarimed/services/registration"
	"clarimed/services/report"
	"clarimed/upstream"
	"clarimed/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Upstream client and services.
	api := upstream.NewClient()

	consentSvc := &consent.DefaultConsentService{
		API:      api,
		Cache:    utils.GetCacheClient(),
		Language: config.AppConfig.ConsentLanguage,
	}
	registrationSvc := &registration.DefaultRegistrationService{
		API:      api,
		Store:    registration.NewRedisSessionStore(utils.GetWizardCacheClient()),
		Consents: consentSvc,
	}
	partnerSvc := &partner.DefaultPartnerService{
		API:   api,
		Cache: utils.GetCacheClient(),
	}
	billingSvc := &billing.DefaultBillingService{
		API:        api,
		Reconciler: cron.NewAsynqReconciler(),
	}
	accountSvc := &account.DefaultAccountService{API: api}

	hb := &handlers.HandlerBundle{
		Registration: registrationSvc,
		Consent:      consentSvc,
		Partner:      partnerSvc,
		Billing:      billingSvc,
		Account:      accountSvc,
		Upstream:     api,
		Pacer:        report.NewPacer(),
	}

	routes.RegisterRoutes(router, hb)

	// Background work: checkout reconciliation and consent refresh.
	cron.InitSubscriptionWorker(api)
	consentCron := cron.InitConsentRefresh(consentSvc)
	defer consentCron.Stop()

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetWizardCacheClient(),
	}, api)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("clarimed web tier listening on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
