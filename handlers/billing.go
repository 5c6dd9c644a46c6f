package handlers

import (
	"net/http"

	"clarimed/middleware"
	"clarimed/models"
	"clarimed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlansHandler serves the pricing catalog.
func (hb *HandlerBundle) PlansHandler(c *gin.Context) {
	plans, err := hb.Billing.Plans(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// CheckoutHandler builds the provider-hosted checkout redirect.
func (hb *HandlerBundle) CheckoutHandler(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	redirect, err := hb.Billing.Checkout(c.Request.Context(), middleware.UpstreamToken(c), middleware.UserEmail(c), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, redirect)
}

// CheckoutReturnHandler receives the browser back from the provider and
// schedules the subscription reconciliation poll.
func (hb *HandlerBundle) CheckoutReturnHandler(c *gin.Context) {
	status := c.Query("status")
	if status == "success" {
		if err := hb.Billing.OnCheckoutReturn(c.Request.Context(), middleware.UpstreamToken(c), c.Query("plan")); err != nil {
			getLogger(c).Warn("Failed to schedule checkout reconciliation", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// SubscriptionHandler serves the profile area's subscription view.
func (hb *HandlerBundle) SubscriptionHandler(c *gin.Context) {
	sub, err := hb.Billing.Subscription(c.Request.Context(), middleware.UpstreamToken(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// CancelSubscriptionHandler cancels at period end.
func (hb *HandlerBundle) CancelSubscriptionHandler(c *gin.Context) {
	if err := hb.Billing.CancelSubscription(c.Request.Context(), middleware.UpstreamToken(c)); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription will end at the close of the current period"})
}
