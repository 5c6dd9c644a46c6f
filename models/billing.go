package models

// Plan is one pricing-page entry, proxied from the upstream catalog.
type Plan struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	PriceCents    int64  `json:"price_cents"`
	Currency      string `json:"currency"`
	Interval      string `json:"interval"` // month, year
	MonthlyQuota  int    `json:"monthly_quota"`
	StripePriceID string `json:"stripe_price_id,omitempty"`
}

// CheckoutRequest selects a plan and a payment provider.
type CheckoutRequest struct {
	PlanID   string `json:"plan_id" binding:"required"`
	Provider string `json:"provider" binding:"required,oneof=stripe paypal"`
}

// CheckoutRedirect is the provider-hosted page the browser is sent to.
type CheckoutRedirect struct {
	Provider    string `json:"provider"`
	RedirectURL string `json:"redirect_url"`
}
