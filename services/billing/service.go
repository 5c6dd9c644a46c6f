// Package billing drives the pricing/checkout flow. Price computation and
// entitlement stay upstream; this service only builds provider-hosted
// checkout redirects and reconciles the subscription view afterwards.
package billing

import (
	"context"
	"fmt"
	"net/url"

	"clarimed/config"
	"clarimed/models"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
)

// API is the slice of the upstream client this service needs.
type API interface {
	Plans(ctx context.Context) ([]models.Plan, error)
	Subscription(ctx context.Context, token string) (*models.Subscription, error)
	CancelSubscription(ctx context.Context, token string) error
}

// Reconciler schedules the post-checkout subscription poll.
type Reconciler interface {
	SchedulePoll(ctx context.Context, upstreamToken, planID string) error
}

type Service interface {
	Plans(ctx context.Context) ([]models.Plan, error)
	Checkout(ctx context.Context, token, email string, req models.CheckoutRequest) (*models.CheckoutRedirect, error)
	OnCheckoutReturn(ctx context.Context, token, planID string) error
	Subscription(ctx context.Context, token string) (*models.Subscription, error)
	CancelSubscription(ctx context.Context, token string) error
}

// DefaultBillingService is the production implementation.
type DefaultBillingService struct {
	API        API
	Reconciler Reconciler
}

func (s *DefaultBillingService) Plans(ctx context.Context) ([]models.Plan, error) {
	return s.API.Plans(ctx)
}

// Checkout builds the provider-hosted checkout redirect for the selected
// plan. Stripe gets a real Checkout Session; PayPal gets a redirect URL the
// provider resolves itself.
func (s *DefaultBillingService) Checkout(ctx context.Context, token, email string, req models.CheckoutRequest) (*models.CheckoutRedirect, error) {
	plans, err := s.API.Plans(ctx)
	if err != nil {
		return nil, err
	}
	var plan *models.Plan
	for i := range plans {
		if plans[i].ID == req.PlanID {
			plan = &plans[i]
			break
		}
	}
	if plan == nil {
		return nil, fmt.Errorf("unknown plan: %s", req.PlanID)
	}

	switch req.Provider {
	case "stripe":
		return s.stripeCheckout(plan, email)
	case "paypal":
		return s.paypalCheckout(plan), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", req.Provider)
	}
}

func (s *DefaultBillingService) stripeCheckout(plan *models.Plan, email string) (*models.CheckoutRedirect, error) {
	if plan.StripePriceID == "" {
		return nil, fmt.Errorf("plan %s has no Stripe price configured", plan.ID)
	}
	returnURL := config.AppConfig.CheckoutReturnURL
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(plan.StripePriceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(email),
		SuccessURL:    stripe.String(returnURL + "?status=success&provider=stripe&plan=" + url.QueryEscape(plan.ID)),
		CancelURL:     stripe.String(returnURL + "?status=cancel&provider=stripe"),
	}
	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create Stripe checkout session: %w", err)
	}
	return &models.CheckoutRedirect{Provider: "stripe", RedirectURL: sess.URL}, nil
}

func (s *DefaultBillingService) paypalCheckout(plan *models.Plan) *models.CheckoutRedirect {
	values := url.Values{}
	values.Set("plan", plan.ID)
	values.Set("return", config.AppConfig.CheckoutReturnURL+"?status=success&provider=paypal&plan="+url.QueryEscape(plan.ID))
	return &models.CheckoutRedirect{
		Provider:    "paypal",
		RedirectURL: config.AppConfig.PayPalCheckoutURL + "?" + values.Encode(),
	}
}

// OnCheckoutReturn is called when the browser comes back from the provider.
// The provider's webhook lands upstream, not here, so the subscription view
// can lag; a background poll closes the gap.
func (s *DefaultBillingService) OnCheckoutReturn(ctx context.Context, token, planID string) error {
	if s.Reconciler == nil {
		return nil
	}
	return s.Reconciler.SchedulePoll(ctx, token, planID)
}

func (s *DefaultBillingService) Subscription(ctx context.Context, token string) (*models.Subscription, error) {
	return s.API.Subscription(ctx, token)
}

func (s *DefaultBillingService) CancelSubscription(ctx context.Context, token string) error {
	return s.API.CancelSubscription(ctx, token)
}
