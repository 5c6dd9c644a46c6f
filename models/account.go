package models

import "time"

// Profile is the signed-in user's account view, proxied from upstream.
type Profile struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	GivenName   string      `json:"given_name"`
	FamilyName  string      `json:"family_name"`
	FiscalCode  string      `json:"fiscal_code,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	BillingType BillingType `json:"billing_type"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Subscription is the entitlement state shown in the profile area.
// Authoritative state lives upstream.
type Subscription struct {
	PlanID        string     `json:"plan_id"`
	PlanName      string     `json:"plan_name"`
	Status        string     `json:"status"` // active, past_due, canceled, trialing
	RenewsAt      *time.Time `json:"renews_at,omitempty"`
	CanceledAt    *time.Time `json:"canceled_at,omitempty"`
	MonthlyQuota  int        `json:"monthly_quota"`
	QuotaUsed     int        `json:"quota_used"`
	PaymentMethod string     `json:"payment_method,omitempty"` // stripe, paypal
}

// B2BAccount is one selectable sub-account for business users.
type B2BAccount struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}
