package models

import "time"

// PartnerAPIKey is the remote partner-console entity. The web tier only
// caches list views per page load; upstream state is authoritative.
type PartnerAPIKey struct {
	ID           string     `json:"id"`
	PartnerName  string     `json:"partner_name"`
	PartnerEmail string     `json:"partner_email"`
	RateLimitRPM int        `json:"rate_limit_rpm"`
	QuotaMonthly int        `json:"quota_monthly"`
	Active       bool       `json:"active"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	IPWhitelist  []string   `json:"ip_whitelist,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// PartnerAPIKeyInput is the create/update payload for the console.
type PartnerAPIKeyInput struct {
	PartnerName  string     `json:"partner_name" binding:"required"`
	PartnerEmail string     `json:"partner_email" binding:"required,email"`
	RateLimitRPM int        `json:"rate_limit_rpm"`
	QuotaMonthly int        `json:"quota_monthly"`
	Active       *bool      `json:"active,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	IPWhitelist  []string   `json:"ip_whitelist,omitempty"`
}
