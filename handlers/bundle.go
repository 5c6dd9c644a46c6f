package handlers

import (
	"clarimed/services/account"
	"clarimed/services/billing"
	"clarimed/services/consent"
	"clarimed/services/partner"
	"clarimed/services/registration"
	"clarimed/services/report"
	"clarimed/upstream"
)

// HandlerBundle groups all endpoint handlers and their dependencies.
type HandlerBundle struct {
	Registration registration.Service
	Consent      consent.Service
	Partner      partner.Service
	Billing      billing.Service
	Account      account.Service
	Upstream     *upstream.Client
	Pacer        *report.Pacer
}
