package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrorKind classifies upstream failures so handlers can pick the right
// user-facing behavior.
type ErrorKind int

const (
	// KindRejected is a 4xx with a detail message to surface verbatim.
	KindRejected ErrorKind = iota
	// KindSessionExpired is a 401; the browser should be prompted to log in.
	KindSessionExpired
	// KindRateLimited is a transient per-minute 429.
	KindRateLimited
	// KindQuotaExhausted is a 429 whose detail indicates the monthly quota.
	KindQuotaExhausted
	// KindServer is any 5xx.
	KindServer
)

// ErrConnection is returned for transport-level failures. Handlers map it to
// a generic "connection error, try again" message.
var ErrConnection = errors.New("connection error, please try again")

// APIError carries the decoded upstream rejection.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// decodeAPIError turns a non-2xx upstream response into an *APIError.
// The detail field is surfaced verbatim when a string, comma-joined when an
// array of field errors, and stringified as a fallback.
func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	message := extractDetail(body)
	if message == "" {
		message = "Something went wrong, please try again"
	}

	kind := KindRejected
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		kind = KindSessionExpired
	case resp.StatusCode == http.StatusTooManyRequests:
		// The upstream uses the same status for the per-minute limit and the
		// exhausted monthly quota; only the detail text tells them apart.
		if isMonthlyQuotaMessage(message) {
			kind = KindQuotaExhausted
		} else {
			kind = KindRateLimited
		}
	case resp.StatusCode >= 500:
		kind = KindServer
	}

	return &APIError{Kind: kind, Status: resp.StatusCode, Message: message}
}

func extractDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(payload.Detail, &asString); err == nil {
		return asString
	}

	var asList []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &asList); err == nil && len(asList) > 0 {
		parts := make([]string, 0, len(asList))
		for _, item := range asList {
			if item.Msg != "" {
				parts = append(parts, item.Msg)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}

	return fmt.Sprintf("%s", payload.Detail)
}

func isMonthlyQuotaMessage(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "monthly") || strings.Contains(lower, "quota")
}
