package upstream

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDecodeAPIErrorStringDetail(t *testing.T) {
	err := decodeAPIError(fakeResponse(400, `{"detail":"fiscal code already registered"}`))
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, KindRejected, apiErr.Kind)
	assert.Equal(t, "fiscal code already registered", apiErr.Message)
	assert.Equal(t, 400, apiErr.Status)
}

func TestDecodeAPIErrorListDetail(t *testing.T) {
	body := `{"detail":[{"msg":"email is invalid"},{"msg":"password too weak"}]}`
	err := decodeAPIError(fakeResponse(422, body))
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "email is invalid, password too weak", apiErr.Message)
}

func TestDecodeAPIErrorFallbackMessage(t *testing.T) {
	err := decodeAPIError(fakeResponse(400, `not json at all`))
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Something went wrong, please try again", apiErr.Message)
}

func TestDecodeAPIErrorUnauthorized(t *testing.T) {
	err := decodeAPIError(fakeResponse(401, `{"detail":"token expired"}`))
	apiErr, _ := AsAPIError(err)
	assert.Equal(t, KindSessionExpired, apiErr.Kind)
}

func TestDecodeAPIErrorRateLimitKinds(t *testing.T) {
	perMinute := decodeAPIError(fakeResponse(429, `{"detail":"too many requests, slow down"}`))
	apiErr, _ := AsAPIError(perMinute)
	assert.Equal(t, KindRateLimited, apiErr.Kind)

	monthly := decodeAPIError(fakeResponse(429, `{"detail":"monthly quota exhausted"}`))
	apiErr, _ = AsAPIError(monthly)
	assert.Equal(t, KindQuotaExhausted, apiErr.Kind)
}

func TestDecodeAPIErrorServer(t *testing.T) {
	err := decodeAPIError(fakeResponse(503, ``))
	apiErr, _ := AsAPIError(err)
	assert.Equal(t, KindServer, apiErr.Kind)
}
