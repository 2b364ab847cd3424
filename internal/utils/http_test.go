package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealIPExtractor(t *testing.T) {
	tests := []struct {
		name          string
		forwardedFor  string
		remoteAddr    string
		trustedRanges []string
		want          string
	}{
		{
			name:          "device behind trusted proxy",
			forwardedFor:  "203.0.113.1",
			remoteAddr:    "192.168.1.1",
			trustedRanges: []string{"192.168.1.0/24"},
			want:          "203.0.113.1",
		},
		{
			name:          "no forwarded header",
			remoteAddr:    "203.0.113.1",
			trustedRanges: []string{"192.168.1.0/24"},
			want:          "203.0.113.1",
		},
		{
			name:          "untrusted remote addr wins",
			forwardedFor:  "203.0.113.1",
			remoteAddr:    "192.168.1.1",
			trustedRanges: []string{"10.0.0.0/8"},
			want:          "192.168.1.1",
		},
		{
			name:          "chain returns rightmost untrusted hop",
			forwardedFor:  "203.0.113.100, 8.8.8.8, 192.168.1.50, 10.0.0.25",
			remoteAddr:    "192.168.1.1",
			trustedRanges: []string{"192.168.1.0/24", "10.0.0.0/8"},
			want:          "8.8.8.8",
		},
		{
			name:          "ipv6 remote addr",
			remoteAddr:    "[2001:db8::1]",
			trustedRanges: []string{"192.168.1.0/24"},
			want:          "2001:db8::1",
		},
		{
			name:          "empty remote addr",
			forwardedFor:  "203.0.113.1",
			trustedRanges: []string{"192.168.1.0/24"},
			want:          "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor, err := NewRealIPExtractor(tt.trustedRanges)
			require.NoError(t, err)

			req := &http.Request{Header: make(http.Header), RemoteAddr: tt.remoteAddr}
			if tt.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.forwardedFor)
			}
			assert.Equal(t, tt.want, extractor.Extract(req))
		})
	}
}

func TestRealIPExtractor_InvalidRange(t *testing.T) {
	_, err := NewRealIPExtractor([]string{"not-a-cidr"})
	assert.Error(t, err)
}

func TestRealIPExtractor_Identifier(t *testing.T) {
	extractor, err := NewRealIPExtractor([]string{"10.0.0.0/8"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/time", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("X-Forwarded-For", "198.51.100.7")

	id, err := extractor.Identifier(echo.New().NewContext(req, httptest.NewRecorder()))
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.7", id)
}

func TestHttpResError(t *testing.T) {
	code, res := HttpResError("Failed to obtain time", http.StatusServiceUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, HttpRes{Message: "Failed to obtain time", StatusCode: 503}, res)
}
