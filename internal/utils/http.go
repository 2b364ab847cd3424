package utils

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/realclientip/realclientip-go"
)

// HttpRes is the JSON envelope for plain status replies.
type HttpRes struct {
	Message    string `json:"message,omitempty" example:"Failed to obtain time"`
	StatusCode int    `json:"statusCode,omitempty" example:"503"`
}

func HttpResError(errMsg string, statusCode int) (int, HttpRes) {
	return statusCode, HttpRes{
		Message:    errMsg,
		StatusCode: statusCode,
	}
}

// RealIPExtractor resolves the client address behind trusted proxies. It is
// used as the rate limiter identifier.
type RealIPExtractor struct {
	strategy realclientip.RightmostTrustedRangeStrategy
}

func NewRealIPExtractor(trustedRanges []string) (*RealIPExtractor, error) {
	ipNets, err := realclientip.AddressesAndRangesToIPNets(trustedRanges...)
	if err != nil {
		return nil, err
	}
	strategy, err := realclientip.NewRightmostTrustedRangeStrategy("X-Forwarded-For", ipNets)
	if err != nil {
		return nil, err
	}
	return &RealIPExtractor{strategy: strategy}, nil
}

var remoteAddrStrategy = realclientip.RemoteAddrStrategy{}

// Extract returns the rightmost untrusted hop, treating RemoteAddr as the
// last hop of X-Forwarded-For.
func (e *RealIPExtractor) Extract(request *http.Request) string {
	remoteAddr := remoteAddrStrategy.ClientIP(nil, request.RemoteAddr)
	forwarded := request.Header.Get("X-Forwarded-For")
	if remoteAddr == "" || forwarded == "" {
		return remoteAddr
	}

	headers := http.Header{}
	headers.Set("X-Forwarded-For", strings.Join([]string{forwarded, remoteAddr}, ", "))
	if ip := e.strategy.ClientIP(headers, ""); ip != "" {
		return ip
	}
	return remoteAddr
}

// Identifier adapts Extract to echo's rate limiter.
func (e *RealIPExtractor) Identifier(c echo.Context) (string, error) {
	return e.Extract(c.Request()), nil
}
