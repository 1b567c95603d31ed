package openid

import (
	"net/http"
	"strings"
)

// Endpoint identifies which of the well-known endpoints an inbound request was
// matched to. Exactly one endpoint is assigned per request, during matching,
// and it is immutable afterwards.
type Endpoint int

const (
	EndpointUnknown Endpoint = iota
	EndpointAuthorization
	EndpointConfiguration
	EndpointCryptography
	EndpointIntrospection
	EndpointLogout
	EndpointRevocation
	EndpointToken
	EndpointUserinfo
)

func (e Endpoint) String() string {
	switch e {
	case EndpointAuthorization:
		return "authorization"
	case EndpointConfiguration:
		return "configuration"
	case EndpointCryptography:
		return "cryptography"
	case EndpointIntrospection:
		return "introspection"
	case EndpointLogout:
		return "logout"
	case EndpointRevocation:
		return "revocation"
	case EndpointToken:
		return "token"
	case EndpointUserinfo:
		return "userinfo"
	default:
		return "unknown"
	}
}

// pathMatches compares a request path against a configured endpoint path. The
// comparison is case-insensitive and ignores a single trailing slash, but a
// path with extra segments after the endpoint path never matches.
func pathMatches(requestPath, endpointPath string) bool {
	if endpointPath == "" {
		return false
	}

	return strings.EqualFold(
		strings.TrimSuffix(requestPath, "/"),
		strings.TrimSuffix(endpointPath, "/"),
	)
}

// MatchEndpointContext is handed to the MatchEndpoint event before any other
// processing. The event may override the computed endpoint through the MatchX
// methods, clear it with MatchNothing, or short-circuit the request entirely
// by returning Skip or Handled.
type MatchEndpointContext struct {
	// HTTP is the inbound request being classified.
	HTTP *http.Request

	// Response is the transport response writer, for events that answer the
	// request themselves and return Handled.
	Response http.ResponseWriter

	endpoint Endpoint
}

// Endpoint returns the currently resolved endpoint.
func (c *MatchEndpointContext) Endpoint() Endpoint {
	return c.endpoint
}

func (c *MatchEndpointContext) MatchAuthorizationEndpoint() { c.endpoint = EndpointAuthorization }
func (c *MatchEndpointContext) MatchConfigurationEndpoint() { c.endpoint = EndpointConfiguration }
func (c *MatchEndpointContext) MatchCryptographyEndpoint()  { c.endpoint = EndpointCryptography }
func (c *MatchEndpointContext) MatchIntrospectionEndpoint() { c.endpoint = EndpointIntrospection }
func (c *MatchEndpointContext) MatchLogoutEndpoint()        { c.endpoint = EndpointLogout }
func (c *MatchEndpointContext) MatchRevocationEndpoint()    { c.endpoint = EndpointRevocation }
func (c *MatchEndpointContext) MatchTokenEndpoint()         { c.endpoint = EndpointToken }
func (c *MatchEndpointContext) MatchUserinfoEndpoint()      { c.endpoint = EndpointUserinfo }

// MatchNothing clears the resolved endpoint so the request falls through to
// the downstream handler.
func (c *MatchEndpointContext) MatchNothing() { c.endpoint = EndpointUnknown }
