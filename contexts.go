package openid

import (
	"net/http"
)

// stageContext carries the request-scoped state shared by every pipeline
// stage. Stage-specific contexts embed it and add the fields their stage may
// read or replace.
type stageContext struct {
	// Config is the engine configuration, read-only.
	Config *Config

	// HTTP is the inbound transport request.
	HTTP *http.Request

	// Response is the transport response writer. A callback writing to it
	// directly must return Handled so the engine does not write a second
	// response.
	Response http.ResponseWriter

	// Endpoint is the endpoint the request was matched to.
	Endpoint Endpoint

	// Request is the extracted protocol message.
	Request *Request
}

// ExtractContext is handed to the per-kind extract events. The callback may
// replace Request wholesale before validation runs.
type ExtractContext struct {
	stageContext
}

// ValidateContext is handed to the per-kind validate events. The callback
// decides the fate of client authentication by returning Validated,
// SkipValidation or Reject. Returning Proceed counts as unvalidated and the
// request is rejected.
type ValidateContext struct {
	stageContext

	// ClientID may be set by the callback to record the resolved client
	// identity when it returns Validated.
	ClientID string
}

// HandleContext is handed to the per-kind handle events. On the authorization
// endpoint the callback resolves the request by returning SignIn with a
// ticket, or Proceed to defer to the interactive authentication surface. On
// the token endpoint the built-in grant dispatch runs first and the callback
// sees the resolved ticket.
type HandleContext struct {
	stageContext

	// Ticket is the ticket resolved by the built-in grant handling, nil when
	// no built-in resolution applies.
	Ticket *AuthenticationTicket
}

// ApplyResponseContext is handed to the per-kind apply events just before the
// response is written. The callback may amend Response, take over the write by
// returning Handled, or bypass it by returning Skip.
type ApplyResponseContext struct {
	stageContext

	// Response is the composed protocol response about to be written.
	Response *Response
}

// SignInContext is handed to the ProcessSignInResponse event. The inclusion
// flags start at the default policy for the originating flow and may be
// toggled independently.
type SignInContext struct {
	stageContext

	// Ticket is the resolved ticket tokens will be minted from.
	Ticket *AuthenticationTicket

	IncludeAuthorizationCode bool
	IncludeAccessToken       bool
	IncludeIdentityToken     bool
	IncludeRefreshToken      bool
}

// SignOutContext is handed to the ProcessSignOutResponse event.
type SignOutContext struct {
	stageContext

	// PostLogoutRedirectURI is where the user agent is sent after sign-out.
	// Empty means a plain 200 response.
	PostLogoutRedirectURI string
}

// ChallengeContext is handed to the ProcessChallengeResponse event. Error is
// pre-populated with the default for the originating endpoint, access_denied
// for authorization requests and invalid_grant for token requests.
type ChallengeContext struct {
	stageContext

	Error *RFC6749Error
}

// SerializeContext is handed to the per-kind serialize events. Ticket is a
// deep copy of the resolved ticket, already stamped with the token usage, so
// mutations never leak back into the pipeline. The callback sets Token and
// returns Handled to emit a custom literal, or returns Proceed to defer to the
// configured codec.
type SerializeContext struct {
	stageContext

	Ticket *AuthenticationTicket

	// TokenUsage names the kind of token being produced.
	TokenUsage string

	// Token is the literal emitted token string.
	Token string
}

// DeserializeContext is handed to the per-kind deserialize events. The
// callback sets Ticket and returns Handled to supply its own reconstruction,
// or returns Proceed to defer to the configured codec.
type DeserializeContext struct {
	stageContext

	// TokenUsage names the kind of token being consumed.
	TokenUsage string

	// Token is the opaque string presented by the client.
	Token string

	// Ticket is the reconstructed ticket.
	Ticket *AuthenticationTicket
}

// UserinfoContext is handed to the HandleUserinfoRequest event with the claims
// seeded from the access token's ticket. The callback may add or remove
// claims before the JSON body is written.
type UserinfoContext struct {
	stageContext

	// Ticket is the ticket reconstructed from the presented access token.
	Ticket *AuthenticationTicket

	// Claims is the JSON body to be returned.
	Claims map[string]any
}

// IntrospectionContext is handed to the HandleIntrospectionRequest event.
type IntrospectionContext struct {
	stageContext

	// Ticket is the ticket reconstructed from the presented token, nil when
	// the token could not be deserialized.
	Ticket *AuthenticationTicket

	// Active reports whether the token is valid and not expired.
	Active bool

	// Claims is the JSON body to be returned.
	Claims map[string]any
}
