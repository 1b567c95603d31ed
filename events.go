package openid

import (
	"context"
)

// Callback signatures for the pipeline events. Every callback receives the
// transport context and a stage context, and returns the outcome deciding how
// the pipeline proceeds. Nil callbacks behave as Proceed.
type (
	MatchEndpointFunc    func(ctx context.Context, c *MatchEndpointContext) Outcome
	ExtractFunc          func(ctx context.Context, c *ExtractContext) Outcome
	ValidateFunc         func(ctx context.Context, c *ValidateContext) Outcome
	HandleFunc           func(ctx context.Context, c *HandleContext) Outcome
	ApplyResponseFunc    func(ctx context.Context, c *ApplyResponseContext) Outcome
	ProcessSignInFunc    func(ctx context.Context, c *SignInContext) Outcome
	ProcessSignOutFunc   func(ctx context.Context, c *SignOutContext) Outcome
	ProcessChallengeFunc func(ctx context.Context, c *ChallengeContext) Outcome
	SerializeFunc        func(ctx context.Context, c *SerializeContext) Outcome
	DeserializeFunc      func(ctx context.Context, c *DeserializeContext) Outcome
	UserinfoFunc         func(ctx context.Context, c *UserinfoContext) Outcome
	IntrospectionFunc    func(ctx context.Context, c *IntrospectionContext) Outcome
)

// Events is the full set of extension callbacks the embedding application may
// supply. All fields are optional. The engine invokes each callback at most
// once per request, sequentially, on the goroutine serving the request.
type Events struct {
	// MatchEndpoint runs before any other processing and may override the
	// endpoint computed from the configured paths.
	MatchEndpoint MatchEndpointFunc

	// Extract events run after the per-kind parameter parsing and may replace
	// or reject the extracted request.
	ExtractAuthorizationRequest ExtractFunc
	ExtractConfigurationRequest ExtractFunc
	ExtractCryptographyRequest  ExtractFunc
	ExtractIntrospectionRequest ExtractFunc
	ExtractLogoutRequest        ExtractFunc
	ExtractRevocationRequest    ExtractFunc
	ExtractTokenRequest         ExtractFunc
	ExtractUserinfoRequest      ExtractFunc

	// Validate events decide client authentication for the request. They must
	// return Validated, SkipValidation or Reject; anything else rejects the
	// request as unvalidated.
	ValidateAuthorizationRequest ValidateFunc
	ValidateConfigurationRequest ValidateFunc
	ValidateCryptographyRequest  ValidateFunc
	ValidateIntrospectionRequest ValidateFunc
	ValidateLogoutRequest        ValidateFunc
	ValidateRevocationRequest    ValidateFunc
	ValidateTokenRequest         ValidateFunc
	ValidateUserinfoRequest      ValidateFunc

	// Handle events resolve the request. HandleAuthorizationRequest supplies
	// the ticket via SignIn or defers to interactive authentication via
	// Proceed. HandleTokenRequest runs for the password, client_credentials
	// and custom grants, and after the built-in resolution for the code and
	// refresh token grants.
	HandleAuthorizationRequest HandleFunc
	HandleConfigurationRequest HandleFunc
	HandleCryptographyRequest  HandleFunc
	HandleLogoutRequest        HandleFunc
	HandleRevocationRequest    HandleFunc
	HandleTokenRequest         HandleFunc
	HandleUserinfoRequest      UserinfoFunc
	HandleIntrospectionRequest IntrospectionFunc

	// Apply events run last, with the composed response, and may amend it or
	// take over the write entirely.
	ApplyAuthorizationResponse ApplyResponseFunc
	ApplyConfigurationResponse ApplyResponseFunc
	ApplyCryptographyResponse  ApplyResponseFunc
	ApplyIntrospectionResponse ApplyResponseFunc
	ApplyLogoutResponse        ApplyResponseFunc
	ApplyRevocationResponse    ApplyResponseFunc
	ApplyTokenResponse         ApplyResponseFunc
	ApplyUserinfoResponse      ApplyResponseFunc

	// ProcessSignInResponse may override the per-flow token inclusion policy
	// before tokens are minted.
	ProcessSignInResponse ProcessSignInFunc

	// ProcessSignOutResponse may override the post-logout redirect.
	ProcessSignOutResponse ProcessSignOutFunc

	// ProcessChallengeResponse may override the error returned when a request
	// is denied.
	ProcessChallengeResponse ProcessChallengeFunc

	// Serialize events may emit custom token literals instead of the
	// configured codecs.
	SerializeAuthorizationCode SerializeFunc
	SerializeAccessToken       SerializeFunc
	SerializeIdentityToken     SerializeFunc
	SerializeRefreshToken      SerializeFunc

	// Deserialize events may reconstruct tickets from custom token literals
	// instead of the configured codecs.
	DeserializeAuthorizationCode DeserializeFunc
	DeserializeAccessToken       DeserializeFunc
	DeserializeRefreshToken      DeserializeFunc
}

// extract returns the extract callback for the endpoint.
func (e *Events) extract(endpoint Endpoint) ExtractFunc {
	switch endpoint {
	case EndpointAuthorization:
		return e.ExtractAuthorizationRequest
	case EndpointConfiguration:
		return e.ExtractConfigurationRequest
	case EndpointCryptography:
		return e.ExtractCryptographyRequest
	case EndpointIntrospection:
		return e.ExtractIntrospectionRequest
	case EndpointLogout:
		return e.ExtractLogoutRequest
	case EndpointRevocation:
		return e.ExtractRevocationRequest
	case EndpointToken:
		return e.ExtractTokenRequest
	case EndpointUserinfo:
		return e.ExtractUserinfoRequest
	default:
		return nil
	}
}

// validate returns the validate callback for the endpoint.
func (e *Events) validate(endpoint Endpoint) ValidateFunc {
	switch endpoint {
	case EndpointAuthorization:
		return e.ValidateAuthorizationRequest
	case EndpointConfiguration:
		return e.ValidateConfigurationRequest
	case EndpointCryptography:
		return e.ValidateCryptographyRequest
	case EndpointIntrospection:
		return e.ValidateIntrospectionRequest
	case EndpointLogout:
		return e.ValidateLogoutRequest
	case EndpointRevocation:
		return e.ValidateRevocationRequest
	case EndpointToken:
		return e.ValidateTokenRequest
	case EndpointUserinfo:
		return e.ValidateUserinfoRequest
	default:
		return nil
	}
}

// apply returns the apply callback for the endpoint.
func (e *Events) apply(endpoint Endpoint) ApplyResponseFunc {
	switch endpoint {
	case EndpointAuthorization:
		return e.ApplyAuthorizationResponse
	case EndpointConfiguration:
		return e.ApplyConfigurationResponse
	case EndpointCryptography:
		return e.ApplyCryptographyResponse
	case EndpointIntrospection:
		return e.ApplyIntrospectionResponse
	case EndpointLogout:
		return e.ApplyLogoutResponse
	case EndpointRevocation:
		return e.ApplyRevocationResponse
	case EndpointToken:
		return e.ApplyTokenResponse
	case EndpointUserinfo:
		return e.ApplyUserinfoResponse
	default:
		return nil
	}
}

// serialize returns the serialize callback for the token usage.
func (e *Events) serialize(usage string) SerializeFunc {
	switch usage {
	case TokenUsageAuthorizationCode:
		return e.SerializeAuthorizationCode
	case TokenUsageAccessToken:
		return e.SerializeAccessToken
	case TokenUsageIdentityToken:
		return e.SerializeIdentityToken
	case TokenUsageRefreshToken:
		return e.SerializeRefreshToken
	default:
		return nil
	}
}

// deserialize returns the deserialize callback for the token usage.
func (e *Events) deserialize(usage string) DeserializeFunc {
	switch usage {
	case TokenUsageAuthorizationCode:
		return e.DeserializeAuthorizationCode
	case TokenUsageAccessToken:
		return e.DeserializeAccessToken
	case TokenUsageRefreshToken:
		return e.DeserializeRefreshToken
	default:
		return nil
	}
}
