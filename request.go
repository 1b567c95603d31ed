package openid

import (
	"net/url"

	"github.com/pkg/errors"

	"github.com/openid-go/openid/internal/consts"
	"github.com/openid-go/openid/x/errorsx"
)

// ErrEmptyArgument is returned by the Has* membership helpers when the queried
// token is empty. It is an argument error, distinct from the token simply not
// being present.
var ErrEmptyArgument = errors.New("the argument cannot be null or empty")

// Request is an inbound OpenID Connect message with typed accessors over the
// well-known parameters.
type Request struct {
	Message
}

// NewRequest returns an empty request.
func NewRequest() *Request {
	return &Request{Message: *NewMessage()}
}

// NewRequestFromValues builds a request from decoded query or form values.
func NewRequestFromValues(values url.Values) *Request {
	return &Request{Message: *NewMessageFromValues(values)}
}

// MessageType returns the reserved message kind marker stamped on the request
// at extraction time.
func (r *Request) MessageType() string {
	return r.GetString(consts.PropertyMessageType)
}

// SetMessageType stamps the reserved message kind marker.
func (r *Request) SetMessageType(kind string) {
	r.SetString(consts.PropertyMessageType, kind)
}

func (r *Request) GetClientID() string     { return r.GetString(consts.FormParameterClientID) }
func (r *Request) GetClientSecret() string { return r.GetString(consts.FormParameterClientSecret) }
func (r *Request) GetGrantType() string    { return r.GetString(consts.FormParameterGrantType) }
func (r *Request) GetResponseType() string { return r.GetString(consts.FormParameterResponseType) }
func (r *Request) GetResponseMode() string { return r.GetString(consts.FormParameterResponseMode) }
func (r *Request) GetRedirectURI() string  { return r.GetString(consts.FormParameterRedirectURI) }
func (r *Request) GetScope() string        { return r.GetString(consts.FormParameterScope) }
func (r *Request) GetState() string        { return r.GetString(consts.FormParameterState) }
func (r *Request) GetNonce() string        { return r.GetString(consts.FormParameterNonce) }
func (r *Request) GetCode() string         { return r.GetString(consts.FormParameterCode) }
func (r *Request) GetAccessToken() string  { return r.GetString(consts.FormParameterAccessToken) }
func (r *Request) GetRefreshToken() string { return r.GetString(consts.FormParameterRefreshToken) }
func (r *Request) GetIDTokenHint() string  { return r.GetString(consts.FormParameterIDTokenHint) }
func (r *Request) GetToken() string        { return r.GetString(consts.FormParameterToken) }
func (r *Request) GetTokenTypeHint() string {
	return r.GetString(consts.FormParameterTokenTypeHint)
}
func (r *Request) GetUsername() string { return r.GetString(consts.FormParameterUsername) }
func (r *Request) GetPassword() string { return r.GetString(consts.FormParameterPassword) }
func (r *Request) GetPrompt() string   { return r.GetString(consts.FormParameterPrompt) }
func (r *Request) GetAcrValues() string {
	return r.GetString(consts.FormParameterAuthenticationContextClassReferenceValues)
}
func (r *Request) GetResource() string { return r.GetString(consts.FormParameterResource) }
func (r *Request) GetAudience() string { return r.GetString(consts.FormParameterAudience) }
func (r *Request) GetPostLogoutRedirectURI() string {
	return r.GetString(consts.FormParameterPostLogoutRedirectURI)
}

func (r *Request) SetClientID(v string)     { r.SetString(consts.FormParameterClientID, v) }
func (r *Request) SetGrantType(v string)    { r.SetString(consts.FormParameterGrantType, v) }
func (r *Request) SetResponseType(v string) { r.SetString(consts.FormParameterResponseType, v) }
func (r *Request) SetResponseMode(v string) { r.SetString(consts.FormParameterResponseMode, v) }
func (r *Request) SetRedirectURI(v string)  { r.SetString(consts.FormParameterRedirectURI, v) }
func (r *Request) SetScope(v string)        { r.SetString(consts.FormParameterScope, v) }
func (r *Request) SetState(v string)        { r.SetString(consts.FormParameterState, v) }

// GetScopes tokenizes the scope parameter.
func (r *Request) GetScopes() Arguments { return r.GetArguments(consts.FormParameterScope) }

// GetResponseTypes tokenizes the response_type parameter.
func (r *Request) GetResponseTypes() Arguments {
	return r.GetArguments(consts.FormParameterResponseType)
}

// GetPrompts tokenizes the prompt parameter.
func (r *Request) GetPrompts() Arguments { return r.GetArguments(consts.FormParameterPrompt) }

// GetAcrValuesList tokenizes the acr_values parameter.
func (r *Request) GetAcrValuesList() Arguments {
	return r.GetArguments(consts.FormParameterAuthenticationContextClassReferenceValues)
}

// GetResources tokenizes the resource parameter.
func (r *Request) GetResources() Arguments { return r.GetArguments(consts.FormParameterResource) }

// GetAudiences tokenizes the audience parameter.
func (r *Request) GetAudiences() Arguments { return r.GetArguments(consts.FormParameterAudience) }

// HasScope reports whether scope is one of the request's scope tokens. The
// comparison is case-sensitive and an empty scope is an argument error.
func (r *Request) HasScope(scope string) (bool, error) {
	if scope == "" {
		return false, errorsx.WithStack(ErrEmptyArgument)
	}

	return r.GetScopes().Has(scope), nil
}

// HasPrompt reports whether prompt is one of the request's prompt tokens.
func (r *Request) HasPrompt(prompt string) (bool, error) {
	if prompt == "" {
		return false, errorsx.WithStack(ErrEmptyArgument)
	}

	return r.GetPrompts().Has(prompt), nil
}

// HasAcrValue reports whether value is one of the request's acr_values tokens.
func (r *Request) HasAcrValue(value string) (bool, error) {
	if value == "" {
		return false, errorsx.WithStack(ErrEmptyArgument)
	}

	return r.GetAcrValuesList().Has(value), nil
}

// HasResponseType reports whether value is one of the request's response_type
// tokens.
func (r *Request) HasResponseType(value string) (bool, error) {
	if value == "" {
		return false, errorsx.WithStack(ErrEmptyArgument)
	}

	return r.GetResponseTypes().Has(value), nil
}

// IsNoneFlow reports whether the response_type requests the none flow. The
// check is an exact, case-sensitive token comparison, so malformed or
// uppercased values never match any flow.
func (r *Request) IsNoneFlow() bool {
	return r.GetResponseTypes().ExactOne(consts.ResponseTypeNone)
}

// IsAuthorizationCodeFlow reports whether the response_type requests the
// authorization code flow.
func (r *Request) IsAuthorizationCodeFlow() bool {
	return r.GetResponseTypes().ExactOne(consts.ResponseTypeAuthorizationCodeFlow)
}

// IsImplicitFlow reports whether the response_type requests the implicit flow,
// meaning it contains id_token or token but neither code nor none.
func (r *Request) IsImplicitFlow() bool {
	types := r.GetResponseTypes()

	return types.HasOneOf(consts.ResponseTypeImplicitFlowIDToken, consts.ResponseTypeImplicitFlowToken) &&
		!types.Has(consts.ResponseTypeAuthorizationCodeFlow) &&
		!types.Has(consts.ResponseTypeNone)
}

// IsHybridFlow reports whether the response_type requests the hybrid flow,
// meaning it combines code with id_token or token.
func (r *Request) IsHybridFlow() bool {
	types := r.GetResponseTypes()

	return types.Has(consts.ResponseTypeAuthorizationCodeFlow) &&
		types.HasOneOf(consts.ResponseTypeImplicitFlowIDToken, consts.ResponseTypeImplicitFlowToken)
}

// IsFragmentResponseMode reports whether the response should be returned in
// the URI fragment. When response_mode is unset this defaults to true for the
// implicit and hybrid flows.
func (r *Request) IsFragmentResponseMode() bool {
	if mode := r.GetResponseMode(); mode != "" {
		return mode == consts.ResponseModeFragment
	}

	return r.IsImplicitFlow() || r.IsHybridFlow()
}

// IsQueryResponseMode reports whether the response should be returned in the
// query string. When response_mode is unset this defaults to true for the none
// and authorization code flows.
func (r *Request) IsQueryResponseMode() bool {
	if mode := r.GetResponseMode(); mode != "" {
		return mode == consts.ResponseModeQuery
	}

	return r.IsNoneFlow() || r.IsAuthorizationCodeFlow()
}

// IsFormPostResponseMode reports whether the response should be returned via
// an auto-submitting HTML form. There is no response-type-driven default for
// this mode.
func (r *Request) IsFormPostResponseMode() bool {
	return r.GetResponseMode() == consts.ResponseModeFormPost
}

// IsAuthorizationCodeGrantType reports whether grant_type is exactly
// authorization_code.
func (r *Request) IsAuthorizationCodeGrantType() bool {
	return r.GetGrantType() == consts.GrantTypeAuthorizationCode
}

// IsClientCredentialsGrantType reports whether grant_type is exactly
// client_credentials.
func (r *Request) IsClientCredentialsGrantType() bool {
	return r.GetGrantType() == consts.GrantTypeClientCredentials
}

// IsPasswordGrantType reports whether grant_type is exactly password.
func (r *Request) IsPasswordGrantType() bool {
	return r.GetGrantType() == consts.GrantTypeResourceOwnerPasswordCredentials
}

// IsRefreshTokenGrantType reports whether grant_type is exactly refresh_token.
func (r *Request) IsRefreshTokenGrantType() bool {
	return r.GetGrantType() == consts.GrantTypeRefreshToken
}
