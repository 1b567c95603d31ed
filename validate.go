package openid

import (
	"context"
)

// validateStage checks the structural well-formedness of the extracted message
// and drives the client authentication state machine. The per-kind validate
// event must explicitly validate, skip or reject; anything else leaves the
// request unvalidated and it is rejected.
func (e *exchange) validateStage(ctx context.Context) (step, error) {
	if rfcErr := e.structuralError(); rfcErr != nil {
		return e.writeError(ctx, rfcErr)
	}

	c := &ValidateContext{stageContext: e.stage()}

	outcome := Proceed()
	if cb := e.config.Events.validate(e.endpoint); cb != nil {
		outcome = cb(ctx, c)
	}

	switch {
	case outcome.IsHandled():
		return stepDone, e.sink.claim()
	case outcome.IsSkip():
		return stepPass, nil
	case outcome.IsRejected():
		return e.writeError(ctx, outcome.toError(ErrInvalidRequest))
	case outcome.IsValidated():
		e.decided = true
		e.validated = true
		e.clientID = c.ClientID

		if e.clientID == "" {
			e.clientID = e.request.GetClientID()
		}

		return stepContinue, nil
	case outcome.IsSkippedValidation():
		e.decided = true
		e.validated = false
		e.clientID = e.request.GetClientID()

		return stepContinue, nil
	default:
		if e.autoValidated() {
			e.decided = true
			e.validated = false
			e.clientID = e.request.GetClientID()

			return stepContinue, nil
		}

		return e.writeError(ctx, e.unvalidatedError())
	}
}

// autoValidated reports whether the endpoint may proceed without an explicit
// validation decision. The endpoints that never authenticate a client do.
func (e *exchange) autoValidated() bool {
	switch e.endpoint {
	case EndpointConfiguration, EndpointCryptography, EndpointUserinfo, EndpointLogout:
		return true
	default:
		return false
	}
}

func (e *exchange) unvalidatedError() *RFC6749Error {
	switch e.endpoint {
	case EndpointToken, EndpointIntrospection, EndpointRevocation:
		return ErrInvalidClient.WithHint("The request was not validated by the authorization server.")
	default:
		return ErrInvalidRequest.WithHint("The request was not validated by the authorization server.")
	}
}

// structuralError checks the per-kind mandatory parameters and allowed
// combinations.
func (e *exchange) structuralError() *RFC6749Error {
	switch e.endpoint {
	case EndpointAuthorization:
		return e.structuralAuthorizationError()
	case EndpointToken:
		return e.structuralTokenError()
	case EndpointIntrospection, EndpointRevocation:
		if e.request.GetToken() == "" {
			return ErrInvalidRequest.WithHint("The mandatory 'token' parameter was missing.")
		}

		return nil
	default:
		return nil
	}
}

func (e *exchange) structuralAuthorizationError() *RFC6749Error {
	request := e.request

	if request.GetResponseType() == "" {
		return ErrInvalidRequest.WithHint("The mandatory 'response_type' parameter was missing.")
	}

	if request.GetClientID() == "" {
		return ErrInvalidRequest.WithHint("The mandatory 'client_id' parameter was missing.")
	}

	if !request.IsNoneFlow() && !request.IsAuthorizationCodeFlow() &&
		!request.IsImplicitFlow() && !request.IsHybridFlow() {
		return ErrUnsupportedResponseType.WithHintf("The '%s' response type is not supported.", request.GetResponseType())
	}

	if mode := request.GetResponseMode(); mode != "" &&
		!request.IsQueryResponseMode() && !request.IsFragmentResponseMode() && !request.IsFormPostResponseMode() {
		return ErrUnsupportedResponseMode.WithHintf("The '%s' response mode is not supported.", mode)
	}

	// Returning tokens in the query string would leak them to intermediaries.
	if request.GetResponseMode() != "" && request.IsQueryResponseMode() &&
		(request.IsImplicitFlow() || request.IsHybridFlow()) {
		return ErrInvalidRequest.WithHint("The 'query' response mode cannot be used with the implicit or hybrid flow.")
	}

	if !request.IsNoneFlow() && request.GetRedirectURI() == "" {
		return ErrInvalidRequest.WithHint("The mandatory 'redirect_uri' parameter was missing.")
	}

	return nil
}

func (e *exchange) structuralTokenError() *RFC6749Error {
	request := e.request

	if request.GetGrantType() == "" {
		return ErrInvalidRequest.WithHint("The mandatory 'grant_type' parameter was missing.")
	}

	switch {
	case request.IsAuthorizationCodeGrantType():
		if request.GetCode() == "" {
			return ErrInvalidRequest.WithHint("The mandatory 'code' parameter was missing.")
		}
	case request.IsRefreshTokenGrantType():
		if request.GetRefreshToken() == "" {
			return ErrInvalidRequest.WithHint("The mandatory 'refresh_token' parameter was missing.")
		}
	case request.IsPasswordGrantType():
		if request.GetUsername() == "" || request.GetPassword() == "" {
			return ErrInvalidRequest.WithHint("The mandatory 'username' and 'password' parameters were missing.")
		}
	}

	return nil
}
