package openid

import (
	"context"

	"github.com/openid-go/openid/internal/consts"
)

// serveToken drives the token endpoint lifecycle. The authorization code and
// refresh token grants are resolved by the built-in deserialization logic, the
// password and client_credentials grants are delegated entirely to the
// HandleTokenRequest event, and unrecognized grant types default to
// unsupported_grant_type unless the event resolves them.
func (e *exchange) serveToken(ctx context.Context) (step, error) {
	if st, err := e.extract(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if st, err := e.validateStage(ctx); st != stepContinue || err != nil {
		return st, err
	}

	var (
		ticket *AuthenticationTicket
		rfcErr *RFC6749Error
		err    error
	)

	switch {
	case e.request.IsAuthorizationCodeGrantType():
		ticket, rfcErr, err = e.resolveAuthorizationCodeGrant(ctx)
	case e.request.IsRefreshTokenGrantType():
		ticket, rfcErr, err = e.resolveRefreshTokenGrant(ctx)
	}

	if err != nil {
		return stepDone, err
	}

	if rfcErr != nil {
		return e.writeError(ctx, rfcErr)
	}

	c := &HandleContext{stageContext: e.stage(), Ticket: ticket}

	outcome := Proceed()
	if cb := e.config.Events.HandleTokenRequest; cb != nil {
		outcome = cb(ctx, c)
	}

	switch {
	case outcome.IsHandled():
		return stepDone, e.sink.claim()
	case outcome.IsSkip():
		return stepPass, nil
	case outcome.IsRejected():
		return e.challenge(ctx, outcome)
	case outcome.IsSignedIn():
		ticket = outcome.Ticket()
	}

	if ticket == nil {
		switch {
		case e.request.IsAuthorizationCodeGrantType(), e.request.IsRefreshTokenGrantType(),
			e.request.IsPasswordGrantType(), e.request.IsClientCredentialsGrantType():
			return e.writeError(ctx, ErrInvalidGrant.WithHint("The token request was not handled by the authorization server."))
		default:
			return e.writeError(ctx, ErrUnsupportedGrantType.WithHintf("The '%s' grant type is not supported.", e.request.GetGrantType()))
		}
	}

	return e.signIn(ctx, ticket)
}

// resolveAuthorizationCodeGrant reconstructs the ticket persisted in the code
// parameter and checks the single-use, expiration, presenter and redirect_uri
// constraints. Every failure is reported as invalid_grant.
func (e *exchange) resolveAuthorizationCodeGrant(ctx context.Context) (*AuthenticationTicket, *RFC6749Error, error) {
	ticket, rfcErr, err := e.deserializeToken(ctx, TokenUsageAuthorizationCode, e.request.GetCode())
	if rfcErr != nil || err != nil {
		return nil, rfcErr, err
	}

	if ticket == nil {
		return nil, ErrInvalidGrant.WithHint("The specified authorization code is invalid."), nil
	}

	if expiresAt, ok := ticket.GetExpiresAt(); ok && !expiresAt.After(e.config.Now()) {
		return nil, ErrInvalidGrant.WithHint("The specified authorization code has expired."), nil
	}

	if presenters := ticket.GetPresenters(); len(presenters) != 0 && !presenters.Has(e.request.GetClientID()) {
		return nil, ErrInvalidGrant.WithHint("The specified authorization code was issued to another client."), nil
	}

	if original := ticket.GetProperty(consts.FormParameterRedirectURI); original != "" && original != e.request.GetRedirectURI() {
		return nil, ErrInvalidGrant.WithHint("The 'redirect_uri' parameter does not match the one used in the authorization request."), nil
	}

	// Codes are single use. The store is queried first and the code is burnt
	// before any token is issued.
	if store := e.config.Store; store != nil && ticket.GetTokenID() != "" {
		revoked, err := store.IsRevoked(ctx, ticket.GetTokenID())
		if err != nil {
			return nil, ErrServerError.WithDebugError(err), nil
		}

		if revoked {
			return nil, ErrInvalidGrant.WithHint("The specified authorization code has already been redeemed."), nil
		}

		if err = store.Revoke(ctx, ticket.GetTokenID(), e.config.GetAuthorizationCodeLifespan()); err != nil {
			return nil, ErrServerError.WithDebugError(err), nil
		}
	}

	ticket.SetProperty(consts.FormParameterRedirectURI, "")

	return ticket, nil, nil
}

// resolveRefreshTokenGrant reconstructs the ticket persisted in the
// refresh_token parameter, enforces scope narrowing and checks expiration and
// revocation.
func (e *exchange) resolveRefreshTokenGrant(ctx context.Context) (*AuthenticationTicket, *RFC6749Error, error) {
	ticket, rfcErr, err := e.deserializeToken(ctx, TokenUsageRefreshToken, e.request.GetRefreshToken())
	if rfcErr != nil || err != nil {
		return nil, rfcErr, err
	}

	if ticket == nil {
		return nil, ErrInvalidGrant.WithHint("The specified refresh token is invalid."), nil
	}

	if expiresAt, ok := ticket.GetExpiresAt(); ok && !expiresAt.After(e.config.Now()) {
		return nil, ErrInvalidGrant.WithHint("The specified refresh token has expired."), nil
	}

	if presenters := ticket.GetPresenters(); len(presenters) != 0 && !presenters.Has(e.request.GetClientID()) {
		return nil, ErrInvalidGrant.WithHint("The specified refresh token was issued to another client."), nil
	}

	if store := e.config.Store; store != nil && ticket.GetTokenID() != "" {
		revoked, err := store.IsRevoked(ctx, ticket.GetTokenID())
		if err != nil {
			return nil, ErrServerError.WithDebugError(err), nil
		}

		if revoked {
			return nil, ErrInvalidGrant.WithHint("The specified refresh token has been revoked."), nil
		}
	}

	// Scope narrowing. A refresh request may restrict the granted scopes but
	// never extend them.
	if requested := e.request.GetScopes(); len(requested) != 0 {
		granted := ticket.GetScopes()

		for _, scope := range requested {
			if !granted.Has(scope) {
				return nil, ErrInvalidGrant.WithHintf("The '%s' scope exceeds the scopes granted to the refresh token.", scope), nil
			}
		}

		ticket.SetScopes(requested...)
	}

	return ticket, nil, nil
}

// deserializeToken reconstructs a ticket from an opaque token string, running
// the per-kind deserialize event before falling back to the configured codec.
// A nil ticket with nil errors means the token could not be deserialized.
func (e *exchange) deserializeToken(ctx context.Context, usage, token string) (*AuthenticationTicket, *RFC6749Error, error) {
	if token == "" {
		return nil, nil, nil
	}

	if cb := e.config.Events.deserialize(usage); cb != nil {
		c := &DeserializeContext{stageContext: e.stage(), TokenUsage: usage, Token: token}

		switch outcome := cb(ctx, c); {
		case outcome.IsHandled():
			return c.Ticket, nil, nil
		case outcome.IsRejected():
			return nil, outcome.toError(ErrInvalidGrant), nil
		case outcome.IsSkip():
			return nil, nil, nil
		}
	}

	codec := e.codec(usage)
	if codec == nil {
		return nil, nil, nil
	}

	ticket, err := codec.Deserialize(ctx, token)
	if err != nil {
		// Codec failures are protocol errors by nature, the client presented
		// a token the server cannot honor.
		return nil, nil, nil
	}

	return ticket, nil, nil
}

// codec returns the configured codec for a token usage.
func (e *exchange) codec(usage string) TicketCodec {
	switch usage {
	case TokenUsageAuthorizationCode:
		return e.config.AuthorizationCodeCodec
	case TokenUsageAccessToken:
		return e.config.AccessTokenCodec
	case TokenUsageIdentityToken:
		return e.config.IdentityTokenCodec
	case TokenUsageRefreshToken:
		return e.config.RefreshTokenCodec
	default:
		return nil
	}
}
