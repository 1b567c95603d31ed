package openid

import (
	"context"
	"net/http"
	"strings"

	"github.com/openid-go/openid/internal/consts"
)

// serveUserinfo resolves the presented access token into a ticket and returns
// the identity claims as a JSON body.
func (e *exchange) serveUserinfo(ctx context.Context) (step, error) {
	if st, err := e.extract(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if st, err := e.validateStage(ctx); st != stepContinue || err != nil {
		return st, err
	}

	token := e.bearerToken()
	if token == "" {
		return e.writeError(ctx, ErrInvalidRequest.WithHint("The mandatory 'access_token' parameter was missing."))
	}

	ticket, rfcErr, err := e.deserializeToken(ctx, TokenUsageAccessToken, token)
	if err != nil {
		return stepDone, err
	}

	if rfcErr != nil {
		return e.writeError(ctx, rfcErr)
	}

	if ticket == nil || ticket.Identity == nil || ticket.Identity.Subject() == "" {
		return e.writeError(ctx, ErrInvalidToken)
	}

	if expiresAt, ok := ticket.GetExpiresAt(); ok && !expiresAt.After(e.config.Now()) {
		return e.writeError(ctx, ErrInvalidToken.WithHint("The specified access token has expired."))
	}

	claims := map[string]any{
		consts.ClaimSubject: ticket.Identity.Subject(),
	}

	if e.config.Issuer != "" {
		claims[consts.ClaimIssuer] = e.config.Issuer
	}

	if audiences := ticket.GetAudiences(); len(audiences) != 0 {
		claims[consts.ClaimAudience] = []string(audiences)
	}

	for _, claim := range ticket.Identity.Claims {
		if claim.Type == consts.ClaimSubject {
			continue
		}

		claims[claim.Type] = claim.Value
	}

	if cb := e.config.Events.HandleUserinfoRequest; cb != nil {
		c := &UserinfoContext{stageContext: e.stage(), Ticket: ticket, Claims: claims}

		switch outcome := cb(ctx, c); {
		case outcome.IsHandled():
			return stepDone, e.sink.claim()
		case outcome.IsSkip():
			return stepPass, nil
		case outcome.IsRejected():
			return e.writeError(ctx, outcome.toError(ErrInvalidRequest))
		default:
			claims = c.Claims
		}
	}

	resp := NewResponse()
	for name, value := range claims {
		resp.SetParameter(name, value)
	}

	return e.writeJSONResponse(ctx, resp, http.StatusOK)
}

// bearerToken returns the access token presented via the Authorization header
// or, failing that, the access_token parameter.
func (e *exchange) bearerToken() string {
	if header := e.http.Header.Get(consts.HeaderAuthorization); strings.HasPrefix(header, consts.PrefixBearer) {
		return strings.TrimPrefix(header, consts.PrefixBearer)
	}

	return e.request.GetAccessToken()
}

// serveIntrospection implements RFC 7662. The token_type_hint orders the
// deserialization attempts and an unrecognizable token yields the inactive
// short form rather than an error.
func (e *exchange) serveIntrospection(ctx context.Context) (step, error) {
	if st, err := e.extract(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if st, err := e.validateStage(ctx); st != stepContinue || err != nil {
		return st, err
	}

	ticket, err := e.deserializeAny(ctx, e.request.GetToken(), e.request.GetTokenTypeHint())
	if err != nil {
		return stepDone, err
	}

	now := e.config.Now()

	active := ticket != nil

	if active {
		if expiresAt, ok := ticket.GetExpiresAt(); ok && !expiresAt.After(now) {
			active = false
		}
	}

	if active && ticket.GetTokenID() != "" && e.config.Store != nil {
		revoked, rerr := e.config.Store.IsRevoked(ctx, ticket.GetTokenID())
		if rerr != nil {
			return e.writeError(ctx, ErrServerError.WithDebugError(rerr))
		}

		if revoked {
			active = false
		}
	}

	claims := map[string]any{consts.ClaimActive: active}

	if active {
		if scopes := ticket.GetScopes(); len(scopes) != 0 {
			claims[consts.ClaimScope] = scopes.String()
		}

		if presenters := ticket.GetPresenters(); len(presenters) != 0 {
			claims[consts.ClaimClientIdentifier] = presenters[0]
		}

		if audiences := ticket.GetAudiences(); len(audiences) != 0 {
			claims[consts.ClaimAudience] = []string(audiences)
		}

		if ticket.Identity != nil && ticket.Identity.Subject() != "" {
			claims[consts.ClaimSubject] = ticket.Identity.Subject()
		}

		if e.config.Issuer != "" {
			claims[consts.ClaimIssuer] = e.config.Issuer
		}

		if issuedAt, ok := ticket.GetIssuedAt(); ok {
			claims[consts.ClaimIssuedAt] = issuedAt.Unix()
		}

		if expiresAt, ok := ticket.GetExpiresAt(); ok {
			claims[consts.ClaimExpirationTime] = expiresAt.Unix()
		}

		if ticket.GetTokenID() != "" {
			claims[consts.ClaimJWTID] = ticket.GetTokenID()
		}

		if ticket.GetTokenUsage() != "" {
			claims[consts.ClaimTokenUsage] = ticket.GetTokenUsage()
		}
	}

	if cb := e.config.Events.HandleIntrospectionRequest; cb != nil {
		c := &IntrospectionContext{stageContext: e.stage(), Ticket: ticket, Active: active, Claims: claims}

		switch outcome := cb(ctx, c); {
		case outcome.IsHandled():
			return stepDone, e.sink.claim()
		case outcome.IsSkip():
			return stepPass, nil
		case outcome.IsRejected():
			return e.writeError(ctx, outcome.toError(ErrInvalidRequest))
		default:
			claims = c.Claims
		}
	}

	resp := NewResponse()
	for name, value := range claims {
		resp.SetParameter(name, value)
	}

	return e.writeJSONResponse(ctx, resp, http.StatusOK)
}

// serveRevocation implements RFC 7009. Revoking an unknown or already revoked
// token still succeeds with a 200.
func (e *exchange) serveRevocation(ctx context.Context) (step, error) {
	if st, err := e.extract(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if st, err := e.validateStage(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if hint := e.request.GetTokenTypeHint(); hint != "" &&
		hint != consts.TokenTypeAccessToken && hint != consts.TokenTypeRefreshToken {
		return e.writeError(ctx, ErrUnsupportedTokenType.WithHintf("The '%s' token type cannot be revoked.", hint))
	}

	if cb := e.config.Events.HandleRevocationRequest; cb != nil {
		c := &HandleContext{stageContext: e.stage()}

		switch outcome := cb(ctx, c); {
		case outcome.IsHandled():
			return stepDone, e.sink.claim()
		case outcome.IsSkip():
			return stepPass, nil
		case outcome.IsRejected():
			return e.writeError(ctx, outcome.toError(ErrInvalidRequest))
		}
	}

	ticket, err := e.deserializeAny(ctx, e.request.GetToken(), e.request.GetTokenTypeHint())
	if err != nil {
		return stepDone, err
	}

	if ticket != nil && ticket.GetTokenID() != "" && e.config.Store != nil {
		lifetime := e.config.GetRefreshTokenLifespan()
		if expiresAt, ok := ticket.GetExpiresAt(); ok {
			lifetime = expiresAt.Sub(e.config.Now())
		}

		if lifetime > 0 {
			if rerr := e.config.Store.Revoke(ctx, ticket.GetTokenID(), lifetime); rerr != nil {
				return e.writeError(ctx, ErrServerError.WithDebugError(rerr))
			}
		}
	}

	return e.writeJSONResponse(ctx, NewResponse(), http.StatusOK)
}

// deserializeAny tries the deserializers for every revocable token kind,
// starting with the hinted one.
func (e *exchange) deserializeAny(ctx context.Context, token, hint string) (*AuthenticationTicket, error) {
	order := []string{TokenUsageAccessToken, TokenUsageRefreshToken, TokenUsageAuthorizationCode}

	switch hint {
	case consts.TokenTypeRefreshToken:
		order = []string{TokenUsageRefreshToken, TokenUsageAccessToken, TokenUsageAuthorizationCode}
	case consts.TokenTypeAuthorizationCode:
		order = []string{TokenUsageAuthorizationCode, TokenUsageAccessToken, TokenUsageRefreshToken}
	}

	for _, usage := range order {
		ticket, _, err := e.deserializeToken(ctx, usage, token)
		if err != nil {
			return nil, err
		}

		if ticket != nil {
			return ticket, nil
		}
	}

	return nil, nil
}

// serveLogout drives the logout endpoint. The handle event may take over the
// response entirely; by default the engine signs the user agent out and sends
// it to the requested post-logout redirect.
func (e *exchange) serveLogout(ctx context.Context) (step, error) {
	if st, err := e.extract(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if st, err := e.validateStage(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if cb := e.config.Events.HandleLogoutRequest; cb != nil {
		c := &HandleContext{stageContext: e.stage()}

		switch outcome := cb(ctx, c); {
		case outcome.IsHandled():
			return stepDone, e.sink.claim()
		case outcome.IsSkip():
			return stepPass, nil
		case outcome.IsRejected():
			return e.writeError(ctx, outcome.toError(ErrInvalidRequest))
		}
	}

	return e.signOut(ctx)
}

// signOut composes the logout response. The ProcessSignOutResponse event may
// replace the post-logout redirect or take over the write.
func (e *exchange) signOut(ctx context.Context) (step, error) {
	c := &SignOutContext{
		stageContext:          e.stage(),
		PostLogoutRedirectURI: e.request.GetPostLogoutRedirectURI(),
	}

	if cb := e.config.Events.ProcessSignOutResponse; cb != nil {
		switch outcome := cb(ctx, c); {
		case outcome.IsHandled():
			return stepDone, e.sink.claim()
		case outcome.IsSkip():
			return stepPass, nil
		case outcome.IsRejected():
			return e.writeError(ctx, outcome.toError(ErrInvalidRequest))
		}
	}

	resp := NewResponse()
	resp.SetState(e.request.GetState())

	if st, err := e.applyEvent(ctx, resp); st != stepContinue || err != nil {
		return st, err
	}

	if c.PostLogoutRedirectURI == "" {
		return stepDone, e.sink.writeEmpty(http.StatusOK)
	}

	location, err := redirectWithQuery(c.PostLogoutRedirectURI, resp.ToValues())
	if err != nil {
		return stepDone, err
	}

	return stepDone, e.sink.writeRedirect(location)
}
