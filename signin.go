package openid

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/openid-go/openid/internal/consts"
	"github.com/openid-go/openid/x/errorsx"
)

// signIn is the response composer. Given a resolved ticket it decides which
// tokens to issue for the originating flow, lets the ProcessSignInResponse
// event override the inclusion flags, mints the tokens through the serializer
// events and codecs, and writes the protocol response.
func (e *exchange) signIn(ctx context.Context, ticket *AuthenticationTicket) (step, error) {
	if ticket == nil || ticket.Identity == nil || ticket.Identity.Subject() == "" {
		return stepDone, errorsx.WithStack(ErrMissingSubject)
	}

	if ticket.Properties == nil {
		ticket.Properties = map[string]string{}
	}

	now := e.config.Now()

	if len(ticket.GetScopes()) == 0 {
		ticket.SetScopes(ScopeOpenID)
	}

	if _, ok := ticket.GetIssuedAt(); !ok {
		ticket.SetIssuedAt(now)
	}

	// A ticket minted under a validated client authentication is
	// confidential. A skipped validation never is.
	if e.validated {
		ticket.SetConfidentialityLevel(ConfidentialityLevelPrivate)
	} else if ticket.GetProperty(consts.PropertyConfidentialityLevel) == "" {
		ticket.SetConfidentialityLevel(ConfidentialityLevelPublic)
	}

	if len(ticket.GetPresenters()) == 0 && e.clientID != "" {
		ticket.SetPresenters(e.clientID)
	}

	if ticket.GetMessageType() == "" {
		ticket.SetMessageType(e.request.MessageType())
	}

	c := &SignInContext{stageContext: e.stage(), Ticket: ticket}
	e.defaultInclusionPolicy(c)

	if cb := e.config.Events.ProcessSignInResponse; cb != nil {
		switch outcome := cb(ctx, c); {
		case outcome.IsHandled():
			return stepDone, e.sink.claim()
		case outcome.IsSkip():
			return stepPass, nil
		case outcome.IsRejected():
			def := ErrInvalidRequest
			if e.endpoint == EndpointToken {
				def = ErrInvalidGrant
			}

			return e.writeError(ctx, outcome.toError(def))
		}
	}

	resp := NewResponse()
	resp.SetState(e.request.GetState())

	if c.IncludeAuthorizationCode {
		code, _, rfcErr, err := e.serializeTicket(ctx, TokenUsageAuthorizationCode, ticket, e.config.GetAuthorizationCodeLifespan(), func(clone *AuthenticationTicket) {
			clone.SetProperty(consts.FormParameterRedirectURI, e.request.GetRedirectURI())
			clone.SetNonce(e.request.GetNonce())
		})

		switch {
		case err != nil:
			return stepDone, err
		case rfcErr != nil:
			return e.writeError(ctx, rfcErr)
		case code != "":
			resp.SetCode(code)
		}
	}

	if c.IncludeAccessToken {
		token, clone, rfcErr, err := e.serializeTicket(ctx, TokenUsageAccessToken, ticket, e.config.GetAccessTokenLifespan(), nil)

		switch {
		case err != nil:
			return stepDone, err
		case rfcErr != nil:
			return e.writeError(ctx, rfcErr)
		case token != "":
			resp.SetAccessToken(token)
			resp.SetTokenType(consts.BearerAccessToken)

			// expires_in is only rendered when the token has a known absolute
			// expiration, and never as zero or negative.
			if expiresAt, ok := clone.GetExpiresAt(); ok {
				resp.SetExpiresIn(int64(expiresAt.Sub(now) / time.Second))
			}
		}
	}

	if c.IncludeIdentityToken {
		token, _, rfcErr, err := e.serializeTicket(ctx, TokenUsageIdentityToken, ticket, e.config.GetIdentityTokenLifespan(), func(clone *AuthenticationTicket) {
			clone.SetNonce(e.request.GetNonce())
		})

		switch {
		case err != nil:
			return stepDone, err
		case rfcErr != nil:
			return e.writeError(ctx, rfcErr)
		case token != "":
			resp.SetIDToken(token)
		}
	}

	if c.IncludeRefreshToken {
		token, _, rfcErr, err := e.serializeTicket(ctx, TokenUsageRefreshToken, ticket, e.config.GetRefreshTokenLifespan(), nil)

		switch {
		case err != nil:
			return stepDone, err
		case rfcErr != nil:
			return e.writeError(ctx, rfcErr)
		case token != "":
			resp.SetRefreshToken(token)
		}
	}

	switch e.endpoint {
	case EndpointToken:
		resp.SetScope(ticket.GetScopes().String())

		return e.writeJSONResponse(ctx, resp, http.StatusOK)
	default:
		return e.writeAuthorizationResponse(ctx, resp, http.StatusOK)
	}
}

// defaultInclusionPolicy seeds the token inclusion flags for the originating
// flow. On the authorization endpoint the response_type tokens decide, on the
// token endpoint every successful grant yields an access token, an identity
// token when openid was granted, and a refresh token when offline_access was
// granted and reissuance is allowed for the grant.
func (e *exchange) defaultInclusionPolicy(c *SignInContext) {
	switch e.endpoint {
	case EndpointAuthorization:
		types := e.request.GetResponseTypes()

		c.IncludeAuthorizationCode = types.Has(consts.ResponseTypeAuthorizationCodeFlow)
		c.IncludeAccessToken = types.Has(consts.ResponseTypeImplicitFlowToken)
		c.IncludeIdentityToken = types.Has(consts.ResponseTypeImplicitFlowIDToken)
	case EndpointToken:
		c.IncludeAccessToken = true
		c.IncludeIdentityToken = c.Ticket.HasScope(ScopeOpenID)
		c.IncludeRefreshToken = c.Ticket.HasScope(ScopeOfflineAccess) &&
			(!e.request.IsRefreshTokenGrantType() || !e.config.DisableSlidingExpiration)
	}
}

// serializeTicket mints one token from the resolved ticket. The serializer
// event receives a deep copy stamped with the usage, a fresh token identifier
// and the expiration for the kind, so the resolved ticket is never mutated
// after handoff. The event may emit the literal itself, reject, or skip to
// omit the token; otherwise the configured codec runs.
func (e *exchange) serializeTicket(ctx context.Context, usage string, source *AuthenticationTicket, lifespan time.Duration, prepare func(*AuthenticationTicket)) (string, *AuthenticationTicket, *RFC6749Error, error) {
	now := e.config.Now()

	clone := source.Clone()
	clone.SetTokenUsage(usage)
	clone.SetTokenID(uuid.NewString())
	clone.SetIssuedAt(now)
	clone.SetExpiresAt(now.Add(lifespan))

	if prepare != nil {
		prepare(clone)
	}

	if cb := e.config.Events.serialize(usage); cb != nil {
		c := &SerializeContext{stageContext: e.stage(), Ticket: clone, TokenUsage: usage}

		switch outcome := cb(ctx, c); {
		case outcome.IsHandled():
			return c.Token, clone, nil, nil
		case outcome.IsSkip():
			return "", clone, nil, nil
		case outcome.IsRejected():
			def := ErrInvalidRequest
			if e.endpoint == EndpointToken {
				def = ErrInvalidGrant
			}

			return "", clone, outcome.toError(def), nil
		}
	}

	codec := e.codec(usage)
	if codec == nil {
		return "", clone, nil, errorsx.WithStack(errors.Errorf("no codec is configured for %s serialization", usage))
	}

	token, err := codec.Serialize(ctx, clone)
	if err != nil {
		return "", clone, nil, errorsx.WithStack(err)
	}

	return token, clone, nil, nil
}
