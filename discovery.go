package openid

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-jose/go-jose/v3"

	"github.com/openid-go/openid/internal/consts"
)

// serveConfiguration builds the discovery document from the configured paths
// and capabilities.
func (e *exchange) serveConfiguration(ctx context.Context) (step, error) {
	if st, err := e.extract(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if st, err := e.validateStage(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if cb := e.config.Events.HandleConfigurationRequest; cb != nil {
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

	resp := NewResponse()

	resp.SetParameter("issuer", e.config.Issuer)
	e.setEndpointParameter(resp, "authorization_endpoint", e.config.GetAuthorizationEndpointPath())
	e.setEndpointParameter(resp, "token_endpoint", e.config.GetTokenEndpointPath())
	e.setEndpointParameter(resp, "userinfo_endpoint", e.config.GetUserinfoEndpointPath())
	e.setEndpointParameter(resp, "introspection_endpoint", e.config.GetIntrospectionEndpointPath())
	e.setEndpointParameter(resp, "revocation_endpoint", e.config.GetRevocationEndpointPath())
	e.setEndpointParameter(resp, "end_session_endpoint", e.config.GetLogoutEndpointPath())
	e.setEndpointParameter(resp, "jwks_uri", e.config.GetCryptographyEndpointPath())

	resp.SetParameter("response_types_supported", []string{
		consts.ResponseTypeNone,
		consts.ResponseTypeAuthorizationCodeFlow,
		consts.ResponseTypeImplicitFlowIDToken,
		consts.ResponseTypeImplicitFlowToken,
		consts.ResponseTypeAuthorizationCodeFlow + " " + consts.ResponseTypeImplicitFlowIDToken,
		consts.ResponseTypeAuthorizationCodeFlow + " " + consts.ResponseTypeImplicitFlowToken,
		consts.ResponseTypeImplicitFlowIDToken + " " + consts.ResponseTypeImplicitFlowToken,
		consts.ResponseTypeAuthorizationCodeFlow + " " + consts.ResponseTypeImplicitFlowIDToken + " " + consts.ResponseTypeImplicitFlowToken,
	})

	resp.SetParameter("response_modes_supported", []string{
		consts.ResponseModeQuery,
		consts.ResponseModeFragment,
		consts.ResponseModeFormPost,
	})

	resp.SetParameter("grant_types_supported", []string{
		consts.GrantTypeAuthorizationCode,
		consts.GrantTypeRefreshToken,
		consts.GrantTypeClientCredentials,
		consts.GrantTypeResourceOwnerPasswordCredentials,
	})

	resp.SetParameter("scopes_supported", []string{ScopeOpenID, ScopeOfflineAccess})
	resp.SetParameter("subject_types_supported", []string{"public"})

	if e.config.Credentials != nil {
		if credentials, err := e.config.Credentials.ActiveCredentials(ctx); err == nil && credentials.Algorithm != "" {
			resp.SetParameter("id_token_signing_alg_values_supported", []string{credentials.Algorithm})
		}
	}

	return e.writeJSONResponse(ctx, resp, http.StatusOK)
}

func (e *exchange) setEndpointParameter(resp *Response, name, path string) {
	if path == "" {
		return
	}

	resp.SetParameter(name, strings.TrimSuffix(e.config.Issuer, "/")+path)
}

// serveCryptography publishes the verification keys with all private material
// stripped.
func (e *exchange) serveCryptography(ctx context.Context) (step, error) {
	if st, err := e.extract(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if st, err := e.validateStage(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if cb := e.config.Events.HandleCryptographyRequest; cb != nil {
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

	keys := []jose.JSONWebKey{}

	if e.config.Credentials != nil {
		set, err := e.config.Credentials.PublicKeySet(ctx)
		if err != nil {
			return e.writeError(ctx, ErrServerError.WithDebugError(err))
		}

		for _, key := range set.Keys {
			if key.IsPublic() {
				keys = append(keys, key)
			}
		}
	}

	resp := NewResponse()
	resp.SetParameter("keys", keys)

	return e.writeJSONResponse(ctx, resp, http.StatusOK)
}
