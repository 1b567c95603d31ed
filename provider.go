package openid

import (
	"context"
	"net/http"
	"strings"

	"github.com/openid-go/openid/i18n"
	"github.com/openid-go/openid/x/errorsx"
)

// step is the disposition of a pipeline stage.
type step int

const (
	// stepContinue runs the next stage.
	stepContinue step = iota

	// stepDone means a terminal response was written.
	stepDone

	// stepPass returns control to the downstream handler without a response.
	stepPass
)

// Provider is the protocol engine. It classifies inbound requests onto the
// well-known endpoints and drives each one through the extract, validate,
// handle and apply stages.
type Provider struct {
	config *Config
}

// New returns a provider for the given configuration. A nil configuration
// selects all defaults, which leaves every endpoint rejecting requests until
// events are supplied.
func New(config *Config) *Provider {
	if config == nil {
		config = &Config{}
	}

	return &Provider{config: config}
}

// Config returns the engine configuration.
func (p *Provider) Config() *Config {
	return p.config
}

// Handler wraps next with the protocol engine. Requests that match a
// configured endpoint are processed by the engine; everything else, including
// requests an event elected to skip, falls through to next.
func (p *Provider) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		sink := newResponseSink(rw)

		st, err := p.process(r.Context(), sink, r)
		if err != nil {
			p.fatal(rw, r, sink, err)

			return
		}

		if st == stepPass {
			if next != nil {
				next.ServeHTTP(rw, r)

				return
			}

			http.NotFound(rw, r)
		}
	})
}

// fatal surfaces a configuration or programming error. It never produces a
// protocol-shaped response.
func (p *Provider) fatal(rw http.ResponseWriter, r *http.Request, sink *responseSink, err error) {
	if p.config.FatalHandler != nil {
		p.config.FatalHandler(rw, r, err)

		return
	}

	if !sink.sent {
		errorsx.WriteJSONError(rw, r, err)
	}
}

// matchEndpoint classifies a request path onto the configured endpoints.
func (p *Provider) matchEndpoint(path string) Endpoint {
	for _, candidate := range []struct {
		endpoint Endpoint
		path     string
	}{
		{EndpointAuthorization, p.config.GetAuthorizationEndpointPath()},
		{EndpointToken, p.config.GetTokenEndpointPath()},
		{EndpointUserinfo, p.config.GetUserinfoEndpointPath()},
		{EndpointIntrospection, p.config.GetIntrospectionEndpointPath()},
		{EndpointLogout, p.config.GetLogoutEndpointPath()},
		{EndpointRevocation, p.config.GetRevocationEndpointPath()},
		{EndpointConfiguration, p.config.GetConfigurationEndpointPath()},
		{EndpointCryptography, p.config.GetCryptographyEndpointPath()},
	} {
		if pathMatches(path, candidate.path) {
			return candidate.endpoint
		}
	}

	return EndpointUnknown
}

func (p *Provider) process(ctx context.Context, sink *responseSink, r *http.Request) (step, error) {
	e := &exchange{config: p.config, sink: sink, http: r}

	mec := &MatchEndpointContext{HTTP: r, Response: sink.rw, endpoint: p.matchEndpoint(r.URL.Path)}

	if cb := p.config.Events.MatchEndpoint; cb != nil {
		switch outcome := cb(ctx, mec); {
		case outcome.IsHandled():
			return stepDone, sink.claim()
		case outcome.IsSkip():
			return stepPass, nil
		case outcome.IsRejected():
			e.endpoint = mec.Endpoint()

			return e.writeError(ctx, outcome.toError(ErrInvalidRequest))
		}
	}

	e.endpoint = mec.Endpoint()

	if e.endpoint == EndpointUnknown {
		return stepPass, nil
	}

	if !p.config.AllowInsecureHTTP && !isSecure(r) {
		return e.writeError(ctx, ErrInvalidRequest.WithDescription("This server only accepts HTTPS requests."))
	}

	switch e.endpoint {
	case EndpointAuthorization:
		return e.serveAuthorization(ctx)
	case EndpointToken:
		return e.serveToken(ctx)
	case EndpointUserinfo:
		return e.serveUserinfo(ctx)
	case EndpointIntrospection:
		return e.serveIntrospection(ctx)
	case EndpointRevocation:
		return e.serveRevocation(ctx)
	case EndpointLogout:
		return e.serveLogout(ctx)
	case EndpointConfiguration:
		return e.serveConfiguration(ctx)
	case EndpointCryptography:
		return e.serveCryptography(ctx)
	default:
		return stepPass, nil
	}
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.URL.Scheme, "https")
}

// exchange is the per-request pipeline state. It is owned by the goroutine
// serving the request and never shared.
type exchange struct {
	config   *Config
	sink     *responseSink
	http     *http.Request
	endpoint Endpoint
	request  *Request

	// decided records whether the validate stage reached a decision for the
	// request. Error responses may only be redirected to the request-supplied
	// redirect_uri once a decision endorsed the request.
	decided bool

	// validated records whether client authentication was explicitly
	// validated, as opposed to skipped.
	validated bool

	// clientID is the client identity resolved during validation.
	clientID string
}

func (e *exchange) stage() stageContext {
	return stageContext{Config: e.config, HTTP: e.http, Response: e.sink.rw, Endpoint: e.endpoint, Request: e.request}
}

// writeError renders a protocol error through the endpoint's response
// conventions.
func (e *exchange) writeError(ctx context.Context, rfcErr *RFC6749Error) (step, error) {
	rfcErr = rfcErr.WithLocalizer(e.config.MessageCatalog, i18n.GetLangFromRequest(e.config.MessageCatalog, e.http))

	resp := NewErrorResponse(rfcErr)

	if e.request != nil {
		resp.SetState(e.request.GetState())
	}

	// Errors raised before the validate stage decided the request, such as
	// structural errors or an unknown client, answer with a JSON body. The
	// redirect_uri has not been endorsed at that point and redirecting to it
	// would hand the error parameters to an arbitrary location.
	if e.endpoint == EndpointAuthorization && e.decided {
		return e.writeAuthorizationResponse(ctx, resp, rfcErr.CodeField)
	}

	return e.writeJSONResponse(ctx, resp, rfcErr.CodeField)
}

// applyEvent runs the per-kind apply callback for resp just before it is
// written.
func (e *exchange) applyEvent(ctx context.Context, resp *Response) (step, error) {
	cb := e.config.Events.apply(e.endpoint)
	if cb == nil {
		return stepContinue, nil
	}

	c := &ApplyResponseContext{stageContext: e.stage(), Response: resp}

	switch outcome := cb(ctx, c); {
	case outcome.IsHandled():
		return stepDone, e.sink.claim()
	case outcome.IsSkip():
		return stepPass, nil
	case outcome.IsRejected():
		rfcErr := outcome.toError(ErrServerError)

		return stepDone, e.sink.writeJSON(rfcErr.CodeField, NewErrorResponse(rfcErr).ToMap())
	default:
		return stepContinue, nil
	}
}

// writeJSONResponse runs the apply event and writes resp as a JSON body.
func (e *exchange) writeJSONResponse(ctx context.Context, resp *Response, code int) (step, error) {
	if st, err := e.applyEvent(ctx, resp); st != stepContinue || err != nil {
		return st, err
	}

	return stepDone, e.sink.writeJSON(code, resp.ToMap())
}

// writeAuthorizationResponse writes resp through the redirect conventions of
// the authorization endpoint. When no redirect target is available the
// response is written as a JSON body instead.
func (e *exchange) writeAuthorizationResponse(ctx context.Context, resp *Response, code int) (step, error) {
	if st, err := e.applyEvent(ctx, resp); st != stepContinue || err != nil {
		return st, err
	}

	var target string
	if e.request != nil {
		target = e.request.GetRedirectURI()
	}

	if target == "" {
		return stepDone, e.sink.writeJSON(code, resp.ToMap())
	}

	switch {
	case e.request.IsFormPostResponseMode():
		return stepDone, e.sink.writeFormPost(target, resp.ToValues())
	case e.request.IsFragmentResponseMode():
		location, err := redirectWithFragment(target, resp.ToValues())
		if err != nil {
			return stepDone, err
		}

		return stepDone, e.sink.writeRedirect(location)
	default:
		location, err := redirectWithQuery(target, resp.ToValues())
		if err != nil {
			return stepDone, err
		}

		return stepDone, e.sink.writeRedirect(location)
	}
}
