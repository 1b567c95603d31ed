package openid

import (
	"context"
	"mime"
	"net/http"

	"github.com/openid-go/openid/internal/consts"
)

// extract parses the transport request into a protocol message for the
// matched endpoint and runs the per-kind extract event, which may replace the
// message, reject the request or short-circuit the pipeline.
func (e *exchange) extract(ctx context.Context) (step, error) {
	request, rfcErr := extractRequest(e.http, e.endpoint)
	if rfcErr != nil {
		return e.writeError(ctx, rfcErr)
	}

	request.SetMessageType(messageType(e.endpoint))
	e.request = request

	cb := e.config.Events.extract(e.endpoint)
	if cb == nil {
		return stepContinue, nil
	}

	c := &ExtractContext{stageContext: e.stage()}

	switch outcome := cb(ctx, c); {
	case outcome.IsHandled():
		return stepDone, e.sink.claim()
	case outcome.IsSkip():
		return stepPass, nil
	case outcome.IsRejected():
		return e.writeError(ctx, outcome.toError(ErrInvalidRequest))
	default:
		if c.Request != nil {
			e.request = c.Request
		}

		return stepContinue, nil
	}
}

// extractRequest reads the protocol parameters for the endpoint. Parameters
// come exclusively from the query string on GET and from the form-encoded
// body on POST, and each endpoint enforces its own method restriction.
func extractRequest(r *http.Request, endpoint Endpoint) (*Request, *RFC6749Error) {
	switch endpoint {
	case EndpointToken, EndpointIntrospection, EndpointRevocation:
		if r.Method != http.MethodPost {
			return nil, ErrInvalidRequest.WithHintf("The %s request must use the POST method.", endpoint)
		}

		return extractForm(r, endpoint)
	case EndpointConfiguration, EndpointCryptography:
		if r.Method != http.MethodGet {
			return nil, ErrInvalidRequest.WithHintf("The %s request must use the GET method.", endpoint)
		}

		return NewRequestFromValues(r.URL.Query()), nil
	default:
		switch r.Method {
		case http.MethodGet:
			return NewRequestFromValues(r.URL.Query()), nil
		case http.MethodPost:
			return extractForm(r, endpoint)
		default:
			return nil, ErrInvalidRequest.WithHintf("The %s request must use the GET or POST method.", endpoint)
		}
	}
}

func extractForm(r *http.Request, endpoint Endpoint) (*Request, *RFC6749Error) {
	contentType, _, err := mime.ParseMediaType(r.Header.Get(consts.HeaderContentType))
	if err != nil || contentType != "application/x-www-form-urlencoded" {
		return nil, ErrInvalidRequest.WithHintf("The %s request must use the application/x-www-form-urlencoded content type.", endpoint)
	}

	if err = r.ParseForm(); err != nil {
		return nil, ErrInvalidRequest.WithHint("The request form could not be parsed.").WithDebugError(err)
	}

	return NewRequestFromValues(r.PostForm), nil
}
