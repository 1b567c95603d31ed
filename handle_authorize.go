package openid

import (
	"context"
)

// serveAuthorization drives the authorization endpoint lifecycle. The handle
// event either resolves the request by signing in with a ticket, or proceeds,
// which defers to the interactive authentication surface by handing the
// request to the downstream handler.
func (e *exchange) serveAuthorization(ctx context.Context) (step, error) {
	if st, err := e.extract(ctx); st != stepContinue || err != nil {
		return st, err
	}

	if st, err := e.validateStage(ctx); st != stepContinue || err != nil {
		return st, err
	}

	c := &HandleContext{stageContext: e.stage()}

	outcome := Proceed()
	if cb := e.config.Events.HandleAuthorizationRequest; cb != nil {
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
		return e.signIn(ctx, outcome.Ticket())
	default:
		return stepPass, nil
	}
}

// challenge denies the request. The default error depends on the originating
// endpoint, access_denied for authorization requests and invalid_grant for
// token requests, and may be replaced through the ProcessChallengeResponse
// event.
func (e *exchange) challenge(ctx context.Context, outcome Outcome) (step, error) {
	def := ErrAccessDenied
	if e.endpoint == EndpointToken {
		def = ErrInvalidGrant
	}

	rfcErr := outcome.toError(def)

	if cb := e.config.Events.ProcessChallengeResponse; cb != nil {
		c := &ChallengeContext{stageContext: e.stage(), Error: rfcErr}

		switch o := cb(ctx, c); {
		case o.IsHandled():
			return stepDone, e.sink.claim()
		case o.IsSkip():
			return stepPass, nil
		case o.IsRejected():
			rfcErr = o.toError(def)
		default:
			if c.Error != nil {
				rfcErr = c.Error
			}
		}
	}

	return e.writeError(ctx, rfcErr)
}
