package openid

import (
	"net/http"
)

type outcomeKind int

const (
	outcomeProceed outcomeKind = iota
	outcomeSkip
	outcomeHandled
	outcomeRejected
	outcomeValidated
	outcomeSkippedValidation
	outcomeSignedIn
)

// Outcome is the result of one pipeline stage callback. The zero value is
// Proceed, so a callback that takes no decision lets the built-in processing
// continue.
type Outcome struct {
	kind        outcomeKind
	error       string
	description string
	uri         string
	ticket      *AuthenticationTicket
}

// Proceed lets the built-in processing for the stage continue.
func Proceed() Outcome {
	return Outcome{kind: outcomeProceed}
}

// Skip bypasses the remaining protocol processing for the request and returns
// control to the downstream handler.
func Skip() Outcome {
	return Outcome{kind: outcomeSkip}
}

// Handled records that the callback wrote the full response itself. No later
// stage may write again.
func Handled() Outcome {
	return Outcome{kind: outcomeHandled}
}

// Reject aborts the request with a protocol error. An empty code falls back to
// the default error of the rejecting stage, usually invalid_request. The
// description and uri are emitted exactly as given and stay absent when empty.
func Reject(code, description, uri string) Outcome {
	return Outcome{kind: outcomeRejected, error: code, description: description, uri: uri}
}

// Validated marks the request's client authentication as validated.
func Validated() Outcome {
	return Outcome{kind: outcomeValidated}
}

// SkipValidation bypasses client authentication, e.g. for public clients.
func SkipValidation() Outcome {
	return Outcome{kind: outcomeSkippedValidation}
}

// SignIn resolves the request with an authentication ticket.
func SignIn(ticket *AuthenticationTicket) Outcome {
	return Outcome{kind: outcomeSignedIn, ticket: ticket}
}

func (o Outcome) IsProceed() bool   { return o.kind == outcomeProceed }
func (o Outcome) IsSkip() bool      { return o.kind == outcomeSkip }
func (o Outcome) IsHandled() bool   { return o.kind == outcomeHandled }
func (o Outcome) IsRejected() bool  { return o.kind == outcomeRejected }
func (o Outcome) IsValidated() bool { return o.kind == outcomeValidated }
func (o Outcome) IsSkippedValidation() bool {
	return o.kind == outcomeSkippedValidation
}
func (o Outcome) IsSignedIn() bool { return o.kind == outcomeSignedIn }

// Ticket returns the ticket carried by a SignIn outcome.
func (o Outcome) Ticket() *AuthenticationTicket {
	return o.ticket
}

// toError renders a Reject outcome as a protocol error, falling back to the
// error code and status of def when the callback supplied no code.
func (o Outcome) toError(def *RFC6749Error) *RFC6749Error {
	err := &RFC6749Error{
		ErrorField:       o.error,
		DescriptionField: o.description,
		URIField:         o.uri,
		CodeField:        http.StatusBadRequest,
	}

	if err.ErrorField == "" {
		err.ErrorField = def.ErrorField
		err.CodeField = def.CodeField
	}

	return err
}
