package openid

import (
	"encoding/json"
	stderr "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"

	"github.com/openid-go/openid/i18n"
	"github.com/openid-go/openid/x/errorsx"
)

var (
	// ErrInvalidRequest represents the 'invalid_request' error from RFC6749.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-4.1.2.1.
	ErrInvalidRequest = &RFC6749Error{
		ErrorField:       errInvalidRequestName,
		DescriptionField: "The request is missing a required parameter, includes an invalid parameter value, includes a parameter more than once, or is otherwise malformed.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrInvalidClient represents the 'invalid_client' error from RFC6749 for the Access Token Exchange.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-5.2.
	ErrInvalidClient = &RFC6749Error{
		ErrorField:       errInvalidClientName,
		DescriptionField: "Client authentication failed (e.g., unknown client, no client authentication included, or unsupported authentication method).",
		CodeField:        http.StatusUnauthorized,
	}

	// ErrInvalidGrant represents the 'invalid_grant' error from RFC6749 for the Access Token Exchange.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-5.2.
	ErrInvalidGrant = &RFC6749Error{
		ErrorField:       errInvalidGrantName,
		DescriptionField: "The provided authorization grant (e.g., authorization code, resource owner credentials) or refresh token is invalid, expired, revoked, does not match the redirection URI used in the authorization request, or was issued to another client.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrUnauthorizedClient represents the 'unauthorized_client' error from RFC6749.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-4.1.2.1.
	ErrUnauthorizedClient = &RFC6749Error{
		ErrorField:       errUnauthorizedClientName,
		DescriptionField: "The client is not authorized to request a token using this method.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrUnsupportedGrantType represents the 'unsupported_grant_type' error from RFC6749 for the Access Token Exchange.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-5.2.
	ErrUnsupportedGrantType = &RFC6749Error{
		ErrorField:       errUnsupportedGrantTypeName,
		DescriptionField: "The authorization grant type is not supported by the authorization server.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrInvalidScope represents the 'invalid_scope' error from RFC6749.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-4.1.2.1.
	ErrInvalidScope = &RFC6749Error{
		ErrorField:       errInvalidScopeName,
		DescriptionField: "The requested scope is invalid, unknown, or malformed.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrAccessDenied represents the 'access_denied' error from RFC6749 for the Authorization Code and Implicit Grant.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-4.1.2.1.
	ErrAccessDenied = &RFC6749Error{
		ErrorField:       errAccessDeniedName,
		DescriptionField: "The resource owner or authorization server denied the request.",
		CodeField:        http.StatusForbidden,
	}

	// ErrUnsupportedResponseType represents the 'unsupported_response_type' error from RFC6749.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-4.1.2.1.
	ErrUnsupportedResponseType = &RFC6749Error{
		ErrorField:       errUnsupportedResponseTypeName,
		DescriptionField: "The authorization server does not support obtaining a token using this method.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrUnsupportedResponseMode represents the 'unsupported_response_mode' error from OAuth 2.0 Multiple Response Types.
	ErrUnsupportedResponseMode = &RFC6749Error{
		ErrorField:       errUnsupportedResponseModeName,
		DescriptionField: "The authorization server does not support obtaining a response using this response mode.",
		CodeField:        http.StatusBadRequest,
	}

	// ErrServerError represents the 'server_error' error from RFC6749.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-4.1.2.1.
	ErrServerError = &RFC6749Error{
		ErrorField:       errServerErrorName,
		DescriptionField: "The authorization server encountered an unexpected condition that prevented it from fulfilling the request.",
		CodeField:        http.StatusInternalServerError,
	}

	// ErrTemporarilyUnavailable represents the 'temporarily_unavailable' error from RFC6749.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6749#section-4.1.2.1.
	ErrTemporarilyUnavailable = &RFC6749Error{
		ErrorField:       errTemporarilyUnavailableName,
		DescriptionField: "The authorization server is currently unable to handle the request due to a temporary overloading or maintenance of the server.",
		CodeField:        http.StatusServiceUnavailable,
	}

	// ErrInvalidToken represents the 'invalid_token' error from RFC6750.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc6750#section-3.1.
	ErrInvalidToken = &RFC6749Error{
		ErrorField:       errInvalidTokenName,
		DescriptionField: "The access token provided is expired, revoked, malformed, or invalid for other reasons.",
		CodeField:        http.StatusUnauthorized,
	}

	// ErrUnsupportedTokenType represents the 'unsupported_token_type' error from RFC7009.
	//
	// See: https://datatracker.ietf.org/doc/html/rfc7009#section-2.2.1.
	ErrUnsupportedTokenType = &RFC6749Error{
		ErrorField:       errUnsupportedTokenTypeName,
		DescriptionField: "The authorization server does not support the revocation of the presented token type.",
		CodeField:        http.StatusBadRequest,
	}
)

// ErrResponseAlreadySent is the fatal error raised when a second terminal
// response write is attempted for a single request. It indicates a programming
// error in the embedding application, never a protocol error.
var ErrResponseAlreadySent = errors.New("a response has already been sent")

// ErrMissingSubject is the fatal error raised when a sign-in ticket carries no
// subject claim. It indicates a provider bug, never a protocol error.
var ErrMissingSubject = errors.New("the authentication ticket was rejected because the mandatory subject claim was missing")

const (
	errInvalidRequestName          = "invalid_request"
	errInvalidClientName           = "invalid_client"
	errInvalidGrantName            = "invalid_grant"
	errUnauthorizedClientName      = "unauthorized_client"
	errUnsupportedGrantTypeName    = "unsupported_grant_type"
	errInvalidScopeName            = "invalid_scope"
	errAccessDeniedName            = "access_denied"
	errUnsupportedResponseTypeName = "unsupported_response_type"
	errUnsupportedResponseModeName = "unsupported_response_mode"
	errServerErrorName             = "server_error"
	errTemporarilyUnavailableName  = "temporarily_unavailable"
	errInvalidTokenName            = "invalid_token"
	errUnsupportedTokenTypeName    = "unsupported_token_type"
	errUnknownErrorName            = "error"
)

// RFC6749Error represents an OAuth 2.0 protocol error with the optional
// human readable description and documentation URI defined by RFC6749
// section 5.2.
type RFC6749Error struct {
	ErrorField       string
	DescriptionField string
	HintField        string
	URIField         string
	CodeField        int
	DebugField       string
	cause            error
	exposeDebug      bool

	// Fields for globalization.
	catalog i18n.MessageCatalog
	lang    language.Tag
}

var (
	_ errorsx.ReasonCarrier     = new(RFC6749Error)
	_ errorsx.StatusCodeCarrier = new(RFC6749Error)
)

// ErrorToRFC6749Error converts err to a *RFC6749Error, wrapping unrecognized
// errors as server errors.
func ErrorToRFC6749Error(err error) *RFC6749Error {
	var e *RFC6749Error

	if errors.As(err, &e) {
		return e
	}

	return &RFC6749Error{
		ErrorField:       errServerErrorName,
		DescriptionField: "The authorization server encountered an unexpected condition that prevented it from fulfilling the request.",
		DebugField:       err.Error(),
		CodeField:        http.StatusInternalServerError,
		cause:            err,
	}
}

// StackTrace returns the stack trace of the wrapped cause, if any.
func (e *RFC6749Error) StackTrace() (trace errors.StackTrace) {
	if e.cause == e || e.cause == nil {
		return
	}

	if st := errorsx.StackTracer(nil); stderr.As(e.cause, &st) {
		trace = st.StackTrace()
	}

	return
}

func (e RFC6749Error) Unwrap() error {
	return e.cause
}

func (e RFC6749Error) WithWrap(cause error) *RFC6749Error {
	e.cause = cause

	return &e
}

func (e RFC6749Error) Is(err error) bool {
	switch te := err.(type) {
	case RFC6749Error:
		return e.ErrorField == te.ErrorField &&
			e.CodeField == te.CodeField
	case *RFC6749Error:
		return e.ErrorField == te.ErrorField &&
			e.CodeField == te.CodeField
	}

	return false
}

func (e RFC6749Error) Error() string {
	return e.ErrorField
}

func (e *RFC6749Error) Reason() string {
	return e.HintField
}

func (e *RFC6749Error) StatusCode() int {
	return e.CodeField
}

func (e *RFC6749Error) Status() string {
	return http.StatusText(e.CodeField)
}

func (e *RFC6749Error) Cause() error {
	return e.cause
}

func (e *RFC6749Error) Debug() string {
	return e.DebugField
}

func (e *RFC6749Error) WithHint(hint string) *RFC6749Error {
	err := *e
	err.HintField = hint

	return &err
}

func (e *RFC6749Error) WithHintf(hint string, args ...any) *RFC6749Error {
	err := *e
	err.HintField = fmt.Sprintf(hint, args...)

	return &err
}

func (e *RFC6749Error) WithDescription(description string) *RFC6749Error {
	err := *e
	err.DescriptionField = description

	return &err
}

func (e *RFC6749Error) WithURI(uri string) *RFC6749Error {
	err := *e
	err.URIField = uri

	return &err
}

func (e *RFC6749Error) WithDebug(debug string) *RFC6749Error {
	err := *e
	err.DebugField = debug

	return &err
}

func (e *RFC6749Error) WithDebugf(debug string, args ...any) *RFC6749Error {
	return e.WithDebug(fmt.Sprintf(debug, args...))
}

func (e *RFC6749Error) WithDebugError(debug error) *RFC6749Error {
	return e.WithDebug(debug.Error())
}

// WithExposeDebug if set to true exposes debug messages to clients.
func (e *RFC6749Error) WithExposeDebug(exposeDebug bool) *RFC6749Error {
	err := *e
	err.exposeDebug = exposeDebug

	return &err
}

// WithLocalizer attaches a message catalog and language used to translate the
// error description.
func (e *RFC6749Error) WithLocalizer(catalog i18n.MessageCatalog, lang language.Tag) *RFC6749Error {
	err := *e
	err.catalog = catalog
	err.lang = lang

	return &err
}

// GetDescription returns the description, localized when a catalog is
// attached, combined with the hint and debug fields when available.
func (e *RFC6749Error) GetDescription() string {
	description := i18n.GetMessageOrDefault(e.catalog, e.ErrorField, e.lang, e.DescriptionField)

	if e.HintField != "" {
		description += " " + e.HintField
	}

	if e.exposeDebug && e.DebugField != "" {
		description += " " + e.DebugField
	}

	return strings.ReplaceAll(description, `"`, "'")
}

// RFC6749ErrorJSON is a helper struct for JSON encoding/decoding of
// RFC6749Error.
type RFC6749ErrorJSON struct {
	Name        string `json:"error"`
	Description string `json:"error_description,omitempty"`
	URI         string `json:"error_uri,omitempty"`
}

func (e RFC6749Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(&RFC6749ErrorJSON{
		Name:        e.ErrorField,
		Description: e.GetDescription(),
		URI:         e.URIField,
	})
}

func (e *RFC6749Error) UnmarshalJSON(b []byte) error {
	var data RFC6749ErrorJSON

	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}

	e.ErrorField = data.Name
	e.DescriptionField = data.Description
	e.URIField = data.URI

	return nil
}

// ToValues renders the error as redirect parameters.
func (e *RFC6749Error) ToValues() url.Values {
	values := url.Values{}
	values.Set("error", e.ErrorField)

	if description := e.GetDescription(); description != "" {
		values.Set("error_description", description)
	}

	if e.URIField != "" {
		values.Set("error_uri", e.URIField)
	}

	return values
}
