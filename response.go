package openid

import (
	"net/url"
	"strconv"

	"github.com/openid-go/openid/internal/consts"
)

// Response is an outbound OpenID Connect message with typed accessors over the
// well-known parameters.
type Response struct {
	Message
}

// NewResponse returns an empty response.
func NewResponse() *Response {
	return &Response{Message: *NewMessage()}
}

// NewErrorResponse renders a protocol error as a response message.
func NewErrorResponse(err *RFC6749Error) *Response {
	resp := NewResponse()
	resp.SetString(consts.FormParameterError, err.ErrorField)
	resp.SetString(consts.FormParameterErrorDescription, err.GetDescription())
	resp.SetString(consts.FormParameterErrorURI, err.URIField)

	return resp
}

func (r *Response) GetError() string            { return r.GetString(consts.FormParameterError) }
func (r *Response) GetErrorDescription() string { return r.GetString(consts.FormParameterErrorDescription) }
func (r *Response) GetErrorURI() string         { return r.GetString(consts.FormParameterErrorURI) }
func (r *Response) GetCode() string             { return r.GetString(consts.FormParameterCode) }
func (r *Response) GetState() string            { return r.GetString(consts.FormParameterState) }
func (r *Response) GetAccessToken() string      { return r.GetString(consts.AccessResponseAccessToken) }
func (r *Response) GetIDToken() string          { return r.GetString(consts.AccessResponseIDToken) }
func (r *Response) GetRefreshToken() string     { return r.GetString(consts.AccessResponseRefreshToken) }
func (r *Response) GetTokenType() string        { return r.GetString(consts.AccessResponseTokenType) }
func (r *Response) GetScope() string            { return r.GetString(consts.AccessResponseScope) }
func (r *Response) GetRedirectURI() string      { return r.GetString(consts.FormParameterRedirectURI) }

func (r *Response) SetError(v string)            { r.SetString(consts.FormParameterError, v) }
func (r *Response) SetErrorDescription(v string) { r.SetString(consts.FormParameterErrorDescription, v) }
func (r *Response) SetErrorURI(v string)         { r.SetString(consts.FormParameterErrorURI, v) }
func (r *Response) SetCode(v string)             { r.SetString(consts.FormParameterCode, v) }
func (r *Response) SetState(v string)            { r.SetString(consts.FormParameterState, v) }
func (r *Response) SetAccessToken(v string)      { r.SetString(consts.AccessResponseAccessToken, v) }
func (r *Response) SetIDToken(v string)          { r.SetString(consts.AccessResponseIDToken, v) }
func (r *Response) SetRefreshToken(v string)     { r.SetString(consts.AccessResponseRefreshToken, v) }
func (r *Response) SetTokenType(v string)        { r.SetString(consts.AccessResponseTokenType, v) }
func (r *Response) SetScope(v string)            { r.SetString(consts.AccessResponseScope, v) }
func (r *Response) SetRedirectURI(v string)      { r.SetString(consts.FormParameterRedirectURI, v) }

// IsError reports whether the response carries a protocol error.
func (r *Response) IsError() bool {
	return r.GetError() != ""
}

// GetExpiresIn returns the expires_in parameter, or zero when it is absent.
func (r *Response) GetExpiresIn() int64 {
	switch value := r.parameters[consts.AccessResponseExpiresIn].(type) {
	case int64:
		return value
	case int:
		return int64(value)
	case string:
		n, _ := strconv.ParseInt(value, 10, 64)

		return n
	default:
		return 0
	}
}

// SetExpiresIn stores the expires_in parameter. Values that are not strictly
// positive remove it, so expirations are never rendered as zero or negative.
func (r *Response) SetExpiresIn(seconds int64) {
	if seconds <= 0 {
		delete(r.parameters, consts.AccessResponseExpiresIn)

		return
	}

	r.parameters[consts.AccessResponseExpiresIn] = seconds
}

// ToValues renders the response as redirect parameters. The redirect target
// itself is excluded from the rendered values.
func (r *Response) ToValues() url.Values {
	values := r.Message.ToValues()
	values.Del(consts.FormParameterRedirectURI)

	if expiresIn := r.GetExpiresIn(); expiresIn > 0 {
		values.Set(consts.AccessResponseExpiresIn, strconv.FormatInt(expiresIn, 10))
	}

	return values
}

// ToMap renders the response as a JSON-encodable body. The redirect target is
// excluded.
func (r *Response) ToMap() map[string]any {
	body := make(map[string]any, len(r.parameters))

	for name, value := range r.parameters {
		if name == consts.FormParameterRedirectURI {
			continue
		}

		body[name] = value
	}

	return body
}
