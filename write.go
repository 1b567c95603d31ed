package openid

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"

	"github.com/openid-go/openid/internal/consts"
	"github.com/openid-go/openid/x/errorsx"
)

// responseSink wraps the transport response writer with a one-shot latch. A
// second terminal write attempt for the same request is a fatal error raised
// to the embedding application, never a protocol error sent to the client.
type responseSink struct {
	rw   http.ResponseWriter
	sent bool
}

func newResponseSink(rw http.ResponseWriter) *responseSink {
	return &responseSink{rw: rw}
}

// claim consumes the latch. Every terminal write path, including a callback
// reporting Handled, must claim before touching the transport.
func (s *responseSink) claim() error {
	if s.sent {
		return errorsx.WithStack(ErrResponseAlreadySent)
	}

	s.sent = true

	return nil
}

// writeJSON writes body as a JSON response with the given status code.
func (s *responseSink) writeJSON(code int, body any) error {
	if err := s.claim(); err != nil {
		return err
	}

	s.rw.Header().Set(consts.HeaderContentType, consts.ContentTypeApplicationJSON)
	s.rw.Header().Set(consts.HeaderCacheControl, consts.CacheControlNoStore)
	s.rw.Header().Set(consts.HeaderPragma, consts.PragmaNoCache)
	s.rw.WriteHeader(code)

	return json.NewEncoder(s.rw).Encode(body)
}

// writeRedirect sends a 302 redirect to target.
func (s *responseSink) writeRedirect(target string) error {
	if err := s.claim(); err != nil {
		return err
	}

	s.rw.Header().Set(consts.HeaderLocation, target)
	s.rw.Header().Set(consts.HeaderCacheControl, consts.CacheControlNoStore)
	s.rw.Header().Set(consts.HeaderPragma, consts.PragmaNoCache)
	s.rw.WriteHeader(http.StatusFound)

	return nil
}

// writeEmpty sends a bodyless response with the given status code.
func (s *responseSink) writeEmpty(code int) error {
	if err := s.claim(); err != nil {
		return err
	}

	s.rw.WriteHeader(code)

	return nil
}

var formPostTemplate = template.Must(template.New("form_post").Parse(
	`<html>
<head><title>Submit this form</title></head>
<body onload="javascript:document.forms[0].submit()">
<form method="post" action="{{ .RedirectURI }}">
{{ range $key, $values := .Parameters }}{{ range $values }}<input type="hidden" name="{{ $key }}" value="{{ . }}"/>
{{ end }}{{ end }}</form>
</body>
</html>`))

// writeFormPost renders the auto-submitting HTML form used by the form_post
// response mode.
func (s *responseSink) writeFormPost(target string, parameters url.Values) error {
	if err := s.claim(); err != nil {
		return err
	}

	s.rw.Header().Set(consts.HeaderContentType, consts.ContentTypeTextHTML)
	s.rw.Header().Set(consts.HeaderCacheControl, consts.CacheControlNoStore)
	s.rw.Header().Set(consts.HeaderPragma, consts.PragmaNoCache)

	return formPostTemplate.Execute(s.rw, struct {
		RedirectURI string
		Parameters  url.Values
	}{RedirectURI: target, Parameters: parameters})
}

// redirectWithQuery merges parameters into the query string of target.
func redirectWithQuery(target string, parameters url.Values) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", errorsx.WithStack(err)
	}

	query := u.Query()
	for name, values := range parameters {
		for _, value := range values {
			query.Set(name, value)
		}
	}

	u.RawQuery = query.Encode()

	return u.String(), nil
}

// redirectWithFragment encodes parameters into the fragment of target.
func redirectWithFragment(target string, parameters url.Values) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", errorsx.WithStack(err)
	}

	u.Fragment = ""
	u.RawFragment = ""

	return u.String() + "#" + parameters.Encode(), nil
}
