package openid_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/openid-go/openid"
)

const testRedirectURI = "https://client.example.com/cb"

// withAuthorizationSignIn installs an authorization handler that immediately
// signs in the test user, as an interactive surface would after consent.
func withAuthorizationSignIn(config *openid.Config) {
	config.Events.HandleAuthorizationRequest = func(_ context.Context, c *openid.HandleContext) openid.Outcome {
		ticket := openid.NewTicket(openid.NewIdentity("alice"))
		ticket.SetScopes(c.Request.GetScopes()...)

		return openid.SignIn(ticket)
	}
}

// noRedirectClient follows nothing so redirect responses can be inspected.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func authorizationURL(serverURL string, values url.Values) string {
	return serverURL + "/connect/authorize?" + values.Encode()
}

func TestAuthorizationEndpointCodeFlow(t *testing.T) {
	config := newTestConfig(t)
	withAuthorizationSignIn(config)

	server := newTestServer(t, config)
	client := noRedirectClient()

	resp, err := client.Get(authorizationURL(server.URL, url.Values{
		"response_type": []string{"code"},
		"client_id":     []string{testClientID},
		"redirect_uri":  []string{testRedirectURI},
		"scope":         []string{"openid profile"},
		"state":         []string{"af0ifjsldkj"},
	}))
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)

	assert.Equal(t, "client.example.com", location.Host)
	assert.NotEmpty(t, location.Query().Get("code"))
	assert.Equal(t, "af0ifjsldkj", location.Query().Get("state"))

	// The code flow never returns tokens on the front channel.
	assert.Empty(t, location.Query().Get("access_token"))
	assert.Empty(t, location.Query().Get("id_token"))
	assert.Empty(t, location.Fragment)
}

func TestAuthorizationCodeRedemption(t *testing.T) {
	config := newTestConfig(t)
	withAuthorizationSignIn(config)

	server := newTestServer(t, config)
	client := noRedirectClient()

	resp, err := client.Get(authorizationURL(server.URL, url.Values{
		"response_type": []string{"code"},
		"client_id":     []string{testClientID},
		"redirect_uri":  []string{testRedirectURI},
		"scope":         []string{"openid"},
	}))
	require.NoError(t, err)
	resp.Body.Close()

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)

	code := location.Query().Get("code")
	require.NotEmpty(t, code)

	exchange := func() (*http.Response, string) {
		return postForm(t, server.URL, "/connect/token", tokenRequest(url.Values{
			"grant_type":   []string{"authorization_code"},
			"code":         []string{code},
			"redirect_uri": []string{testRedirectURI},
		}))
	}

	tokenResp, body := exchange()
	require.Equal(t, http.StatusOK, tokenResp.StatusCode)
	assert.NotEmpty(t, gjson.Get(body, "access_token").String())
	assert.NotEmpty(t, gjson.Get(body, "id_token").String())

	t.Run("ShouldRejectReplayedCode", func(t *testing.T) {
		replayResp, replayBody := exchange()

		assert.Equal(t, http.StatusBadRequest, replayResp.StatusCode)
		assert.Equal(t, "invalid_grant", gjson.Get(replayBody, "error").String())
		assert.Contains(t, gjson.Get(replayBody, "error_description").String(), "already been redeemed")
	})
}

func TestAuthorizationCodeRedemptionRedirectMismatch(t *testing.T) {
	config := newTestConfig(t)
	withAuthorizationSignIn(config)

	server := newTestServer(t, config)
	client := noRedirectClient()

	resp, err := client.Get(authorizationURL(server.URL, url.Values{
		"response_type": []string{"code"},
		"client_id":     []string{testClientID},
		"redirect_uri":  []string{testRedirectURI},
	}))
	require.NoError(t, err)
	resp.Body.Close()

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)

	tokenResp, body := postForm(t, server.URL, "/connect/token", tokenRequest(url.Values{
		"grant_type":   []string{"authorization_code"},
		"code":         []string{location.Query().Get("code")},
		"redirect_uri": []string{"https://attacker.example.com/cb"},
	}))

	assert.Equal(t, http.StatusBadRequest, tokenResp.StatusCode)
	assert.Equal(t, "invalid_grant", gjson.Get(body, "error").String())
}

func TestAuthorizationEndpointImplicitFlow(t *testing.T) {
	config := newTestConfig(t)
	withAuthorizationSignIn(config)

	server := newTestServer(t, config)
	client := noRedirectClient()

	resp, err := client.Get(authorizationURL(server.URL, url.Values{
		"response_type": []string{"id_token token"},
		"client_id":     []string{testClientID},
		"redirect_uri":  []string{testRedirectURI},
		"scope":         []string{"openid"},
		"nonce":         []string{"n-0S6_WzA2Mj"},
		"state":         []string{"xyz"},
	}))
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)

	// Implicit responses default to the fragment, never the query string.
	assert.Empty(t, location.RawQuery)

	fragment, err := url.ParseQuery(location.Fragment)
	require.NoError(t, err)
	assert.NotEmpty(t, fragment.Get("access_token"))
	assert.NotEmpty(t, fragment.Get("id_token"))
	assert.Equal(t, "Bearer", fragment.Get("token_type"))
	assert.Equal(t, "xyz", fragment.Get("state"))
	assert.Empty(t, fragment.Get("code"))
}

func TestAuthorizationEndpointFormPostResponseMode(t *testing.T) {
	config := newTestConfig(t)
	withAuthorizationSignIn(config)

	server := newTestServer(t, config)

	resp, err := http.Get(authorizationURL(server.URL, url.Values{
		"response_type": []string{"code"},
		"response_mode": []string{"form_post"},
		"client_id":     []string{testClientID},
		"redirect_uri":  []string{testRedirectURI},
		"state":         []string{"xyz"},
	}))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	buf := make([]byte, 16384)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])

	assert.Contains(t, body, `action="`+testRedirectURI+`"`)
	assert.Contains(t, body, `name="code"`)
	assert.Contains(t, body, `name="state" value="xyz"`)
}

func TestAuthorizationEndpointChallengeDefaultsToAccessDenied(t *testing.T) {
	config := newTestConfig(t)
	config.Events.HandleAuthorizationRequest = func(_ context.Context, _ *openid.HandleContext) openid.Outcome {
		return openid.Reject("", "", "")
	}

	server := newTestServer(t, config)
	client := noRedirectClient()

	resp, err := client.Get(authorizationURL(server.URL, url.Values{
		"response_type": []string{"code"},
		"client_id":     []string{testClientID},
		"redirect_uri":  []string{testRedirectURI},
		"state":         []string{"xyz"},
	}))
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)

	assert.Equal(t, "access_denied", location.Query().Get("error"))
	assert.Equal(t, "xyz", location.Query().Get("state"))
}

func TestAuthorizationEndpointChallengeOverride(t *testing.T) {
	config := newTestConfig(t)
	config.Events.HandleAuthorizationRequest = func(_ context.Context, _ *openid.HandleContext) openid.Outcome {
		return openid.Reject("", "", "")
	}
	config.Events.ProcessChallengeResponse = func(_ context.Context, c *openid.ChallengeContext) openid.Outcome {
		c.Error = c.Error.WithDescription("The resource owner has two-factor authentication pending.")

		return openid.Proceed()
	}

	server := newTestServer(t, config)
	client := noRedirectClient()

	resp, err := client.Get(authorizationURL(server.URL, url.Values{
		"response_type": []string{"code"},
		"client_id":     []string{testClientID},
		"redirect_uri":  []string{testRedirectURI},
	}))
	require.NoError(t, err)
	resp.Body.Close()

	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)

	assert.Equal(t, "access_denied", location.Query().Get("error"))
	assert.Equal(t, "The resource owner has two-factor authentication pending.", location.Query().Get("error_description"))
}

func TestAuthorizationEndpointStructuralErrors(t *testing.T) {
	server := newTestServer(t, newTestConfig(t))
	client := noRedirectClient()

	testCases := []struct {
		name     string
		have     url.Values
		expected string
	}{
		{
			"ShouldRequireResponseType",
			url.Values{"client_id": []string{testClientID}, "redirect_uri": []string{testRedirectURI}},
			"invalid_request",
		},
		{
			"ShouldRequireClientID",
			url.Values{"response_type": []string{"code"}, "redirect_uri": []string{testRedirectURI}},
			"invalid_request",
		},
		{
			"ShouldRejectUnknownResponseType",
			url.Values{"response_type": []string{"device"}, "client_id": []string{testClientID}, "redirect_uri": []string{testRedirectURI}},
			"unsupported_response_type",
		},
		{
			"ShouldRejectUnknownResponseMode",
			url.Values{"response_type": []string{"code"}, "response_mode": []string{"web_message"}, "client_id": []string{testClientID}, "redirect_uri": []string{testRedirectURI}},
			"unsupported_response_mode",
		},
		{
			"ShouldRejectQueryModeForImplicitFlow",
			url.Values{"response_type": []string{"id_token"}, "response_mode": []string{"query"}, "client_id": []string{testClientID}, "redirect_uri": []string{testRedirectURI}},
			"invalid_request",
		},
		{
			"ShouldRequireRedirectURI",
			url.Values{"response_type": []string{"code"}, "client_id": []string{testClientID}},
			"invalid_request",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := client.Get(authorizationURL(server.URL, tc.have))
			require.NoError(t, err)

			defer resp.Body.Close()

			buf := make([]byte, 8192)
			n, _ := resp.Body.Read(buf)

			// Structural errors precede any validation decision, so they never
			// redirect to the request-supplied redirect_uri.
			assert.NotEqual(t, http.StatusFound, resp.StatusCode)
			assert.Empty(t, resp.Header.Get("Location"))
			assert.Equal(t, tc.expected, gjson.Get(string(buf[:n]), "error").String())
		})
	}
}

func TestAuthorizationEndpointUnknownClientIsNotRedirected(t *testing.T) {
	config := newTestConfig(t)
	config.Events.ValidateAuthorizationRequest = func(_ context.Context, c *openid.ValidateContext) openid.Outcome {
		if c.Request.GetClientID() != testClientID {
			return openid.Reject("unauthorized_client", "The specified client is unknown.", "")
		}

		return openid.SkipValidation()
	}

	server := newTestServer(t, config)
	client := noRedirectClient()

	resp, err := client.Get(authorizationURL(server.URL, url.Values{
		"response_type": []string{"code"},
		"client_id":     []string{"rogue-client"},
		"redirect_uri":  []string{"https://attacker.example.com/cb"},
		"state":         []string{"xyz"},
	}))
	require.NoError(t, err)

	defer resp.Body.Close()

	buf := make([]byte, 8192)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])

	// An unvalidated redirect_uri must not receive the error parameters.
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
	assert.Equal(t, "unauthorized_client", gjson.Get(body, "error").String())
	assert.Equal(t, "The specified client is unknown.", gjson.Get(body, "error_description").String())
}

func TestAuthorizationEndpointNoneFlow(t *testing.T) {
	config := newTestConfig(t)
	withAuthorizationSignIn(config)
	config.Events.ProcessSignInResponse = func(_ context.Context, c *openid.SignInContext) openid.Outcome {
		c.IncludeAuthorizationCode = false
		c.IncludeAccessToken = false
		c.IncludeIdentityToken = false
		c.IncludeRefreshToken = false

		return openid.Proceed()
	}

	server := newTestServer(t, config)
	client := noRedirectClient()

	// The none flow requires no redirect_uri and yields a response without
	// protocol parameters.
	resp, err := client.Get(authorizationURL(server.URL, url.Values{
		"response_type": []string{"none"},
		"client_id":     []string{testClientID},
		"state":         []string{"xyz"},
	}))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
