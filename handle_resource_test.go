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

// mintAccessTokens obtains a token response for the test user through the
// password grant.
func mintAccessTokens(t *testing.T, serverURL, scope string) string {
	t.Helper()

	resp, body := postForm(t, serverURL, "/connect/token", tokenRequest(url.Values{
		"grant_type": []string{"password"},
		"username":   []string{"alice"},
		"password":   []string{"password1"},
		"scope":      []string{scope},
	}))

	require.Equal(t, http.StatusOK, resp.StatusCode)

	return body
}

func TestUserinfoEndpoint(t *testing.T) {
	config := newTestConfig(t)
	config.Events.HandleTokenRequest = func(_ context.Context, c *openid.HandleContext) openid.Outcome {
		if !c.Request.IsPasswordGrantType() {
			return openid.Proceed()
		}

		identity := openid.NewIdentity("alice")
		identity.AddClaim("name", "Alice Example").AddClaim("email", "alice@example.com")

		ticket := openid.NewTicket(identity)
		ticket.SetScopes(c.Request.GetScopes()...)
		ticket.SetAudiences("https://api.example.com")

		return openid.SignIn(ticket)
	}

	server := newTestServer(t, config)

	accessToken := gjson.Get(mintAccessTokens(t, server.URL, "openid profile"), "access_token").String()
	require.NotEmpty(t, accessToken)

	t.Run("ShouldReturnClaimsForBearerHeader", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/connect/userinfo", nil)
		require.NoError(t, err)

		req.Header.Set("Authorization", "Bearer "+accessToken)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		defer resp.Body.Close()

		buf := make([]byte, 8192)
		n, _ := resp.Body.Read(buf)
		body := string(buf[:n])

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "alice", gjson.Get(body, "sub").String())
		assert.Equal(t, testIssuer, gjson.Get(body, "iss").String())
		assert.Equal(t, "Alice Example", gjson.Get(body, "name").String())
		assert.Equal(t, "alice@example.com", gjson.Get(body, "email").String())
		assert.Equal(t, "https://api.example.com", gjson.Get(body, "aud.0").String())
	})

	t.Run("ShouldAcceptAccessTokenParameter", func(t *testing.T) {
		resp, body := postForm(t, server.URL, "/connect/userinfo", url.Values{
			"access_token": []string{accessToken},
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "alice", gjson.Get(body, "sub").String())
	})

	t.Run("ShouldRequireAToken", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/connect/userinfo")
		require.NoError(t, err)

		defer resp.Body.Close()

		buf := make([]byte, 4096)
		n, _ := resp.Body.Read(buf)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid_request", gjson.Get(string(buf[:n]), "error").String())
	})

	t.Run("ShouldRejectGarbageToken", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/connect/userinfo", nil)
		require.NoError(t, err)

		req.Header.Set("Authorization", "Bearer not-a-token")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		defer resp.Body.Close()

		buf := make([]byte, 4096)
		n, _ := resp.Body.Read(buf)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid_token", gjson.Get(string(buf[:n]), "error").String())
	})

	t.Run("ShouldAllowClaimAmendment", func(t *testing.T) {
		config.Events.HandleUserinfoRequest = func(_ context.Context, c *openid.UserinfoContext) openid.Outcome {
			c.Claims["preferred_username"] = "alice"
			delete(c.Claims, "email")

			return openid.Proceed()
		}

		t.Cleanup(func() {
			config.Events.HandleUserinfoRequest = nil
		})

		resp, body := postForm(t, server.URL, "/connect/userinfo", url.Values{
			"access_token": []string{accessToken},
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "alice", gjson.Get(body, "preferred_username").String())
		assert.False(t, gjson.Get(body, "email").Exists())
	})
}

func TestIntrospectionEndpoint(t *testing.T) {
	config := newTestConfig(t)
	withPasswordGrant(config)

	server := newTestServer(t, config)

	tokens := mintAccessTokens(t, server.URL, "openid offline_access")
	accessToken := gjson.Get(tokens, "access_token").String()
	refreshToken := gjson.Get(tokens, "refresh_token").String()

	t.Run("ShouldReportActiveAccessToken", func(t *testing.T) {
		resp, body := postForm(t, server.URL, "/connect/introspect", tokenRequest(url.Values{
			"token": []string{accessToken},
		}))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, gjson.Get(body, "active").Bool())
		assert.Equal(t, "openid offline_access", gjson.Get(body, "scope").String())
		assert.Equal(t, "alice", gjson.Get(body, "sub").String())
		assert.Equal(t, testClientID, gjson.Get(body, "client_id").String())
		assert.Equal(t, testIssuer, gjson.Get(body, "iss").String())
		assert.Positive(t, gjson.Get(body, "exp").Int())
		assert.NotEmpty(t, gjson.Get(body, "jti").String())
		assert.Equal(t, "access_token", gjson.Get(body, "token_usage").String())
	})

	t.Run("ShouldReportActiveRefreshTokenWithHint", func(t *testing.T) {
		resp, body := postForm(t, server.URL, "/connect/introspect", tokenRequest(url.Values{
			"token":           []string{refreshToken},
			"token_type_hint": []string{"refresh_token"},
		}))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, gjson.Get(body, "active").Bool())
		assert.Equal(t, "refresh_token", gjson.Get(body, "token_usage").String())
	})

	t.Run("ShouldReportInactiveForGarbage", func(t *testing.T) {
		resp, body := postForm(t, server.URL, "/connect/introspect", tokenRequest(url.Values{
			"token": []string{"not-a-token"},
		}))

		// RFC 7662 returns the inactive short form, never an error.
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, gjson.Get(body, "active").Bool())
		assert.False(t, gjson.Get(body, "scope").Exists())
		assert.False(t, gjson.Get(body, "sub").Exists())
	})

	t.Run("ShouldRequireTokenParameter", func(t *testing.T) {
		resp, body := postForm(t, server.URL, "/connect/introspect", tokenRequest(url.Values{}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid_request", gjson.Get(body, "error").String())
	})
}

func TestRevocationEndpoint(t *testing.T) {
	config := newTestConfig(t)
	withPasswordGrant(config)

	server := newTestServer(t, config)

	tokens := mintAccessTokens(t, server.URL, "openid offline_access")
	refreshToken := gjson.Get(tokens, "refresh_token").String()

	t.Run("ShouldRejectUnknownTokenTypeHint", func(t *testing.T) {
		resp, body := postForm(t, server.URL, "/connect/revoke", tokenRequest(url.Values{
			"token":           []string{refreshToken},
			"token_type_hint": []string{"saml_assertion"},
		}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "unsupported_token_type", gjson.Get(body, "error").String())
	})

	t.Run("ShouldRevokeRefreshToken", func(t *testing.T) {
		resp, _ := postForm(t, server.URL, "/connect/revoke", tokenRequest(url.Values{
			"token":           []string{refreshToken},
			"token_type_hint": []string{"refresh_token"},
		}))

		require.Equal(t, http.StatusOK, resp.StatusCode)

		refreshResp, body := postForm(t, server.URL, "/connect/token", tokenRequest(url.Values{
			"grant_type":    []string{"refresh_token"},
			"refresh_token": []string{refreshToken},
		}))

		assert.Equal(t, http.StatusBadRequest, refreshResp.StatusCode)
		assert.Equal(t, "invalid_grant", gjson.Get(body, "error").String())
		assert.Contains(t, gjson.Get(body, "error_description").String(), "revoked")
	})

	t.Run("ShouldSucceedForUnknownToken", func(t *testing.T) {
		// RFC 7009 treats a token the server does not recognize as revoked.
		resp, _ := postForm(t, server.URL, "/connect/revoke", tokenRequest(url.Values{
			"token": []string{"not-a-token"},
		}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestLogoutEndpoint(t *testing.T) {
	server := newTestServer(t, newTestConfig(t))
	client := noRedirectClient()

	t.Run("ShouldRedirectToPostLogoutTarget", func(t *testing.T) {
		resp, err := client.Get(server.URL + "/connect/logout?" + url.Values{
			"post_logout_redirect_uri": []string{"https://client.example.com/signed-out"},
			"state":                    []string{"xyz"},
		}.Encode())
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, http.StatusFound, resp.StatusCode)

		location, perr := url.Parse(resp.Header.Get("Location"))
		require.NoError(t, perr)

		assert.Equal(t, "client.example.com", location.Host)
		assert.Equal(t, "/signed-out", location.Path)
		assert.Equal(t, "xyz", location.Query().Get("state"))
	})

	t.Run("ShouldReturnEmptyResponseWithoutTarget", func(t *testing.T) {
		resp, err := client.Get(server.URL + "/connect/logout")
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestLogoutEndpointSignOutOverride(t *testing.T) {
	config := newTestConfig(t)
	config.Events.ProcessSignOutResponse = func(_ context.Context, c *openid.SignOutContext) openid.Outcome {
		// The application decides where signed-out user agents land.
		c.PostLogoutRedirectURI = "https://portal.example.com/goodbye"

		return openid.Proceed()
	}

	server := newTestServer(t, config)
	client := noRedirectClient()

	resp, err := client.Get(server.URL + "/connect/logout")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "https://portal.example.com/goodbye")
}
