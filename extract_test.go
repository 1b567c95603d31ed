package openid_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/openid-go/openid"
)

func TestExtractRejectsWrongContentType(t *testing.T) {
	server := newTestServer(t, newTestConfig(t))

	resp, err := http.Post(server.URL+"/connect/token", "application/json", strings.NewReader(`{"grant_type":"password"}`))
	require.NoError(t, err)

	defer resp.Body.Close()

	buf := make([]byte, 4096)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_request", gjson.Get(body, "error").String())
	assert.Contains(t, gjson.Get(body, "error_description").String(), "application/x-www-form-urlencoded")
}

func TestExtractRejectsUnsupportedMethod(t *testing.T) {
	server := newTestServer(t, newTestConfig(t))

	req, err := http.NewRequest(http.MethodPut, server.URL+"/connect/userinfo", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	buf := make([]byte, 4096)
	n, _ := resp.Body.Read(buf)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_request", gjson.Get(string(buf[:n]), "error").String())
}

func TestExtractEventReplacesTheRequest(t *testing.T) {
	config := newTestConfig(t)
	withAuthorizationSignIn(config)

	// The extract event upgrades a legacy parameter name before validation.
	config.Events.ExtractAuthorizationRequest = func(_ context.Context, c *openid.ExtractContext) openid.Outcome {
		if legacy := c.Request.GetString("return_url"); legacy != "" && c.Request.GetRedirectURI() == "" {
			c.Request.SetRedirectURI(legacy)
			c.Request.RemoveParameter("return_url")
		}

		return openid.Proceed()
	}

	server := newTestServer(t, config)
	client := noRedirectClient()

	resp, err := client.Get(server.URL + "/connect/authorize?response_type=code&client_id=" + testClientID + "&return_url=https%3A%2F%2Fclient.example.com%2Fcb")
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "https://client.example.com/cb?code=")
}

func TestExtractEventRejection(t *testing.T) {
	config := newTestConfig(t)
	config.Events.ExtractTokenRequest = func(_ context.Context, _ *openid.ExtractContext) openid.Outcome {
		return openid.Reject("", "", "")
	}

	server := newTestServer(t, config)

	resp, body := postForm(t, server.URL, "/connect/token", passwordGrantValues())

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_request", gjson.Get(body, "error").String())
}

func TestExtractStampsTheMessageType(t *testing.T) {
	var observed string

	config := newTestConfig(t)
	config.Events.ExtractTokenRequest = func(_ context.Context, c *openid.ExtractContext) openid.Outcome {
		observed = c.Request.MessageType()

		return openid.Skip()
	}

	server := newTestServer(t, config)

	resp, _ := postForm(t, server.URL, "/connect/token", passwordGrantValues())

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, openid.MessageTypeTokenRequest, observed)
}
