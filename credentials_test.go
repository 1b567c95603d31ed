package openid

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCredentials(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	provider := NewStaticCredentials(key, "key-1", "RS256")

	credentials, err := provider.ActiveCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "key-1", credentials.KeyID)
	assert.Equal(t, "RS256", credentials.Algorithm)

	set, err := provider.PublicKeySet(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Keys, 1)

	assert.Equal(t, "key-1", set.Keys[0].KeyID)
	assert.True(t, set.Keys[0].IsPublic())
}

func TestRemoteKeySet(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	published := jose.JSONWebKeySet{Keys: []jose.JSONWebKey{{
		Key:       &key.PublicKey,
		KeyID:     "remote-key",
		Algorithm: "RS256",
		Use:       "sig",
	}}}

	var hits atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		hits.Add(1)

		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(published)
	}))
	t.Cleanup(server.Close)

	provider, err := NewRemoteKeySet(server.URL, RemoteKeySetWithTTL(time.Minute))
	require.NoError(t, err)

	set, err := provider.PublicKeySet(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Keys, 1)
	assert.Equal(t, "remote-key", set.Keys[0].KeyID)

	provider.WaitForCache()

	_, err = provider.PublicKeySet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())

	_, err = provider.ActiveCredentials(context.Background())
	assert.ErrorContains(t, err, "cannot sign tokens")
}

func TestRemoteKeySetRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	provider, err := NewRemoteKeySet(server.URL)
	require.NoError(t, err)

	// Disable retries so the failure surfaces immediately.
	provider.client.RetryMax = 0
	provider.client.Logger = nil

	_, err = provider.PublicKeySet(context.Background())
	assert.ErrorContains(t, err, "status code")
}
