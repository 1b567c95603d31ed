package openid

import (
	"context"
	"crypto"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/go-jose/go-jose/v3"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/openid-go/openid/x/errorsx"
)

// SigningCredentials is the key material used to sign issued tokens.
type SigningCredentials struct {
	// Key is the private signing key, e.g. an *rsa.PrivateKey or an
	// *ecdsa.PrivateKey.
	Key crypto.PrivateKey

	// KeyID is published as the kid of signed tokens and of the JWKS entry.
	KeyID string

	// Algorithm is the JOSE signature algorithm name, e.g. RS256.
	Algorithm string
}

// CredentialsProvider yields the signing material for the default codecs and
// the published verification keys for the cryptography endpoint.
type CredentialsProvider interface {
	// ActiveCredentials returns the key newly issued tokens are signed with.
	ActiveCredentials(ctx context.Context) (*SigningCredentials, error)

	// PublicKeySet returns the published verification keys. Implementations
	// must strip all private key material.
	PublicKeySet(ctx context.Context) (*jose.JSONWebKeySet, error)
}

// StaticCredentials is a CredentialsProvider backed by a fixed key pair.
type StaticCredentials struct {
	credentials SigningCredentials
}

// NewStaticCredentials returns a provider signing with the given private key.
func NewStaticCredentials(key crypto.PrivateKey, keyID, algorithm string) *StaticCredentials {
	return &StaticCredentials{credentials: SigningCredentials{Key: key, KeyID: keyID, Algorithm: algorithm}}
}

func (s *StaticCredentials) ActiveCredentials(_ context.Context) (*SigningCredentials, error) {
	credentials := s.credentials

	return &credentials, nil
}

func (s *StaticCredentials) PublicKeySet(_ context.Context) (*jose.JSONWebKeySet, error) {
	private := jose.JSONWebKey{
		Key:       s.credentials.Key,
		KeyID:     s.credentials.KeyID,
		Algorithm: s.credentials.Algorithm,
		Use:       "sig",
	}

	public := private.Public()
	if !public.Valid() {
		return nil, errorsx.WithStack(errors.New("the configured signing key has no valid public form"))
	}

	return &jose.JSONWebKeySet{Keys: []jose.JSONWebKey{public}}, nil
}

const remoteKeySetCachePrefix = "github.com/openid-go/openid.RemoteKeySet:"

// RemoteKeySet is a verification-only CredentialsProvider that resolves its
// key set from a remote JWKS location, with retries and a TTL cache. It is
// used when tokens are validated against keys published by another server.
type RemoteKeySet struct {
	location string
	client   *retryablehttp.Client
	cache    *ristretto.Cache
	ttl      time.Duration
}

// NewRemoteKeySet returns a provider resolving keys from the given JWKS URL.
func NewRemoteKeySet(location string, opts ...func(*RemoteKeySet)) (*RemoteKeySet, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000 * 10,
		MaxCost:     10000,
		BufferItems: 64,
		Cost: func(value any) int64 {
			return 1
		},
	})
	if err != nil {
		return nil, errorsx.WithStack(err)
	}

	s := &RemoteKeySet{
		location: location,
		client:   retryablehttp.NewClient(),
		cache:    cache,
		ttl:      time.Hour,
	}

	for _, o := range opts {
		o(s)
	}

	return s, nil
}

// RemoteKeySetWithTTL sets how long a fetched key set is cached.
func RemoteKeySetWithTTL(ttl time.Duration) func(*RemoteKeySet) {
	return func(s *RemoteKeySet) {
		s.ttl = ttl
	}
}

// RemoteKeySetWithHTTPClient sets the HTTP client used for fetching.
func RemoteKeySetWithHTTPClient(client *retryablehttp.Client) func(*RemoteKeySet) {
	return func(s *RemoteKeySet) {
		s.client = client
	}
}

// ActiveCredentials always fails, a remote key set carries no private keys.
func (s *RemoteKeySet) ActiveCredentials(_ context.Context) (*SigningCredentials, error) {
	return nil, errorsx.WithStack(errors.New("a remote key set cannot sign tokens"))
}

func (s *RemoteKeySet) PublicKeySet(ctx context.Context) (*jose.JSONWebKeySet, error) {
	cacheKey := remoteKeySetCachePrefix + s.location

	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*jose.JSONWebKeySet), nil
	}

	req, err := retryablehttp.NewRequest(http.MethodGet, s.location, nil)
	if err != nil {
		return nil, errorsx.WithStack(errors.Wrapf(err, "unable to create HTTP 'GET' request to fetch JSON Web Keys from location '%s'", s.location))
	}

	response, err := s.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, errorsx.WithStack(errors.Wrapf(err, "unable to fetch JSON Web Keys from location '%s'", s.location))
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 400 {
		return nil, errorsx.WithStack(errors.Errorf("expected successful status code in range of 200 - 399 from location '%s' but received code %d", s.location, response.StatusCode))
	}

	var set jose.JSONWebKeySet

	if err = json.NewDecoder(response.Body).Decode(&set); err != nil {
		return nil, errorsx.WithStack(errors.Wrapf(err, "unable to decode JSON Web Keys from location '%s'", s.location))
	}

	_ = s.cache.SetWithTTL(cacheKey, &set, 1, s.ttl)

	return &set, nil
}

// WaitForCache blocks until pending cache writes are applied, for tests.
func (s *RemoteKeySet) WaitForCache() {
	s.cache.Wait()
}
