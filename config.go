package openid

import (
	"context"
	"net/http"
	"time"

	"github.com/openid-go/openid/i18n"
)

// Default endpoint paths.
const (
	DefaultAuthorizationEndpointPath = "/connect/authorize"
	DefaultTokenEndpointPath         = "/connect/token"
	DefaultUserinfoEndpointPath      = "/connect/userinfo"
	DefaultIntrospectionEndpointPath = "/connect/introspect"
	DefaultLogoutEndpointPath        = "/connect/logout"
	DefaultRevocationEndpointPath    = "/connect/revoke"
	DefaultConfigurationEndpointPath = "/.well-known/openid-configuration"
	DefaultCryptographyEndpointPath  = "/.well-known/jwks"
)

// Default token lifespans.
const (
	DefaultAccessTokenLifespan       = time.Hour
	DefaultIdentityTokenLifespan     = time.Minute * 20
	DefaultAuthorizationCodeLifespan = time.Minute * 5
	DefaultRefreshTokenLifespan      = time.Hour * 24 * 14
)

// TicketCodec converts authentication tickets to and from their opaque wire
// form. A codec is configured per token kind and is the fallback when the
// matching serialize or deserialize event does not handle the conversion
// itself.
type TicketCodec interface {
	Serialize(ctx context.Context, ticket *AuthenticationTicket) (token string, err error)
	Deserialize(ctx context.Context, token string) (ticket *AuthenticationTicket, err error)
}

// TokenStore tracks issued single-use and revocable tokens. It is queried
// before a code or refresh token is accepted and updated when one is consumed
// or revoked. Implementations must tolerate repeated calls for the same token.
type TokenStore interface {
	// IsRevoked reports whether the token with the given identifier has been
	// consumed or revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// Revoke marks the token with the given identifier as no longer usable
	// until lifetime has passed. Revoking an already revoked or unknown token
	// is not an error.
	Revoke(ctx context.Context, tokenID string, lifetime time.Duration) error
}

// Config is the immutable engine configuration, established at startup and
// read-only afterwards. The zero value of every field selects a sensible
// default through the Get* accessors.
type Config struct {
	// Issuer is the value of the iss claim and of the discovery document's
	// issuer field.
	Issuer string

	// Endpoint paths. Empty paths fall back to the defaults above. Setting a
	// path to "-" disables the endpoint.
	AuthorizationEndpointPath string
	TokenEndpointPath         string
	UserinfoEndpointPath      string
	IntrospectionEndpointPath string
	LogoutEndpointPath        string
	RevocationEndpointPath    string
	ConfigurationEndpointPath string
	CryptographyEndpointPath  string

	// AllowInsecureHTTP disables the requirement that every request arrives
	// over HTTPS. Never enable this outside of development.
	AllowInsecureHTTP bool

	// DisableSlidingExpiration stops refresh token grant requests from being
	// issued a fresh refresh token.
	DisableSlidingExpiration bool

	// Token lifespans. Zero values fall back to the defaults above.
	AccessTokenLifespan       time.Duration
	IdentityTokenLifespan     time.Duration
	AuthorizationCodeLifespan time.Duration
	RefreshTokenLifespan      time.Duration

	// Events holds the extension callbacks driving the pipeline.
	Events Events

	// Credentials yields the signing material for the default codecs and the
	// JWKS endpoint.
	Credentials CredentialsProvider

	// Per-token-kind codecs. Kinds without a codec can only be produced or
	// consumed through their serialize and deserialize events.
	AuthorizationCodeCodec TicketCodec
	AccessTokenCodec       TicketCodec
	IdentityTokenCodec     TicketCodec
	RefreshTokenCodec      TicketCodec

	// Store tracks consumed authorization codes and revoked tokens. A nil
	// store disables replay detection and makes revocation a no-op.
	Store TokenStore

	// MessageCatalog localizes error descriptions.
	MessageCatalog i18n.MessageCatalog

	// FatalHandler receives configuration and programming errors such as a
	// duplicate response write. These are never converted to protocol errors.
	// A nil handler writes a bare 500 with no protocol-shaped body.
	FatalHandler func(rw http.ResponseWriter, r *http.Request, err error)

	// Clock returns the current time, overridable in tests.
	Clock func() time.Time
}

func (c *Config) GetAuthorizationEndpointPath() string {
	return c.endpointPath(c.AuthorizationEndpointPath, DefaultAuthorizationEndpointPath)
}

func (c *Config) GetTokenEndpointPath() string {
	return c.endpointPath(c.TokenEndpointPath, DefaultTokenEndpointPath)
}

func (c *Config) GetUserinfoEndpointPath() string {
	return c.endpointPath(c.UserinfoEndpointPath, DefaultUserinfoEndpointPath)
}

func (c *Config) GetIntrospectionEndpointPath() string {
	return c.endpointPath(c.IntrospectionEndpointPath, DefaultIntrospectionEndpointPath)
}

func (c *Config) GetLogoutEndpointPath() string {
	return c.endpointPath(c.LogoutEndpointPath, DefaultLogoutEndpointPath)
}

func (c *Config) GetRevocationEndpointPath() string {
	return c.endpointPath(c.RevocationEndpointPath, DefaultRevocationEndpointPath)
}

func (c *Config) GetConfigurationEndpointPath() string {
	return c.endpointPath(c.ConfigurationEndpointPath, DefaultConfigurationEndpointPath)
}

func (c *Config) GetCryptographyEndpointPath() string {
	return c.endpointPath(c.CryptographyEndpointPath, DefaultCryptographyEndpointPath)
}

func (c *Config) endpointPath(configured, def string) string {
	switch configured {
	case "":
		return def
	case "-":
		return ""
	default:
		return configured
	}
}

func (c *Config) GetAccessTokenLifespan() time.Duration {
	if c.AccessTokenLifespan <= 0 {
		return DefaultAccessTokenLifespan
	}

	return c.AccessTokenLifespan
}

func (c *Config) GetIdentityTokenLifespan() time.Duration {
	if c.IdentityTokenLifespan <= 0 {
		return DefaultIdentityTokenLifespan
	}

	return c.IdentityTokenLifespan
}

func (c *Config) GetAuthorizationCodeLifespan() time.Duration {
	if c.AuthorizationCodeLifespan <= 0 {
		return DefaultAuthorizationCodeLifespan
	}

	return c.AuthorizationCodeLifespan
}

func (c *Config) GetRefreshTokenLifespan() time.Duration {
	if c.RefreshTokenLifespan <= 0 {
		return DefaultRefreshTokenLifespan
	}

	return c.RefreshTokenLifespan
}

// Now returns the current time via the configured clock.
func (c *Config) Now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}

	return time.Now()
}
