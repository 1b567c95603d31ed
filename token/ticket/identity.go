package ticket

import (
	"context"
	"crypto/ecdsa"
	"crypto/rsa"

	"github.com/cristalhq/jwt/v4"
	"github.com/pkg/errors"

	"github.com/openid-go/openid"
	"github.com/openid-go/openid/x/errorsx"
)

type identityClaims struct {
	jwt.RegisteredClaims

	Nonce           string `json:"nonce,omitempty"`
	AuthorizedParty string `json:"azp,omitempty"`
}

// IdentityCodec mints id_tokens. Identity tokens are consumed by clients, not
// by this server, so the codec only serializes.
type IdentityCodec struct {
	credentials openid.CredentialsProvider
	issuer      string
}

// NewIdentityCodec returns a codec minting id_tokens for the given issuer.
func NewIdentityCodec(credentials openid.CredentialsProvider, issuer string) *IdentityCodec {
	return &IdentityCodec{credentials: credentials, issuer: issuer}
}

func (c *IdentityCodec) Serialize(ctx context.Context, t *openid.AuthenticationTicket) (string, error) {
	credentials, err := c.credentials.ActiveCredentials(ctx)
	if err != nil {
		return "", errorsx.WithStack(err)
	}

	signer, err := newSigner(credentials)
	if err != nil {
		return "", err
	}

	claims := identityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       t.GetTokenID(),
			Issuer:   c.issuer,
			Audience: jwt.Audience(t.GetPresenters()),
		},
		Nonce: t.GetNonce(),
	}

	if t.Identity != nil {
		claims.Subject = t.Identity.Subject()
	}

	if presenters := t.GetPresenters(); len(presenters) != 0 {
		claims.AuthorizedParty = presenters[0]
	}

	if issuedAt, ok := t.GetIssuedAt(); ok {
		claims.IssuedAt = jwt.NewNumericDate(issuedAt)
	}

	if expiresAt, ok := t.GetExpiresAt(); ok {
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token, err := jwt.NewBuilder(signer).Build(claims)
	if err != nil {
		return "", errorsx.WithStack(err)
	}

	return token.String(), nil
}

// Deserialize always fails, the server never consumes its own id_tokens.
func (c *IdentityCodec) Deserialize(_ context.Context, _ string) (*openid.AuthenticationTicket, error) {
	return nil, errorsx.WithStack(errors.New("identity tokens cannot be deserialized"))
}

func newSigner(credentials *openid.SigningCredentials) (jwt.Signer, error) {
	algorithm := jwt.Algorithm(credentials.Algorithm)

	switch algorithm {
	case jwt.RS256, jwt.RS384, jwt.RS512:
		key, ok := credentials.Key.(*rsa.PrivateKey)
		if !ok {
			return nil, errorsx.WithStack(errors.Errorf("the %s algorithm requires an RSA private key", algorithm))
		}

		signer, err := jwt.NewSignerRS(algorithm, key)
		if err != nil {
			return nil, errorsx.WithStack(err)
		}

		return signer, nil
	case jwt.ES256, jwt.ES384, jwt.ES512:
		key, ok := credentials.Key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, errorsx.WithStack(errors.Errorf("the %s algorithm requires an ECDSA private key", algorithm))
		}

		signer, err := jwt.NewSignerES(algorithm, key)
		if err != nil {
			return nil, errorsx.WithStack(err)
		}

		return signer, nil
	default:
		return nil, errorsx.WithStack(errors.Errorf("the %s algorithm is not supported for identity tokens", algorithm))
	}
}
