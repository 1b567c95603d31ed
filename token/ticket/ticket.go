// Package ticket provides the default authentication ticket codecs. Tickets
// are persisted as compact signed JWTs carrying the identity claims and the
// property bag, so they round-trip without server side storage.
package ticket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/pkg/errors"

	"github.com/openid-go/openid"
	"github.com/openid-go/openid/x/errorsx"
)

type wireClaim struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Issuer string `json:"issuer,omitempty"`
}

type wireTicket struct {
	ID         string            `json:"jti,omitempty"`
	Subject    string            `json:"sub,omitempty"`
	IssuedAt   int64             `json:"iat,omitempty"`
	ExpiresAt  int64             `json:"exp,omitempty"`
	Usage      string            `json:"token_usage,omitempty"`
	Claims     []wireClaim       `json:"claims,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// JWSCodec converts tickets to compact JWS strings signed with the active
// credentials and verified against the published key set.
type JWSCodec struct {
	credentials openid.CredentialsProvider
	usage       string
}

// NewJWSCodec returns a codec minting tokens of the given usage.
func NewJWSCodec(credentials openid.CredentialsProvider, usage string) *JWSCodec {
	return &JWSCodec{credentials: credentials, usage: usage}
}

func (c *JWSCodec) Serialize(ctx context.Context, t *openid.AuthenticationTicket) (string, error) {
	credentials, err := c.credentials.ActiveCredentials(ctx)
	if err != nil {
		return "", errorsx.WithStack(err)
	}

	wire := wireTicket{
		ID:         t.GetTokenID(),
		Usage:      c.usage,
		Properties: t.Properties,
	}

	if t.Identity != nil {
		wire.Subject = t.Identity.Subject()

		for _, claim := range t.Identity.Claims {
			wire.Claims = append(wire.Claims, wireClaim{Type: claim.Type, Value: claim.Value, Issuer: claim.Issuer})
		}
	}

	if issuedAt, ok := t.GetIssuedAt(); ok {
		wire.IssuedAt = issuedAt.Unix()
	}

	if expiresAt, ok := t.GetExpiresAt(); ok {
		wire.ExpiresAt = expiresAt.Unix()
	}

	payload, err := json.Marshal(wire)
	if err != nil {
		return "", errorsx.WithStack(err)
	}

	signer, err := jose.NewSigner(jose.SigningKey{
		Algorithm: jose.SignatureAlgorithm(credentials.Algorithm),
		Key:       credentials.Key,
	}, (&jose.SignerOptions{}).WithHeader(jose.HeaderKey("kid"), credentials.KeyID))
	if err != nil {
		return "", errorsx.WithStack(err)
	}

	object, err := signer.Sign(payload)
	if err != nil {
		return "", errorsx.WithStack(err)
	}

	token, err := object.CompactSerialize()
	if err != nil {
		return "", errorsx.WithStack(err)
	}

	return token, nil
}

func (c *JWSCodec) Deserialize(ctx context.Context, token string) (*openid.AuthenticationTicket, error) {
	object, err := jose.ParseSigned(token)
	if err != nil {
		return nil, errorsx.WithStack(err)
	}

	set, err := c.credentials.PublicKeySet(ctx)
	if err != nil {
		return nil, errorsx.WithStack(err)
	}

	payload, err := verify(object, set)
	if err != nil {
		return nil, err
	}

	var wire wireTicket

	if err = json.Unmarshal(payload, &wire); err != nil {
		return nil, errorsx.WithStack(err)
	}

	if wire.Usage != c.usage {
		return nil, errorsx.WithStack(errors.Errorf("the token was issued as a %s, not a %s", wire.Usage, c.usage))
	}

	identity := &openid.Identity{}
	for _, claim := range wire.Claims {
		identity.Claims = append(identity.Claims, openid.Claim{Type: claim.Type, Value: claim.Value, Issuer: claim.Issuer})
	}

	t := openid.NewTicket(identity)

	for name, value := range wire.Properties {
		t.SetProperty(name, value)
	}

	if wire.IssuedAt != 0 {
		t.SetIssuedAt(time.Unix(wire.IssuedAt, 0))
	}

	if wire.ExpiresAt != 0 {
		t.SetExpiresAt(time.Unix(wire.ExpiresAt, 0))
	}

	return t, nil
}

func verify(object *jose.JSONWebSignature, set *jose.JSONWebKeySet) ([]byte, error) {
	for _, key := range set.Keys {
		if payload, err := object.Verify(key); err == nil {
			return payload, nil
		}
	}

	return nil, errorsx.WithStack(errors.New("the token signature could not be verified against the published keys"))
}
