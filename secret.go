package openid

import (
	"context"
	"crypto/subtle"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/openid-go/openid/x/errorsx"
)

const DefaultBCryptWorkFactor = 12

// ErrClientSecretNotPlainText is returned by GetPlainTextValue on secrets
// that only store a digest.
var ErrClientSecretNotPlainText = errors.New("this secret doesn't support plaintext")

// ClientSecret compares a stored client secret with the value presented on a
// request. Validation events use it to authenticate confidential clients.
type ClientSecret interface {
	// Compare returns nil when secret matches the stored value.
	Compare(ctx context.Context, secret []byte) (err error)

	// IsPlainText reports whether the stored value can be recovered.
	IsPlainText() (is bool)

	// GetPlainTextValue returns the stored value when it is recoverable, and
	// ErrClientSecretNotPlainText otherwise.
	GetPlainTextValue() (secret []byte, err error)

	// Valid reports whether a secret is configured at all.
	Valid() (valid bool)
}

// BCryptClientSecret stores a bcrypt digest of a client secret.
type BCryptClientSecret struct {
	value []byte
}

// NewBCryptClientSecret returns a secret for an existing bcrypt hash.
func NewBCryptClientSecret(hash string) *BCryptClientSecret {
	return &BCryptClientSecret{value: []byte(hash)}
}

// NewBCryptClientSecretPlain hashes rawSecret with the given cost. A zero cost
// selects DefaultBCryptWorkFactor.
func NewBCryptClientSecretPlain(rawSecret string, cost int) (*BCryptClientSecret, error) {
	if cost == 0 {
		cost = DefaultBCryptWorkFactor
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(rawSecret), cost)
	if err != nil {
		return nil, errorsx.WithStack(err)
	}

	return &BCryptClientSecret{value: hashed}, nil
}

func (s *BCryptClientSecret) Compare(_ context.Context, secret []byte) (err error) {
	if err = bcrypt.CompareHashAndPassword(s.value, secret); err != nil {
		return errorsx.WithStack(err)
	}

	return nil
}

func (s *BCryptClientSecret) IsPlainText() (is bool) {
	return false
}

func (s *BCryptClientSecret) GetPlainTextValue() (secret []byte, err error) {
	return nil, ErrClientSecretNotPlainText
}

func (s *BCryptClientSecret) Valid() (valid bool) {
	return len(s.value) != 0
}

// PlainTextClientSecret stores a client secret verbatim. It exists for tests
// and development setups, production registrations should use bcrypt.
type PlainTextClientSecret struct {
	value []byte
}

func NewPlainTextClientSecret(value string) *PlainTextClientSecret {
	return &PlainTextClientSecret{value: []byte(value)}
}

func (s *PlainTextClientSecret) Compare(_ context.Context, secret []byte) (err error) {
	if subtle.ConstantTimeCompare(s.value, secret) == 0 {
		return errorsx.WithStack(errors.New("the provided client secret does not match the registered one"))
	}

	return nil
}

func (s *PlainTextClientSecret) IsPlainText() (is bool) {
	return true
}

func (s *PlainTextClientSecret) GetPlainTextValue() (secret []byte, err error) {
	return s.value, nil
}

func (s *PlainTextClientSecret) Valid() (valid bool) {
	return len(s.value) != 0
}
