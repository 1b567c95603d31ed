package openid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBCryptClientSecret(t *testing.T) {
	secret, err := NewBCryptClientSecretPlain("correct horse battery staple", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, secret.Valid())
	assert.False(t, secret.IsPlainText())

	assert.NoError(t, secret.Compare(context.Background(), []byte("correct horse battery staple")))
	assert.Error(t, secret.Compare(context.Background(), []byte("wrong")))

	_, err = secret.GetPlainTextValue()
	assert.ErrorIs(t, err, ErrClientSecretNotPlainText)
}

func TestBCryptClientSecretFromHash(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cr3t"), bcrypt.MinCost)
	require.NoError(t, err)

	secret := NewBCryptClientSecret(string(hashed))

	assert.NoError(t, secret.Compare(context.Background(), []byte("s3cr3t")))
	assert.Error(t, secret.Compare(context.Background(), []byte("other")))
}

func TestPlainTextClientSecret(t *testing.T) {
	secret := NewPlainTextClientSecret("s3cr3t")

	assert.True(t, secret.Valid())
	assert.True(t, secret.IsPlainText())

	value, err := secret.GetPlainTextValue()
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cr3t"), value)

	assert.NoError(t, secret.Compare(context.Background(), []byte("s3cr3t")))
	assert.Error(t, secret.Compare(context.Background(), []byte("S3CR3T")))
}

func TestEmptyClientSecretIsInvalid(t *testing.T) {
	assert.False(t, NewPlainTextClientSecret("").Valid())
	assert.False(t, NewBCryptClientSecret("").Valid())
}
