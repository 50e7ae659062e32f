package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/postwriter/internal/application"
)

func TestAccessVerifier_DefaultSecret(t *testing.T) {
	v, err := application.NewAccessVerifier("", "")
	require.NoError(t, err)

	assert.True(t, v.Verify(application.DefaultAccessCode))
	assert.False(t, v.Verify("wrong"))
	assert.False(t, v.Verify(""))
	assert.False(t, v.Hashed())
}

func TestAccessVerifier_ConfiguredSecret(t *testing.T) {
	v, err := application.NewAccessVerifier("s3cret", "")
	require.NoError(t, err)

	assert.True(t, v.Verify("s3cret"))
	assert.False(t, v.Verify(application.DefaultAccessCode))
	assert.False(t, v.Verify("S3CRET"))
}

func TestAccessVerifier_HashMode(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	v, err := application.NewAccessVerifier("ignored", string(hash))
	require.NoError(t, err)

	assert.True(t, v.Hashed())
	assert.True(t, v.Verify("hunter2"))
	assert.False(t, v.Verify("ignored"), "plaintext secret is replaced by the hash")
	assert.False(t, v.Verify("hunter"))
	assert.False(t, v.Verify(""))
}

func TestAccessVerifier_InvalidHash(t *testing.T) {
	_, err := application.NewAccessVerifier("", "not-a-bcrypt-hash")

	require.Error(t, err)
	assert.ErrorIs(t, err, application.ErrInvalidAccessHash)
}
