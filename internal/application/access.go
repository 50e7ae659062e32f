package application

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAccessCode is the fallback secret used when none is configured.
const DefaultAccessCode = "letmein"

// ErrInvalidAccessHash is returned when the configured bcrypt hash cannot be parsed.
var ErrInvalidAccessHash = errors.New("invalid access code hash")

// AccessVerifier decides whether a supplied access code grants unlimited use.
// With a bcrypt hash configured the hash is authoritative; otherwise the
// plaintext secret is compared with IsPrivileged.
type AccessVerifier struct {
	secret string
	hash   []byte
}

// NewAccessVerifier creates an AccessVerifier. An empty secret falls back to
// DefaultAccessCode. A non-empty bcryptHash must be a valid bcrypt hash.
func NewAccessVerifier(secret, bcryptHash string) (*AccessVerifier, error) {
	if secret == "" {
		secret = DefaultAccessCode
	}

	v := &AccessVerifier{secret: secret}
	if bcryptHash != "" {
		if _, err := bcrypt.Cost([]byte(bcryptHash)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAccessHash, err)
		}
		v.hash = []byte(bcryptHash)
	}
	return v, nil
}

// Verify reports whether code grants privilege. An empty code never does.
func (v *AccessVerifier) Verify(code string) bool {
	if code == "" {
		return false
	}
	if v.hash != nil {
		return bcrypt.CompareHashAndPassword(v.hash, []byte(code)) == nil
	}
	return IsPrivileged(code, v.secret)
}

// Hashed reports whether the verifier compares against a bcrypt hash.
func (v *AccessVerifier) Hashed() bool {
	return v.hash != nil
}
