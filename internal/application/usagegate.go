package application

import (
	"crypto/subtle"

	"github.com/ericfisherdev/postwriter/internal/domain/model"
)

// IsPrivileged reports whether the supplied access code exactly matches the
// configured secret. The comparison is case-sensitive, does not trim, and runs
// in constant time. An empty configured secret never grants privilege.
func IsPrivileged(supplied, configured string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(configured)) == 1
}

// CanGenerate reports whether a generation request is permitted.
func CanGenerate(u model.Usage, privileged bool) bool {
	return privileged || u.Remaining() > 0
}

// RecordUsage returns the usage after one successful generation. Privileged
// callers are not counted. Call exactly once per successful generation and
// never for rejected or failed attempts.
func RecordUsage(u model.Usage, privileged bool) model.Usage {
	if privileged {
		return u
	}
	u.GenerationCount++
	return u
}

// ShowUpgrade reports whether the upsell should be displayed. Privilege is
// checked before quota so privileged callers with an exhausted free quota
// never see it.
func ShowUpgrade(u model.Usage, privileged bool) bool {
	if privileged {
		return false
	}
	return u.Exhausted()
}
