package integration

import "errors"

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	// Platform / registry errors
	ErrUnknownPlatform  = errors.New("integration: unknown platform code")
	ErrConfigNotFound   = errors.New("integration: platform config not found")
	ErrPlatformDisabled = errors.New("integration: platform sync is disabled")

	// Credential errors
	ErrInvalidCredentials = errors.New("integration: invalid platform credentials")
	ErrMissingCredentials = errors.New("integration: platform credentials not configured")

	// Transport errors (distinct from bad credentials; eligible for retry)
	ErrPlatformUnavailable = errors.New("integration: platform temporarily unavailable")
	ErrInvalidResponse     = errors.New("integration: invalid platform response")

	// Concurrency guard
	ErrSyncInProgress = errors.New("integration: sync already in progress")

	// Normalization errors
	ErrUserNotFound = errors.New("integration: no local user for remote identity")

	// Config validation errors
	ErrInvalidTenantID      = errors.New("integration: invalid tenant ID")
	ErrInvalidSyncFrequency = errors.New("integration: sync frequency out of bounds")
)

// ---------------------------------------------------------------------------
// PlatformCode
// ---------------------------------------------------------------------------

// PlatformCode identifies an external training platform. The set is closed:
// adding a platform means adding one adapter and one registry entry.
type PlatformCode string

const (
	// PlatformCodeCoursera represents the Coursera MOOC platform
	PlatformCodeCoursera PlatformCode = "COURSERA"
	// PlatformCodePluralsight represents the Pluralsight skills platform
	PlatformCodePluralsight PlatformCode = "PLURALSIGHT"
	// PlatformCodeUdemy represents the Udemy course marketplace
	PlatformCodeUdemy PlatformCode = "UDEMY"
)

// AllPlatformCodes returns every supported platform code.
func AllPlatformCodes() []PlatformCode {
	return []PlatformCode{PlatformCodeCoursera, PlatformCodePluralsight, PlatformCodeUdemy}
}

// IsValid returns true if the platform code is valid
func (c PlatformCode) IsValid() bool {
	switch c {
	case PlatformCodeCoursera, PlatformCodePluralsight, PlatformCodeUdemy:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformCode
func (c PlatformCode) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the platform
func (c PlatformCode) DisplayName() string {
	switch c {
	case PlatformCodeCoursera:
		return "Coursera"
	case PlatformCodePluralsight:
		return "Pluralsight"
	case PlatformCodeUdemy:
		return "Udemy"
	default:
		return string(c)
	}
}

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

// Credentials is an opaque key/value secret map for one platform. The sync
// engine never interprets individual keys; only the matching adapter does.
type Credentials map[string]string

// Get returns the value for key, or "" when absent.
func (c Credentials) Get(key string) string {
	if c == nil {
		return ""
	}
	return c[key]
}

// Has reports whether every given key is present and non-empty.
func (c Credentials) Has(keys ...string) bool {
	for _, k := range keys {
		if c.Get(k) == "" {
			return false
		}
	}
	return true
}

// Redacted returns a copy safe for logging: values replaced with "***".
func (c Credentials) Redacted() map[string]string {
	out := make(map[string]string, len(c))
	for k := range c {
		out[k] = "***"
	}
	return out
}
