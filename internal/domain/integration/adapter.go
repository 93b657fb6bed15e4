package integration

import (
	"context"
	"time"
)

// ---------------------------------------------------------------------------
// Raw vendor rows
// ---------------------------------------------------------------------------

// RemoteEnrollment is an enrollment row as fetched from a vendor API,
// before user resolution. Adapters drop rows they cannot parse at all;
// rows with a missing or unmappable identity survive to the normalizer,
// which counts and skips them.
type RemoteEnrollment struct {
	// CourseID is the vendor's course identifier
	CourseID string
	// CourseTitle is the vendor's course display title
	CourseTitle string
	// UserEmail is the remote learner's email, used for identity resolution
	UserEmail string
	// EnrolledAt is when the enrollment was created on the platform
	EnrolledAt time.Time
}

// RemoteProgress is a progress row as fetched from a vendor API.
type RemoteProgress struct {
	CourseID    string
	CourseTitle string
	UserEmail   string
	// PercentComplete is the vendor-reported percentage, possibly out of
	// range; the normalizer clamps it to [0, 100]
	PercentComplete float64
	// Status is the vendor's own status string, folded into the canonical
	// set by the normalizer
	Status string
	// LastActivityAt is the most recent learner activity, if reported
	LastActivityAt *time.Time
}

// ---------------------------------------------------------------------------
// PlatformAdapter port
// ---------------------------------------------------------------------------

// PlatformAdapter is the capability contract every supported platform
// implements. It is defined in the domain layer following the ports and
// adapters pattern; concrete vendor implementations live in
// infrastructure/platforms.
type PlatformAdapter interface {
	// PlatformCode returns the platform code this adapter handles
	PlatformCode() PlatformCode

	// ValidateCredentials performs the cheapest authenticated call the
	// vendor offers. It returns false for any authentication or
	// authorization failure, and an error only for transport-level
	// failures (timeout, DNS, 5xx) distinct from bad credentials.
	ValidateCredentials(ctx context.Context, creds Credentials) (bool, error)

	// FetchEnrollments returns the full enrollment listing for the
	// account. Pagination is handled internally. Individual malformed
	// rows are dropped, never fatal to the fetch.
	FetchEnrollments(ctx context.Context, creds Credentials) ([]RemoteEnrollment, error)

	// FetchProgress returns the full progress listing for the account,
	// same contract as FetchEnrollments.
	FetchProgress(ctx context.Context, creds Credentials) ([]RemoteProgress, error)
}

// AdapterRegistry maps a platform code to its adapter. It is the only
// place new platforms are wired in; no other component inspects the
// platform identity.
type AdapterRegistry interface {
	// GetAdapter returns the adapter for the code, or ErrUnknownPlatform
	GetAdapter(code PlatformCode) (PlatformAdapter, error)

	// ListAdapters returns all registered adapters
	ListAdapters() []PlatformAdapter
}
