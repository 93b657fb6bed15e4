package platforms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lms/backend/internal/domain/integration"
)

const (
	// CourseraProductionAPIURL is the Coursera for Business API endpoint
	CourseraProductionAPIURL = "https://api.coursera.org/enterprise/v1"

	courseraPageSize = 100
)

// Credential keys the Coursera adapter requires.
const (
	courseraCredAPIKey = "api_key"
	courseraCredOrgID  = "org_id"
)

// CourseraConfig holds static configuration for the Coursera adapter.
// Credentials are per-tenant and arrive with each call.
type CourseraConfig struct {
	// BaseURL is the API base (production or a test double)
	BaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// CourseraAdapter implements PlatformAdapter for Coursera for Business.
type CourseraAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// NewCourseraAdapter creates a Coursera adapter. A nil config uses
// production defaults.
func NewCourseraAdapter(config *CourseraConfig) *CourseraAdapter {
	baseURL := CourseraProductionAPIURL
	timeout := 30
	if config != nil {
		if config.BaseURL != "" {
			baseURL = config.BaseURL
		}
		if config.TimeoutSeconds > 0 {
			timeout = config.TimeoutSeconds
		}
	}
	return &CourseraAdapter{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// PlatformCode returns the platform code this adapter handles
func (a *CourseraAdapter) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeCoursera
}

// ValidateCredentials fetches the organization record, the cheapest
// authenticated call Coursera offers. Auth rejections return false;
// only transport-level failures surface as errors.
func (a *CourseraAdapter) ValidateCredentials(ctx context.Context, creds integration.Credentials) (bool, error) {
	if !creds.Has(courseraCredAPIKey, courseraCredOrgID) {
		return false, nil
	}

	endpoint := fmt.Sprintf("%s/organizations/%s", a.baseURL, url.PathEscape(creds.Get(courseraCredOrgID)))
	err := a.get(ctx, creds, endpoint, nil)
	if err != nil {
		if errors.Is(err, errUnauthorized) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FetchEnrollments pages through the organization's enrollment listing.
func (a *CourseraAdapter) FetchEnrollments(ctx context.Context, creds integration.Credentials) ([]integration.RemoteEnrollment, error) {
	if !creds.Has(courseraCredAPIKey, courseraCredOrgID) {
		return nil, integration.ErrMissingCredentials
	}

	var out []integration.RemoteEnrollment
	start := 0
	for page := 0; ; page++ {
		if page >= maxPages {
			return nil, errTooManyPages
		}

		endpoint := fmt.Sprintf("%s/organizations/%s/enrollments?start=%d&limit=%d",
			a.baseURL, url.PathEscape(creds.Get(courseraCredOrgID)), start, courseraPageSize)
		var resp courseraEnrollmentsResponse
		if err := a.get(ctx, creds, endpoint, &resp); err != nil {
			return nil, asFetchError(err)
		}

		for _, el := range resp.Elements {
			enrolledAt, _ := time.Parse(time.RFC3339, el.EnrolledAt)
			out = append(out, integration.RemoteEnrollment{
				CourseID:    el.CourseID,
				CourseTitle: el.CourseName,
				UserEmail:   el.LearnerEmail,
				EnrolledAt:  enrolledAt,
			})
		}

		if resp.Paging == nil || resp.Paging.Next == 0 {
			return out, nil
		}
		start = resp.Paging.Next
	}
}

// FetchProgress pages through the organization's learner progress
// listing. Coursera reports progress as a 0..1 fraction; it is scaled to
// a percentage here so the normalizer sees one unit across vendors.
func (a *CourseraAdapter) FetchProgress(ctx context.Context, creds integration.Credentials) ([]integration.RemoteProgress, error) {
	if !creds.Has(courseraCredAPIKey, courseraCredOrgID) {
		return nil, integration.ErrMissingCredentials
	}

	var out []integration.RemoteProgress
	start := 0
	for page := 0; ; page++ {
		if page >= maxPages {
			return nil, errTooManyPages
		}

		endpoint := fmt.Sprintf("%s/organizations/%s/learnerProgress?start=%d&limit=%d",
			a.baseURL, url.PathEscape(creds.Get(courseraCredOrgID)), start, courseraPageSize)
		var resp courseraProgressResponse
		if err := a.get(ctx, creds, endpoint, &resp); err != nil {
			return nil, asFetchError(err)
		}

		for _, el := range resp.Elements {
			var lastActivity *time.Time
			if el.LastActivityAt != "" {
				if t, err := time.Parse(time.RFC3339, el.LastActivityAt); err == nil {
					lastActivity = &t
				}
			}
			out = append(out, integration.RemoteProgress{
				CourseID:        el.CourseID,
				CourseTitle:     el.CourseName,
				UserEmail:       el.LearnerEmail,
				PercentComplete: el.OverallProgress * 100,
				Status:          el.CompletionState,
				LastActivityAt:  lastActivity,
			})
		}

		if resp.Paging == nil || resp.Paging.Next == 0 {
			return out, nil
		}
		start = resp.Paging.Next
	}
}

// get performs an authenticated GET against the Coursera API
func (a *CourseraAdapter) get(ctx context.Context, creds integration.Credentials, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("coursera: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.Get(courseraCredAPIKey))
	req.Header.Set("Accept", "application/json")

	return doJSON(a.httpClient, req, out)
}

// Ensure CourseraAdapter implements PlatformAdapter interface
var _ integration.PlatformAdapter = (*CourseraAdapter)(nil)
