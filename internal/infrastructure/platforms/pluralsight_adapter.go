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
	// PluralsightProductionAPIURL is the Pluralsight plan API endpoint
	PluralsightProductionAPIURL = "https://paas-api.pluralsight.com/api/v1"

	pluralsightPageSize = 200
)

// Credential keys the Pluralsight adapter requires.
const (
	pluralsightCredAPIKey = "api_key"
	pluralsightCredPlanID = "plan_id"
)

// PluralsightConfig holds static configuration for the Pluralsight adapter.
type PluralsightConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// PluralsightAdapter implements PlatformAdapter for Pluralsight Skills.
type PluralsightAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// NewPluralsightAdapter creates a Pluralsight adapter. A nil config uses
// production defaults.
func NewPluralsightAdapter(config *PluralsightConfig) *PluralsightAdapter {
	baseURL := PluralsightProductionAPIURL
	timeout := 30
	if config != nil {
		if config.BaseURL != "" {
			baseURL = config.BaseURL
		}
		if config.TimeoutSeconds > 0 {
			timeout = config.TimeoutSeconds
		}
	}
	return &PluralsightAdapter{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// PlatformCode returns the platform code this adapter handles
func (a *PluralsightAdapter) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodePluralsight
}

// ValidateCredentials fetches the plan record to prove the API token is
// live and scoped to the plan.
func (a *PluralsightAdapter) ValidateCredentials(ctx context.Context, creds integration.Credentials) (bool, error) {
	if !creds.Has(pluralsightCredAPIKey, pluralsightCredPlanID) {
		return false, nil
	}

	endpoint := fmt.Sprintf("%s/plans/%s", a.baseURL, url.PathEscape(creds.Get(pluralsightCredPlanID)))
	err := a.get(ctx, creds, endpoint, nil)
	if err != nil {
		if errors.Is(err, errUnauthorized) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FetchEnrollments pages through the plan's course usage listing. A
// Pluralsight "first viewed" row is the closest thing the plan API has
// to an enrollment.
func (a *PluralsightAdapter) FetchEnrollments(ctx context.Context, creds integration.Credentials) ([]integration.RemoteEnrollment, error) {
	if !creds.Has(pluralsightCredAPIKey, pluralsightCredPlanID) {
		return nil, integration.ErrMissingCredentials
	}

	var out []integration.RemoteEnrollment
	for page := 1; ; page++ {
		if page > maxPages {
			return nil, errTooManyPages
		}

		endpoint := fmt.Sprintf("%s/plans/%s/course-usage?page=%d&pageSize=%d",
			a.baseURL, url.PathEscape(creds.Get(pluralsightCredPlanID)), page, pluralsightPageSize)
		var resp pluralsightCourseUsageResponse
		if err := a.get(ctx, creds, endpoint, &resp); err != nil {
			return nil, asFetchError(err)
		}

		for _, row := range resp.Data {
			enrolledAt, _ := time.Parse(time.RFC3339, row.FirstViewedOn)
			out = append(out, integration.RemoteEnrollment{
				CourseID:    row.CourseID,
				CourseTitle: row.CourseTitle,
				UserEmail:   row.UserEmail,
				EnrolledAt:  enrolledAt,
			})
		}

		if page >= resp.TotalPages {
			return out, nil
		}
	}
}

// FetchProgress pages through the plan's course progress listing.
func (a *PluralsightAdapter) FetchProgress(ctx context.Context, creds integration.Credentials) ([]integration.RemoteProgress, error) {
	if !creds.Has(pluralsightCredAPIKey, pluralsightCredPlanID) {
		return nil, integration.ErrMissingCredentials
	}

	var out []integration.RemoteProgress
	for page := 1; ; page++ {
		if page > maxPages {
			return nil, errTooManyPages
		}

		endpoint := fmt.Sprintf("%s/plans/%s/course-progress?page=%d&pageSize=%d",
			a.baseURL, url.PathEscape(creds.Get(pluralsightCredPlanID)), page, pluralsightPageSize)
		var resp pluralsightCourseProgressResponse
		if err := a.get(ctx, creds, endpoint, &resp); err != nil {
			return nil, asFetchError(err)
		}

		for _, row := range resp.Data {
			var lastActivity *time.Time
			if row.LastViewedOn != "" {
				if t, err := time.Parse(time.RFC3339, row.LastViewedOn); err == nil {
					lastActivity = &t
				}
			}
			out = append(out, integration.RemoteProgress{
				CourseID:        row.CourseID,
				CourseTitle:     row.CourseTitle,
				UserEmail:       row.UserEmail,
				PercentComplete: row.PercentComplete,
				Status:          row.Status,
				LastActivityAt:  lastActivity,
			})
		}

		if page >= resp.TotalPages {
			return out, nil
		}
	}
}

// get performs an authenticated GET against the Pluralsight plan API
func (a *PluralsightAdapter) get(ctx context.Context, creds integration.Credentials, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("pluralsight: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+creds.Get(pluralsightCredAPIKey))
	req.Header.Set("Accept", "application/json")

	return doJSON(a.httpClient, req, out)
}

// Ensure PluralsightAdapter implements PlatformAdapter interface
var _ integration.PlatformAdapter = (*PluralsightAdapter)(nil)
