package platforms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lms/backend/internal/domain/integration"
)

const (
	// UdemyProductionAPIURL is the Udemy Business API endpoint
	UdemyProductionAPIURL = "https://www.udemy.com/api-2.0"

	udemyPageSize = 100

	// udemyDateLayout is the date-only format Udemy Business reports use
	udemyDateLayout = "2006-01-02"
)

// Credential keys the Udemy adapter requires.
const (
	udemyCredClientID     = "client_id"
	udemyCredClientSecret = "client_secret"
	udemyCredAccountID    = "account_id"
)

// UdemyConfig holds static configuration for the Udemy adapter.
type UdemyConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// UdemyAdapter implements PlatformAdapter for Udemy Business.
type UdemyAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// NewUdemyAdapter creates a Udemy adapter. A nil config uses production
// defaults.
func NewUdemyAdapter(config *UdemyConfig) *UdemyAdapter {
	baseURL := UdemyProductionAPIURL
	timeout := 30
	if config != nil {
		if config.BaseURL != "" {
			baseURL = config.BaseURL
		}
		if config.TimeoutSeconds > 0 {
			timeout = config.TimeoutSeconds
		}
	}
	return &UdemyAdapter{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// PlatformCode returns the platform code this adapter handles
func (a *UdemyAdapter) PlatformCode() integration.PlatformCode {
	return integration.PlatformCodeUdemy
}

// ValidateCredentials fetches the organization account record using
// basic auth with the client ID and secret.
func (a *UdemyAdapter) ValidateCredentials(ctx context.Context, creds integration.Credentials) (bool, error) {
	if !creds.Has(udemyCredClientID, udemyCredClientSecret, udemyCredAccountID) {
		return false, nil
	}

	endpoint := fmt.Sprintf("%s/organizations/%s/", a.baseURL, url.PathEscape(creds.Get(udemyCredAccountID)))
	err := a.get(ctx, creds, endpoint, nil)
	if err != nil {
		if errors.Is(err, errUnauthorized) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FetchEnrollments pages through the account's user course activity
// report, following Udemy's cursor-style next links.
func (a *UdemyAdapter) FetchEnrollments(ctx context.Context, creds integration.Credentials) ([]integration.RemoteEnrollment, error) {
	if !creds.Has(udemyCredClientID, udemyCredClientSecret, udemyCredAccountID) {
		return nil, integration.ErrMissingCredentials
	}

	var out []integration.RemoteEnrollment
	err := a.eachActivityRow(ctx, creds, func(row udemyUserCourseActivity) {
		enrolledAt, _ := time.Parse(udemyDateLayout, row.EnrollmentDate)
		out = append(out, integration.RemoteEnrollment{
			CourseID:    strconv.FormatInt(row.CourseID, 10),
			CourseTitle: row.CourseTitle,
			UserEmail:   row.UserEmail,
			EnrolledAt:  enrolledAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchProgress reads the same activity report, taking the completion
// ratio side of each row. Udemy reports no status string, so rows go out
// with an empty status and the normalizer falls back to the percentage.
func (a *UdemyAdapter) FetchProgress(ctx context.Context, creds integration.Credentials) ([]integration.RemoteProgress, error) {
	if !creds.Has(udemyCredClientID, udemyCredClientSecret, udemyCredAccountID) {
		return nil, integration.ErrMissingCredentials
	}

	var out []integration.RemoteProgress
	err := a.eachActivityRow(ctx, creds, func(row udemyUserCourseActivity) {
		var lastActivity *time.Time
		if row.LastAccessedDate != "" {
			if t, err := time.Parse(udemyDateLayout, row.LastAccessedDate); err == nil {
				lastActivity = &t
			}
		}
		out = append(out, integration.RemoteProgress{
			CourseID:        strconv.FormatInt(row.CourseID, 10),
			CourseTitle:     row.CourseTitle,
			UserEmail:       row.UserEmail,
			PercentComplete: row.CompletionRatio,
			LastActivityAt:  lastActivity,
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// eachActivityRow pages through the user course activity report and
// invokes fn per row. The next link is trusted only when it stays on the
// configured host.
func (a *UdemyAdapter) eachActivityRow(ctx context.Context, creds integration.Credentials, fn func(udemyUserCourseActivity)) error {
	endpoint := fmt.Sprintf("%s/organizations/%s/analytics/user-course-activity/?page=1&page_size=%d",
		a.baseURL, url.PathEscape(creds.Get(udemyCredAccountID)), udemyPageSize)

	for page := 0; ; page++ {
		if page >= maxPages {
			return errTooManyPages
		}

		var resp udemyUserCourseActivityResponse
		if err := a.get(ctx, creds, endpoint, &resp); err != nil {
			return asFetchError(err)
		}

		for _, row := range resp.Results {
			fn(row)
		}

		if resp.Next == "" {
			return nil
		}
		if !strings.HasPrefix(resp.Next, a.baseURL) {
			return fmt.Errorf("%w: next link %q leaves the API host", integration.ErrInvalidResponse, resp.Next)
		}
		endpoint = resp.Next
	}
}

// get performs an authenticated GET against the Udemy Business API
func (a *UdemyAdapter) get(ctx context.Context, creds integration.Credentials, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("udemy: failed to create request: %w", err)
	}
	req.SetBasicAuth(creds.Get(udemyCredClientID), creds.Get(udemyCredClientSecret))
	req.Header.Set("Accept", "application/json")

	return doJSON(a.httpClient, req, out)
}

// Ensure UdemyAdapter implements PlatformAdapter interface
var _ integration.PlatformAdapter = (*UdemyAdapter)(nil)
