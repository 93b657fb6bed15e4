package platforms

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lms/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed vendor response size (10MB)
const maxResponseSize = 10 * 1024 * 1024

// maxPages bounds pagination loops against vendors that never stop
// returning a next page.
const maxPages = 500

// errUnauthorized marks a vendor 401/403. ValidateCredentials folds it
// into a clean false; the fetch path wraps it as ErrInvalidCredentials.
var errUnauthorized = errors.New("platforms: unauthorized")

// errTooManyPages indicates the pagination bound was hit
var errTooManyPages = errors.New("platforms: pagination exceeded page bound")

// doJSON executes the request and decodes the body into out, translating
// transport and HTTP failures into the domain error taxonomy:
//
//	401/403        -> errUnauthorized
//	429, 5xx       -> ErrPlatformUnavailable (eligible for retry)
//	other 4xx      -> ErrInvalidResponse
//	network error  -> ErrPlatformUnavailable
//	bad JSON       -> ErrInvalidResponse
func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", integration.ErrPlatformUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: HTTP %d", errUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%w: HTTP %d", integration.ErrPlatformUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: HTTP %d", integration.ErrInvalidResponse, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", integration.ErrInvalidResponse, err)
	}
	return nil
}

// asFetchError converts an internal unauthorized marker into the
// credential sentinel for fetch-phase callers.
func asFetchError(err error) error {
	if errors.Is(err, errUnauthorized) {
		return fmt.Errorf("%w: credentials rejected mid-fetch", integration.ErrInvalidCredentials)
	}
	return err
}
