package integration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NormalizeResult carries the output of one normalization pass.
type NormalizeResult struct {
	Enrollments []ExternalEnrollment
	Progress    []ExternalProgressRecord
	// UnresolvedCount is the number of rows whose remote identity had no
	// matching local user. Those rows are skipped, never fatal.
	UnresolvedCount int
	// Errors holds one message per skipped row, in input order.
	Errors []string
}

// NormalizeRemoteData converts raw vendor rows into canonical records,
// resolving each remote identity to a local user through the injected
// resolver. It has no side effects beyond resolver lookups.
//
// Rules:
//   - rows without a course ID or email are malformed and skipped
//   - rows whose email resolves to no local user are counted and skipped
//   - progress percentages are clamped to [0, 100]
//   - vendor status strings fold into the canonical set; anything
//     unrecognized maps to in_progress as the conservative default
func NormalizeRemoteData(
	ctx context.Context,
	tenantID uuid.UUID,
	code PlatformCode,
	rawEnrollments []RemoteEnrollment,
	rawProgress []RemoteProgress,
	resolver UserResolver,
) NormalizeResult {
	res := NormalizeResult{
		Enrollments: make([]ExternalEnrollment, 0, len(rawEnrollments)),
		Progress:    make([]ExternalProgressRecord, 0, len(rawProgress)),
	}

	// Resolver results are memoized per email: vendors repeat the same
	// learner across many course rows.
	resolved := make(map[string]uuid.UUID)
	unresolved := make(map[string]bool)

	resolve := func(email string) (uuid.UUID, bool) {
		key := strings.ToLower(strings.TrimSpace(email))
		if id, ok := resolved[key]; ok {
			return id, true
		}
		if unresolved[key] {
			return uuid.Nil, false
		}
		id, err := resolver.ResolveByEmail(ctx, tenantID, key)
		if err != nil {
			unresolved[key] = true
			return uuid.Nil, false
		}
		resolved[key] = id
		return id, true
	}

	now := time.Now()

	for _, raw := range rawEnrollments {
		if raw.CourseID == "" || raw.UserEmail == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: malformed enrollment row (course=%q email=%q)", code, raw.CourseID, raw.UserEmail))
			continue
		}
		userID, ok := resolve(raw.UserEmail)
		if !ok {
			res.UnresolvedCount++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: no local user for %s (course %s)", code, raw.UserEmail, raw.CourseID))
			continue
		}
		enrolledAt := raw.EnrolledAt
		if enrolledAt.IsZero() {
			enrolledAt = now
		}
		res.Enrollments = append(res.Enrollments, ExternalEnrollment{
			ID:             uuid.New(),
			TenantID:       tenantID,
			PlatformCode:   code,
			RemoteCourseID: raw.CourseID,
			UserID:         userID,
			EnrolledAt:     enrolledAt,
		})
	}

	for _, raw := range rawProgress {
		if raw.CourseID == "" || raw.UserEmail == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: malformed progress row (course=%q email=%q)", code, raw.CourseID, raw.UserEmail))
			continue
		}
		userID, ok := resolve(raw.UserEmail)
		if !ok {
			res.UnresolvedCount++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: no local user for %s (course %s)", code, raw.UserEmail, raw.CourseID))
			continue
		}
		res.Progress = append(res.Progress, ExternalProgressRecord{
			ID:              uuid.New(),
			TenantID:        tenantID,
			PlatformCode:    code,
			UserID:          userID,
			RemoteCourseID:  raw.CourseID,
			CourseTitle:     raw.CourseTitle,
			ProgressPercent: ClampPercent(raw.PercentComplete),
			Status:          MapRemoteStatus(raw.Status, raw.PercentComplete),
			LastActivityAt:  raw.LastActivityAt,
		})
	}

	return res
}

// ClampPercent bounds a vendor-reported percentage to [0, 100].
func ClampPercent(pct float64) decimal.Decimal {
	switch {
	case pct < 0:
		return decimal.Zero
	case pct > 100:
		return decimal.NewFromInt(100)
	default:
		return decimal.NewFromFloat(pct)
	}
}

// MapRemoteStatus folds a vendor status string into the canonical set.
// Unrecognized values map to in_progress: treating unknown remote states
// as completed would overstate attainment, and not_started would discard
// activity the vendor did report. Confirmed defaults per vendor payloads
// belong in the adapter, not here.
func MapRemoteStatus(raw string, pct float64) ProgressStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completed", "complete", "finished", "passed":
		return ProgressStatusCompleted
	case "not_started", "not-started", "not started", "notstarted", "enrolled", "new":
		return ProgressStatusNotStarted
	case "in_progress", "in-progress", "in progress", "inprogress", "started", "active":
		return ProgressStatusInProgress
	case "":
		// Some vendors omit the status entirely and only report percent.
		if pct <= 0 {
			return ProgressStatusNotStarted
		}
		if pct >= 100 {
			return ProgressStatusCompleted
		}
		return ProgressStatusInProgress
	default:
		return ProgressStatusInProgress
	}
}
