package healthcheck

import "context"

const (
	// StatusOK indicates check passed.
	StatusOK = "ok"
	// StatusWarn indicates check completed with warning.
	StatusWarn = "warn"
	// StatusError indicates check failed.
	StatusError = "error"
	// StatusUnknown indicates check result is not yet known.
	StatusUnknown = "unknown"
)

// CheckResult is one runtime check item produced by a checker.
type CheckResult struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Status   string         `json:"status"`
	Summary  string         `json:"summary"`
	Detail   string         `json:"detail,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Checker evaluates one or more runtime checks of the bridge.
type Checker interface {
	ListChecks(ctx context.Context) []CheckResult
}

// Run evaluates every checker in order. Nil checkers are skipped.
func Run(ctx context.Context, checkers ...Checker) []CheckResult {
	results := make([]CheckResult, 0, len(checkers))
	for _, c := range checkers {
		if c == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			break
		}
		results = append(results, c.ListChecks(ctx)...)
	}
	return results
}

// Overall folds results into the worst status. No results means unknown.
func Overall(results []CheckResult) string {
	if len(results) == 0 {
		return StatusUnknown
	}
	overall := StatusOK
	for _, r := range results {
		switch r.Status {
		case StatusError:
			return StatusError
		case StatusWarn, StatusUnknown:
			overall = StatusWarn
		}
	}
	return overall
}
