package sampleschecker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/memohai/wabridge/internal/healthcheck"
	"github.com/memohai/wabridge/internal/media"
	"github.com/memohai/wabridge/internal/samples"
)

const checkTypeSample = "samples.source"

// InfoSource describes configured samples.
type InfoSource interface {
	Info(kind media.Kind) (samples.Info, bool)
}

// Checker reports whether each sample kind can be sent.
type Checker struct {
	logger *slog.Logger
	source InfoSource
}

// NewChecker creates a sample checker.
func NewChecker(log *slog.Logger, source InfoSource) *Checker {
	if log == nil {
		log = slog.Default()
	}
	return &Checker{
		logger: log.With(slog.String("checker", "healthcheck_samples")),
		source: source,
	}
}

// ListChecks returns one result per media kind.
func (c *Checker) ListChecks(ctx context.Context) []healthcheck.CheckResult {
	if err := ctx.Err(); err != nil {
		return []healthcheck.CheckResult{}
	}
	if c.source == nil {
		c.logger.Warn("samples healthcheck dependency is unavailable")
		return []healthcheck.CheckResult{{
			ID:      checkTypeSample + ".service",
			Type:    checkTypeSample,
			Status:  healthcheck.StatusWarn,
			Summary: "Sample service is not available.",
		}}
	}

	checks := make([]healthcheck.CheckResult, 0, len(media.Kinds))
	for _, kind := range media.Kinds {
		item := healthcheck.CheckResult{
			ID:   checkTypeSample + "." + kind.String(),
			Type: checkTypeSample,
		}
		info, ok := c.source.Info(kind)
		switch {
		case !ok:
			item.Status = healthcheck.StatusWarn
			item.Summary = fmt.Sprintf("No sample %s configured.", kind)
		case !info.Exists:
			item.Status = healthcheck.StatusError
			item.Summary = fmt.Sprintf("Sample %s is unavailable.", kind)
			item.Detail = info.Reference
		default:
			item.Status = healthcheck.StatusOK
			item.Summary = fmt.Sprintf("Sample %s is ready.", kind)
			item.Metadata = map[string]any{
				"reference": info.Reference,
				"mime_type": info.MimeType,
			}
			if info.Local {
				item.Metadata["size_bytes"] = info.SizeBytes
			}
		}
		checks = append(checks, item)
	}
	return checks
}
