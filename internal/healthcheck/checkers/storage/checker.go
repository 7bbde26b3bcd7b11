package storagechecker

import (
	"context"
	"log/slog"
	"strings"

	"github.com/memohai/wabridge/internal/healthcheck"
	"github.com/memohai/wabridge/internal/media"
)

const (
	checkTypeStorage = "media.storage"
	probeKey         = ".healthcheck"
)

// Checker probes the media store with a write and delete.
type Checker struct {
	logger   *slog.Logger
	provider media.StorageProvider
}

// NewChecker creates a storage checker.
func NewChecker(log *slog.Logger, provider media.StorageProvider) *Checker {
	if log == nil {
		log = slog.Default()
	}
	return &Checker{
		logger:   log.With(slog.String("checker", "healthcheck_storage")),
		provider: provider,
	}
}

// ListChecks reports whether inbound media can be stored.
func (c *Checker) ListChecks(ctx context.Context) []healthcheck.CheckResult {
	item := healthcheck.CheckResult{
		ID:   checkTypeStorage + ".write",
		Type: checkTypeStorage,
	}
	if c.provider == nil {
		item.Status = healthcheck.StatusError
		item.Summary = "Media storage is not configured."
		return []healthcheck.CheckResult{item}
	}
	item.Metadata = map[string]any{"path": c.provider.AccessPath("")}

	if _, err := c.provider.Put(ctx, probeKey, strings.NewReader("ok")); err != nil {
		c.logger.Warn("media storage probe failed", slog.Any("error", err))
		item.Status = healthcheck.StatusError
		item.Summary = "Media storage is not writable."
		item.Detail = err.Error()
		return []healthcheck.CheckResult{item}
	}
	if err := c.provider.Delete(ctx, probeKey); err != nil {
		item.Status = healthcheck.StatusWarn
		item.Summary = "Media storage probe could not be removed."
		item.Detail = err.Error()
		return []healthcheck.CheckResult{item}
	}
	item.Status = healthcheck.StatusOK
	item.Summary = "Media storage is writable."
	return []healthcheck.CheckResult{item}
}
