package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Fetcher performs the two network hops behind a media reference: the
// reference lookup and the content download.
type Fetcher interface {
	ResolveMediaURL(ctx context.Context, referenceID string) (string, error)
	DownloadMedia(ctx context.Context, url string) ([]byte, error)
}

// Resolver exchanges a reference id for the media bytes.
type Resolver struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewResolver creates a resolver backed by the given fetcher.
func NewResolver(log *slog.Logger, fetcher Fetcher) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		fetcher: fetcher,
		logger:  log.With(slog.String("service", "media_resolver")),
	}
}

// Resolve looks up the download URL for referenceID and downloads it. A
// failure at either hop aborts resolution; nothing is retried.
func (r *Resolver) Resolve(ctx context.Context, referenceID string) (Resolved, error) {
	id := strings.TrimSpace(referenceID)
	if id == "" {
		return Resolved{}, ErrReferenceMissing
	}
	if r.fetcher == nil {
		return Resolved{}, fmt.Errorf("media fetcher not configured")
	}

	url, err := r.fetcher.ResolveMediaURL(ctx, id)
	if err != nil {
		return Resolved{}, fmt.Errorf("%w: %s: %w", ErrReferenceNotFound, id, err)
	}
	if strings.TrimSpace(url) == "" {
		return Resolved{}, fmt.Errorf("%w: %s: lookup returned no url", ErrReferenceNotFound, id)
	}

	data, err := r.fetcher.DownloadMedia(ctx, url)
	if err != nil {
		return Resolved{}, fmt.Errorf("%w: %s: %w", ErrDownloadFailed, id, err)
	}
	r.logger.Debug("media resolved",
		slog.String("reference_id", id),
		slog.Int("size", len(data)),
	)
	return Resolved{URL: url, Bytes: data}, nil
}
