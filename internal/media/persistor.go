package media

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Persistor writes resolved media into the content store.
type Persistor struct {
	provider StorageProvider
	logger   *slog.Logger
}

// NewPersistor creates a persistor with the given storage provider.
func NewPersistor(log *slog.Logger, provider StorageProvider) *Persistor {
	if log == nil {
		log = slog.Default()
	}
	return &Persistor{
		provider: provider,
		logger:   log.With(slog.String("service", "media_persistor")),
	}
}

// Persist stores input.Bytes under the derived filename. An existing file
// with the same name is overwritten. Content above the cap for its kind is
// rejected with ErrAssetTooLarge.
func (p *Persistor) Persist(ctx context.Context, input PersistInput) (StoredRecord, error) {
	if p.provider == nil {
		return StoredRecord{}, ErrProviderUnavailable
	}
	if strings.TrimSpace(input.ReferenceID) == "" {
		return StoredRecord{}, ErrReferenceMissing
	}
	if int64(len(input.Bytes)) > MaxBytes(input.Kind) {
		return StoredRecord{}, tooLarge(MaxBytes(input.Kind))
	}

	filename := DeriveFilename(input.Kind, input.ReferenceID, input.MimeType, input.DeclaredFilename)
	written, err := p.provider.Put(ctx, filename, bytes.NewReader(input.Bytes))
	if err != nil {
		return StoredRecord{}, fmt.Errorf("%w: %s: %w", ErrStorageWriteFailed, filename, err)
	}

	record := StoredRecord{
		Path:      p.provider.AccessPath(filename),
		ByteCount: written,
		Filename:  filename,
	}
	p.logger.Info("media stored",
		slog.String("kind", input.Kind.String()),
		slog.String("path", record.Path),
		slog.Int64("size", record.ByteCount),
	)
	return record, nil
}
