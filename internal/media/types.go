package media

import (
	"context"
	"io"
)

// Kind classifies the kind of a media payload. The values match the
// WhatsApp message type tags.
type Kind string

const (
	KindImage    Kind = "image"
	KindAudio    Kind = "audio"
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
)

// Kinds lists every media kind in a stable order.
var Kinds = []Kind{KindImage, KindAudio, KindVideo, KindDocument}

// String returns the kind as a plain string.
func (k Kind) String() string {
	return string(k)
}

// ParseKind maps a message type tag to a media kind.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(raw) {
	case KindImage, KindAudio, KindVideo, KindDocument:
		return Kind(raw), true
	default:
		return "", false
	}
}

// Reference identifies an inbound media blob by its short-lived platform id.
type Reference struct {
	Kind             Kind
	ReferenceID      string
	MimeType         string
	DeclaredFilename string
}

// Resolved holds downloaded content. It lives only across the
// resolve -> persist step and is never cached.
type Resolved struct {
	URL   string
	Bytes []byte
}

// PersistInput carries the data needed to store resolved media.
type PersistInput struct {
	Kind             Kind
	ReferenceID      string
	MimeType         string
	DeclaredFilename string
	Bytes            []byte
}

// StoredRecord describes a persisted media file.
type StoredRecord struct {
	Path      string `json:"path"`
	ByteCount int64  `json:"byte_count"`
	Filename  string `json:"filename"`
}

// StorageProvider abstracts the content store.
type StorageProvider interface {
	// Put writes data under key, replacing existing content, and reports
	// the number of bytes written.
	Put(ctx context.Context, key string, reader io.Reader) (int64, error)
	// Open returns a reader for the given storage key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error
	// AccessPath returns a stable locator for a storage key.
	AccessPath(key string) string
}
