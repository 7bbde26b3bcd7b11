package media

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Cloud API size caps per media kind.
const (
	MaxImageBytes    int64 = 5 << 20
	MaxAudioBytes    int64 = 16 << 20
	MaxVideoBytes    int64 = 16 << 20
	MaxDocumentBytes int64 = 100 << 20

	// MaxAssetBytes bounds a download whose kind is not known yet.
	MaxAssetBytes = MaxDocumentBytes
)

// MaxBytes returns the size cap for kind.
func MaxBytes(kind Kind) int64 {
	switch kind {
	case KindImage:
		return MaxImageBytes
	case KindAudio:
		return MaxAudioBytes
	case KindVideo:
		return MaxVideoBytes
	default:
		return MaxAssetBytes
	}
}

// ReadBounded reads reader up to maxBytes. A declared length above maxBytes
// fails before anything is read; pass -1 when the length is unknown.
func ReadBounded(reader io.Reader, declared, maxBytes int64) ([]byte, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max bytes must be greater than 0")
	}
	if declared > maxBytes {
		return nil, tooLarge(maxBytes)
	}
	data, err := io.ReadAll(io.LimitReader(reader, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, tooLarge(maxBytes)
	}
	return data, nil
}

func tooLarge(maxBytes int64) error {
	return fmt.Errorf("%w: limit is %s", ErrAssetTooLarge, humanize.IBytes(uint64(maxBytes)))
}
