package samples

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/memohai/wabridge/internal/media"
)

var (
	ErrUnknownKind     = errors.New("unknown sample kind")
	ErrNotConfigured   = errors.New("sample not configured")
	ErrSourceMissing   = errors.New("sample source missing")
	ErrInvalidCatalog  = errors.New("invalid sample catalog")
	ErrDuplicateSample = errors.New("duplicate sample kind")
)

// Source locates the content of a sample: a LocalFile uploaded before
// sending, or a PublicURL the platform fetches itself.
type Source interface {
	Reference() string
	source()
}

// LocalFile is a sample stored on the local filesystem.
type LocalFile struct {
	Path string
}

// PublicURL is a sample hosted at a publicly reachable http(s) URL.
type PublicURL struct {
	URL string
}

func (s LocalFile) Reference() string { return s.Path }
func (s PublicURL) Reference() string { return s.URL }

func (LocalFile) source() {}
func (PublicURL) source() {}

// Entry is one sample per media kind.
type Entry struct {
	Kind     media.Kind `validate:"required,oneof=image audio video document"`
	Source   Source     `validate:"required"`
	MimeType string     `validate:"required"`
	Caption  string
	Filename string
}

// Catalog maps each media kind to at most one sample.
type Catalog struct {
	entries map[media.Kind]Entry
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewCatalog validates entries and indexes them by kind.
func NewCatalog(entries ...Entry) (Catalog, error) {
	c := Catalog{entries: make(map[media.Kind]Entry, len(entries))}
	for _, e := range entries {
		if err := validate.Struct(e); err != nil {
			return Catalog{}, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, e.Kind, err)
		}
		if _, dup := c.entries[e.Kind]; dup {
			return Catalog{}, fmt.Errorf("%w: %s", ErrDuplicateSample, e.Kind)
		}
		c.entries[e.Kind] = e
	}
	return c, nil
}

// Entry returns the sample for kind.
func (c Catalog) Entry(kind media.Kind) (Entry, bool) {
	e, ok := c.entries[kind]
	return e, ok
}

// Entries returns the configured samples ordered by kind.
func (c Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, k := range media.Kinds {
		if e, ok := c.entries[k]; ok {
			out = append(out, e)
		}
	}
	return out
}

// DefaultCatalog returns the bundled samples stored under dir.
func DefaultCatalog(dir string) Catalog {
	c, err := NewCatalog(
		Entry{
			Kind:     media.KindImage,
			Source:   LocalFile{Path: filepath.Join(dir, "1497313627961580_image.jpg")},
			MimeType: "image/jpeg",
			Caption:  "📸 Here's a sample image from your WhatsApp bot!",
		},
		Entry{
			Kind:     media.KindAudio,
			Source:   LocalFile{Path: filepath.Join(dir, "story.mp3")},
			MimeType: "audio/mpeg",
		},
		Entry{
			Kind:     media.KindVideo,
			Source:   LocalFile{Path: filepath.Join(dir, "2255528285309786_video.mp4")},
			MimeType: "video/mp4",
			Caption:  "🎬 Here's a sample video from your WhatsApp bot!",
		},
		Entry{
			Kind:     media.KindDocument,
			Source:   LocalFile{Path: filepath.Join(dir, "698555082545397_airbnb-faq.pdf")},
			MimeType: "application/pdf",
			Caption:  "📄 Here's a sample document from your WhatsApp bot!",
			Filename: "airbnb-faq.pdf",
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

type catalogFile struct {
	Samples []fileEntry `yaml:"samples" validate:"dive"`
}

type fileEntry struct {
	Kind     string `yaml:"kind" validate:"required,oneof=image audio video document"`
	Path     string `yaml:"path" validate:"required_without=URL,excluded_with=URL"`
	URL      string `yaml:"url" validate:"required_without=Path,excluded_with=Path"`
	MimeType string `yaml:"mime_type"`
	Caption  string `yaml:"caption"`
	Filename string `yaml:"filename"`
}

// LoadCatalog reads a YAML catalog:
//
//	samples:
//	  - kind: image
//	    url: https://example.com/sample.jpg
//	    mime_type: image/jpeg
//	    caption: Here's a sample image
//
// Local entries without mime_type get one sniffed from the file content.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read sample catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes YAML catalog content.
func ParseCatalog(raw []byte) (Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Catalog{}, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if err := validate.Struct(file); err != nil {
		return Catalog{}, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	entries := make([]Entry, 0, len(file.Samples))
	for _, fe := range file.Samples {
		e := Entry{
			Kind:     media.Kind(strings.TrimSpace(fe.Kind)),
			MimeType: strings.TrimSpace(fe.MimeType),
			Caption:  fe.Caption,
			Filename: strings.TrimSpace(fe.Filename),
		}
		if fe.Path != "" {
			e.Source = LocalFile{Path: fe.Path}
			if e.MimeType == "" {
				e.MimeType = detectMime(fe.Path)
			}
		} else {
			e.Source = PublicURL{URL: fe.URL}
		}
		entries = append(entries, e)
	}
	return NewCatalog(entries...)
}

func detectMime(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	mime, _, _ := strings.Cut(mt.String(), ";")
	return mime
}
