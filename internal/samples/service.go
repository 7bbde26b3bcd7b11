package samples

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/memohai/wabridge/internal/media"
	"github.com/memohai/wabridge/internal/whatsapp"
)

// Sender is the slice of the WhatsApp client the sample flow needs.
type Sender interface {
	UploadMedia(ctx context.Context, reader io.Reader, filename, mimeType string) (string, error)
	SendImage(ctx context.Context, to string, obj whatsapp.MediaObject) (whatsapp.SendResponse, error)
	SendAudio(ctx context.Context, to string, obj whatsapp.MediaObject) (whatsapp.SendResponse, error)
	SendVideo(ctx context.Context, to string, obj whatsapp.MediaObject) (whatsapp.SendResponse, error)
	SendDocument(ctx context.Context, to string, obj whatsapp.MediaObject) (whatsapp.SendResponse, error)
}

// Result reports the outcome of one sample send. A failure carries a
// human-readable Error and no Response.
type Result struct {
	Kind      string
	Reference string
	Response  *whatsapp.SendResponse
	Error     string
}

// Success reports whether the sample was accepted by the platform.
func (r Result) Success() bool {
	return r.Error == ""
}

// Info describes a configured sample and whether its source is usable.
type Info struct {
	Kind      media.Kind
	Reference string
	Local     bool
	MimeType  string
	Caption   string
	Filename  string
	Exists    bool
	SizeBytes int64
}

// Service sends catalog samples to users.
type Service struct {
	catalog Catalog
	sender  Sender
	logger  *slog.Logger
}

// NewService creates a sample service over catalog.
func NewService(log *slog.Logger, catalog Catalog, sender Sender) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		catalog: catalog,
		sender:  sender,
		logger:  log.With(slog.String("service", "samples")),
	}
}

// Send delivers the sample of kind to recipient. Failures are reported in
// the result, never as an error.
func (s *Service) Send(ctx context.Context, kind, to string) Result {
	res := Result{Kind: kind}
	k, ok := media.ParseKind(kind)
	if !ok {
		res.Error = fmt.Sprintf("%s: %s", ErrUnknownKind, kind)
		return res
	}
	entry, ok := s.catalog.Entry(k)
	if !ok {
		res.Error = fmt.Sprintf("%s: %s", ErrNotConfigured, kind)
		return res
	}
	res.Reference = entry.Source.Reference()

	obj, err := s.mediaObject(ctx, entry)
	if err != nil {
		s.logger.Warn("sample prepare failed", slog.String("kind", kind), slog.Any("error", err))
		res.Error = err.Error()
		return res
	}
	obj.Caption = entry.Caption
	if k == media.KindDocument {
		obj.Filename = documentFilename(entry)
	}

	var resp whatsapp.SendResponse
	switch k {
	case media.KindImage:
		resp, err = s.sender.SendImage(ctx, to, obj)
	case media.KindAudio:
		resp, err = s.sender.SendAudio(ctx, to, obj)
	case media.KindVideo:
		resp, err = s.sender.SendVideo(ctx, to, obj)
	case media.KindDocument:
		resp, err = s.sender.SendDocument(ctx, to, obj)
	}
	if err != nil {
		s.logger.Warn("sample send failed", slog.String("kind", kind), slog.Any("error", err))
		res.Error = err.Error()
		return res
	}
	res.Response = &resp
	s.logger.Info("sample sent",
		slog.String("kind", kind),
		slog.String("reference", res.Reference),
		slog.String("message_id", resp.MessageID()),
	)
	return res
}

func (s *Service) mediaObject(ctx context.Context, entry Entry) (whatsapp.MediaObject, error) {
	switch src := entry.Source.(type) {
	case PublicURL:
		return whatsapp.MediaObject{Link: src.URL}, nil
	case LocalFile:
		f, err := os.Open(src.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return whatsapp.MediaObject{}, fmt.Errorf("%w: sample %s file not found", ErrSourceMissing, entry.Kind)
			}
			return whatsapp.MediaObject{}, fmt.Errorf("open sample %s: %w", entry.Kind, err)
		}
		defer func() {
			_ = f.Close()
		}()
		name := entry.Filename
		if name == "" {
			name = filepath.Base(src.Path)
		}
		id, err := s.sender.UploadMedia(ctx, f, name, entry.MimeType)
		if err != nil {
			return whatsapp.MediaObject{}, fmt.Errorf("upload sample %s: %w", entry.Kind, err)
		}
		return whatsapp.MediaObject{ID: id}, nil
	default:
		return whatsapp.MediaObject{}, fmt.Errorf("%w: %s", ErrSourceMissing, entry.Kind)
	}
}

func documentFilename(entry Entry) string {
	if entry.Filename != "" {
		return entry.Filename
	}
	if src, ok := entry.Source.(LocalFile); ok {
		return filepath.Base(src.Path)
	}
	return ""
}

// Info describes the sample configured for kind.
func (s *Service) Info(kind media.Kind) (Info, bool) {
	entry, ok := s.catalog.Entry(kind)
	if !ok {
		return Info{}, false
	}
	return newInfo(entry), true
}

// Available lists the samples whose source currently exists.
func (s *Service) Available() []Info {
	var out []Info
	for _, e := range s.catalog.Entries() {
		if info := newInfo(e); info.Exists {
			out = append(out, info)
		}
	}
	return out
}

// Validate checks every kind has a usable sample. Local files must be
// readable; public URLs must be absolute http(s) URLs.
func (s *Service) Validate() error {
	var errs []error
	for _, k := range media.Kinds {
		entry, ok := s.catalog.Entry(k)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNotConfigured, k))
			continue
		}
		if err := checkSource(entry.Source); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

func checkSource(src Source) error {
	switch s := src.(type) {
	case LocalFile:
		f, err := os.Open(s.Path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSourceMissing, err)
		}
		return f.Close()
	case PublicURL:
		u, err := url.Parse(s.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: not an absolute http(s) url: %q", ErrSourceMissing, s.URL)
		}
		return nil
	default:
		return ErrSourceMissing
	}
}

func newInfo(e Entry) Info {
	info := Info{
		Kind:      e.Kind,
		Reference: e.Source.Reference(),
		MimeType:  e.MimeType,
		Caption:   e.Caption,
		Filename:  e.Filename,
	}
	switch src := e.Source.(type) {
	case LocalFile:
		info.Local = true
		if st, err := os.Stat(src.Path); err == nil && st.Mode().IsRegular() {
			info.Exists = true
			info.SizeBytes = st.Size()
			if info.MimeType == "" {
				info.MimeType = detectMime(src.Path)
			}
		}
	case PublicURL:
		info.Exists = checkSource(src) == nil
	}
	return info
}
