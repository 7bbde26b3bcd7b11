package samples

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memohai/wabridge/internal/media"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog("data/media")
	entries := c.Entries()
	require.Len(t, entries, 4)
	for i, k := range media.Kinds {
		assert.Equal(t, k, entries[i].Kind)
		assert.IsType(t, LocalFile{}, entries[i].Source)
	}

	doc, ok := c.Entry(media.KindDocument)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("data/media", "698555082545397_airbnb-faq.pdf"), doc.Source.Reference())
	assert.Equal(t, "airbnb-faq.pdf", doc.Filename)

	audio, _ := c.Entry(media.KindAudio)
	assert.Empty(t, audio.Caption)
	assert.Equal(t, "audio/mpeg", audio.MimeType)
}

func TestNewCatalog_Rejects(t *testing.T) {
	t.Parallel()

	_, err := NewCatalog(Entry{Kind: "sticker", Source: PublicURL{URL: "https://x"}, MimeType: "image/webp"})
	require.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = NewCatalog(Entry{Kind: media.KindImage, MimeType: "image/jpeg"})
	require.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = NewCatalog(Entry{Kind: media.KindImage, Source: PublicURL{URL: "https://x"}})
	require.ErrorIs(t, err, ErrInvalidCatalog)

	img := Entry{Kind: media.KindImage, Source: PublicURL{URL: "https://x"}, MimeType: "image/jpeg"}
	_, err = NewCatalog(img, img)
	require.ErrorIs(t, err, ErrDuplicateSample)
}

func TestParseCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdf := filepath.Join(dir, "faq.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4\n%fake\n"), 0o644))

	raw := []byte(`
samples:
  - kind: image
    url: https://cdn.example.com/cat.jpg
    mime_type: image/jpeg
    caption: A cat
  - kind: document
    path: ` + pdf + `
    filename: faq.pdf
`)
	c, err := ParseCatalog(raw)
	require.NoError(t, err)
	require.Len(t, c.Entries(), 2)

	img, ok := c.Entry(media.KindImage)
	require.True(t, ok)
	assert.Equal(t, PublicURL{URL: "https://cdn.example.com/cat.jpg"}, img.Source)
	assert.Equal(t, "A cat", img.Caption)

	doc, ok := c.Entry(media.KindDocument)
	require.True(t, ok)
	assert.Equal(t, LocalFile{Path: pdf}, doc.Source)
	assert.Equal(t, "application/pdf", doc.MimeType)
}

func TestParseCatalog_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"both sources": "samples:\n  - kind: image\n    path: a.jpg\n    url: https://x/a.jpg\n    mime_type: image/jpeg\n",
		"no source":    "samples:\n  - kind: image\n    mime_type: image/jpeg\n",
		"bad kind":     "samples:\n  - kind: gif\n    url: https://x/a.gif\n    mime_type: image/gif\n",
		"url no mime":  "samples:\n  - kind: image\n    url: https://x/a.jpg\n",
		"not yaml":     "samples: [",
	}
	for name, raw := range cases {
		_, err := ParseCatalog([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidCatalog, name)
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
