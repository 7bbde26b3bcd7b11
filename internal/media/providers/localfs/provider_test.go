package localfs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/memohai/wabridge/internal/media"
)

func TestProvider_HostPath(t *testing.T) {
	t.Parallel()
	p := &Provider{dir: "data/media", root: "/srv/data/media"}

	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "media123_image.jpg", want: "/srv/data/media/media123_image.jpg"},
		{key: "doc1_report v2.pdf", want: "/srv/data/media/doc1_report v2.pdf"},
		{key: "/absolute/path", wantErr: true},
		{key: "../escape", wantErr: true},
		{key: "doc1_../../etc/passwd", wantErr: true},
		{key: `doc1_..\win`, wantErr: true},
		{key: "..", wantErr: true},
		{key: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := p.hostPath(tt.key)
		if tt.wantErr {
			if err == nil {
				t.Errorf("hostPath(%q) expected error", tt.key)
			}
			continue
		}
		if err != nil {
			t.Errorf("hostPath(%q) unexpected error: %v", tt.key, err)
			continue
		}
		if got != tt.want {
			t.Errorf("hostPath(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestProvider_AccessPath(t *testing.T) {
	t.Parallel()
	p, err := New("data/media/")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := p.AccessPath("media123_image.jpg"); got != filepath.Join("data", "media", "media123_image.jpg") {
		t.Errorf("AccessPath = %q", got)
	}
	if p.Dir() != filepath.Join("data", "media") {
		t.Errorf("Dir = %q", p.Dir())
	}
}

func TestProvider_PutOpenDelete(t *testing.T) {
	t.Parallel()
	tmpDir := filepath.Join(t.TempDir(), "nested", "media")
	p, err := New(tmpDir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	key := "media123_image.jpg"
	data := []byte("hello media content")

	n, err := p.Put(context.Background(), key, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if n != int64(len(data)) {
		t.Fatalf("Put wrote %d bytes, want %d", n, len(data))
	}
	if _, err := os.Stat(filepath.Join(tmpDir, key)); err != nil {
		t.Fatalf("file not created: %v", err)
	}

	// Second write replaces the content.
	if _, err := p.Put(context.Background(), key, bytes.NewReader([]byte("new"))); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	rc, err := p.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	got, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(got) != "new" {
		t.Fatalf("content = %q, want %q", got, "new")
	}

	if err := p.Delete(context.Background(), key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := p.Delete(context.Background(), key); err != nil {
		t.Fatalf("Delete of missing file failed: %v", err)
	}
	if _, err := p.Open(context.Background(), key); err == nil {
		t.Fatal("expected error after delete")
	}
}

func TestProvider_PutRejectsTraversal(t *testing.T) {
	t.Parallel()
	p, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = p.Put(context.Background(), "x_../../evil", bytes.NewReader([]byte("x")))
	if !errors.Is(err, media.ErrPathTraversal) {
		t.Fatalf("expected ErrPathTraversal, got %v", err)
	}
}

func TestNew_RequiresDir(t *testing.T) {
	t.Parallel()
	if _, err := New("  "); err == nil {
		t.Fatal("expected error for blank dir")
	}
}
