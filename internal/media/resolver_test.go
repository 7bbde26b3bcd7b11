package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	url         string
	data        []byte
	lookupErr   error
	downloadErr error

	lookupCalls   []string
	downloadCalls []string
}

func (f *fakeFetcher) ResolveMediaURL(_ context.Context, referenceID string) (string, error) {
	f.lookupCalls = append(f.lookupCalls, referenceID)
	return f.url, f.lookupErr
}

func (f *fakeFetcher) DownloadMedia(_ context.Context, url string) ([]byte, error) {
	f.downloadCalls = append(f.downloadCalls, url)
	return f.data, f.downloadErr
}

func TestResolver_ResolveSuccess(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{url: "https://cdn/x", data: []byte("fake")}
	r := NewResolver(nil, fetcher)

	got, err := r.Resolve(context.Background(), "media123")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x", got.URL)
	assert.Equal(t, []byte("fake"), got.Bytes)
	assert.Equal(t, []string{"media123"}, fetcher.lookupCalls)
	assert.Equal(t, []string{"https://cdn/x"}, fetcher.downloadCalls)
}

func TestResolver_MissingReferenceMakesNoCalls(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "   "} {
		fetcher := &fakeFetcher{url: "https://cdn/x"}
		r := NewResolver(nil, fetcher)

		_, err := r.Resolve(context.Background(), id)
		require.ErrorIs(t, err, ErrReferenceMissing)
		assert.Empty(t, fetcher.lookupCalls)
		assert.Empty(t, fetcher.downloadCalls)
	}
}

func TestResolver_LookupFailures(t *testing.T) {
	t.Parallel()

	t.Run("lookup error", func(t *testing.T) {
		t.Parallel()
		fetcher := &fakeFetcher{lookupErr: errors.New("status 404")}
		_, err := NewResolver(nil, fetcher).Resolve(context.Background(), "gone")
		require.ErrorIs(t, err, ErrReferenceNotFound)
		assert.Contains(t, err.Error(), "status 404")
		assert.Empty(t, fetcher.downloadCalls)
	})

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		fetcher := &fakeFetcher{}
		_, err := NewResolver(nil, fetcher).Resolve(context.Background(), "no-url")
		require.ErrorIs(t, err, ErrReferenceNotFound)
		assert.Empty(t, fetcher.downloadCalls)
	})
}

func TestResolver_DownloadFailure(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{url: "https://cdn/x", downloadErr: context.DeadlineExceeded}
	_, err := NewResolver(nil, fetcher).Resolve(context.Background(), "media123")
	require.ErrorIs(t, err, ErrDownloadFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, fetcher.lookupCalls, 1)
	assert.Len(t, fetcher.downloadCalls, 1)
}
