package sampleschecker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memohai/wabridge/internal/healthcheck"
	"github.com/memohai/wabridge/internal/media"
	"github.com/memohai/wabridge/internal/samples"
)

type infoMap map[media.Kind]samples.Info

func (m infoMap) Info(kind media.Kind) (samples.Info, bool) {
	info, ok := m[kind]
	return info, ok
}

func TestListChecks(t *testing.T) {
	t.Parallel()

	c := NewChecker(nil, infoMap{
		media.KindImage: {Kind: media.KindImage, Reference: "a.jpg", Local: true, Exists: true, SizeBytes: 3, MimeType: "image/jpeg"},
		media.KindAudio: {Kind: media.KindAudio, Reference: "missing.mp3", Local: true},
		media.KindVideo: {Kind: media.KindVideo, Reference: "https://x/v.mp4", Exists: true, MimeType: "video/mp4"},
	})

	checks := c.ListChecks(context.Background())
	require.Len(t, checks, 4)

	statuses := map[string]string{}
	for _, ch := range checks {
		statuses[ch.ID] = ch.Status
	}
	assert.Equal(t, map[string]string{
		"samples.source.image":    healthcheck.StatusOK,
		"samples.source.audio":    healthcheck.StatusError,
		"samples.source.video":    healthcheck.StatusOK,
		"samples.source.document": healthcheck.StatusWarn,
	}, statuses)
	assert.Equal(t, int64(3), checks[0].Metadata["size_bytes"])
	assert.NotContains(t, checks[2].Metadata, "size_bytes")
	assert.Equal(t, "missing.mp3", checks[1].Detail)
}

func TestListChecks_NoSource(t *testing.T) {
	t.Parallel()

	checks := NewChecker(nil, nil).ListChecks(context.Background())
	require.Len(t, checks, 1)
	assert.Equal(t, healthcheck.StatusWarn, checks[0].Status)
}
