package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memohai/wabridge/internal/media"
	"github.com/memohai/wabridge/internal/whatsapp"
)

func decode(t *testing.T, raw string) whatsapp.Message {
	t.Helper()
	var msg whatsapp.Message
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))
	return msg
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want Normalized
	}{
		{
			name: "text",
			raw:  `{"id":"m1","type":"text","text":{"body":"Hello world"}}`,
			want: Text{Body: "Hello world"},
		},
		{
			name: "empty text",
			raw:  `{"id":"m1","type":"text","text":{"body":""}}`,
			want: Text{},
		},
		{
			name: "image",
			raw:  `{"id":"m1","type":"image","image":{"id":"media123","mime_type":"image/jpeg","sha256":"abc","file_size":2048,"caption":"Look"}}`,
			want: Media{MediaKind: media.KindImage, ReferenceID: "media123", MimeType: "image/jpeg", SizeHint: 2048, DigestHint: "abc", Caption: "Look"},
		},
		{
			name: "audio voice note",
			raw:  `{"id":"m1","type":"audio","audio":{"id":"a1","mime_type":"audio/ogg; codecs=opus","voice":true}}`,
			want: Media{MediaKind: media.KindAudio, ReferenceID: "a1", MimeType: "audio/ogg; codecs=opus"},
		},
		{
			name: "video",
			raw:  `{"id":"m1","type":"video","video":{"id":"v1","mime_type":"video/mp4"}}`,
			want: Media{MediaKind: media.KindVideo, ReferenceID: "v1", MimeType: "video/mp4"},
		},
		{
			name: "document keeps filename",
			raw:  `{"id":"m1","type":"document","document":{"id":"d1","mime_type":"application/pdf","filename":"report.pdf"}}`,
			want: Media{MediaKind: media.KindDocument, ReferenceID: "d1", MimeType: "application/pdf", Filename: "report.pdf"},
		},
		{
			name: "image drops filename",
			raw:  `{"id":"m1","type":"image","image":{"id":"i1","filename":"x.jpg"}}`,
			want: Media{MediaKind: media.KindImage, ReferenceID: "i1"},
		},
		{
			name: "media without content",
			raw:  `{"id":"m1","type":"image"}`,
			want: Media{MediaKind: media.KindImage},
		},
		{
			name: "location with all fields",
			raw:  `{"id":"m1","type":"location","location":{"latitude":37.7749,"longitude":-122.4194,"name":"SF","address":"Market St"}}`,
			want: Location{Latitude: 37.7749, Longitude: -122.4194, Name: "SF", Address: "Market St"},
		},
		{
			name: "location coordinates only",
			raw:  `{"id":"m1","type":"location","location":{"latitude":0,"longitude":0}}`,
			want: Location{},
		},
		{
			name: "location missing longitude",
			raw:  `{"id":"m1","type":"location","location":{"latitude":1.5}}`,
			want: Unsupported{RawKind: "location"},
		},
		{
			name: "button reply",
			raw:  `{"id":"m1","type":"interactive","interactive":{"type":"button_reply","button_reply":{"id":"yes","title":"Yes"}}}`,
			want: Interactive{Subtype: "button_reply", ID: "yes", Title: "Yes"},
		},
		{
			name: "list reply",
			raw:  `{"id":"m1","type":"interactive","interactive":{"type":"list_reply","list_reply":{"id":"r1","title":"Row","description":"First row"}}}`,
			want: Interactive{Subtype: "list_reply", ID: "r1", Title: "Row", Description: "First row"},
		},
		{
			name: "other interactive",
			raw:  `{"id":"m1","type":"interactive","interactive":{"type":"nfm_reply"}}`,
			want: Interactive{Subtype: "nfm_reply"},
		},
		{
			name: "sticker",
			raw:  `{"id":"m1","type":"sticker","sticker":{"id":"s1","mime_type":"image/webp"}}`,
			want: Unsupported{RawKind: "sticker"},
		},
		{
			name: "unknown kind",
			raw:  `{"id":"m1","type":"reaction"}`,
			want: Unsupported{RawKind: "reaction"},
		},
		{
			name: "unknown kind keeps raw tag",
			raw:  `{"id":"m1","type":" Reaction "}`,
			want: Unsupported{RawKind: " Reaction "},
		},
		{
			name: "text body of wrong type",
			raw:  `{"id":"m1","type":"text","text":{"body":42}}`,
			want: Unsupported{RawKind: "text"},
		},
		{
			name: "image size hint of wrong type",
			raw:  `{"id":"m1","type":"image","image":{"id":"media123","file_size":"1234"}}`,
			want: Unsupported{RawKind: "image"},
		},
		{
			name: "location coordinate of wrong type",
			raw:  `{"id":"m1","type":"location","location":{"latitude":"37.7","longitude":1}}`,
			want: Unsupported{RawKind: "location"},
		},
		{
			name: "malformed content of another kind is ignored",
			raw:  `{"id":"m1","type":"text","text":{"body":"hi"},"image":[]}`,
			want: Text{Body: "hi"},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			msg := decode(t, tc.raw)
			got := Classify(msg)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.Kind(), got.Kind())
			assert.Equal(t, got, Classify(msg))
		})
	}
}

func TestMediaReference(t *testing.T) {
	t.Parallel()

	m := Media{MediaKind: media.KindDocument, ReferenceID: "d1", MimeType: "application/pdf", Filename: "a.pdf", Caption: "c"}
	assert.Equal(t, media.Reference{
		Kind:             media.KindDocument,
		ReferenceID:      "d1",
		MimeType:         "application/pdf",
		DeclaredFilename: "a.pdf",
	}, m.Reference())
}
