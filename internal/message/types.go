package message

import "github.com/memohai/wabridge/internal/media"

// Kind names the normalized shape of an inbound message.
type Kind string

const (
	KindText        Kind = "text"
	KindMedia       Kind = "media"
	KindLocation    Kind = "location"
	KindInteractive Kind = "interactive"
	KindUnsupported Kind = "unsupported"
)

// Normalized is the classified content of one inbound message. The concrete
// type is one of Text, Media, Location, Interactive or Unsupported.
type Normalized interface {
	Kind() Kind
	normalized()
}

// Text is a plain text message. An empty body is valid.
type Text struct {
	Body string
}

// Media is an image, audio clip, video or document referenced by a platform
// media id. Size and digest are advisory values reported by the sender.
type Media struct {
	MediaKind   media.Kind
	ReferenceID string
	MimeType    string
	SizeHint    int64
	DigestHint  string
	Caption     string
	Filename    string
}

// Location is a shared map position. Name and Address are empty when absent.
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
	Address   string
}

// Interactive is a reply to a button or list message. Description is only
// set for list replies.
type Interactive struct {
	Subtype     string
	ID          string
	Title       string
	Description string
}

// Unsupported carries the raw kind of a message the bridge does not handle.
type Unsupported struct {
	RawKind string
}

func (Text) Kind() Kind        { return KindText }
func (Media) Kind() Kind       { return KindMedia }
func (Location) Kind() Kind    { return KindLocation }
func (Interactive) Kind() Kind { return KindInteractive }
func (Unsupported) Kind() Kind { return KindUnsupported }

func (Text) normalized()        {}
func (Media) normalized()       {}
func (Location) normalized()    {}
func (Interactive) normalized() {}
func (Unsupported) normalized() {}

// Reference returns what the media resolver and persistor need.
func (m Media) Reference() media.Reference {
	return media.Reference{
		Kind:             m.MediaKind,
		ReferenceID:      m.ReferenceID,
		MimeType:         m.MimeType,
		DeclaredFilename: m.Filename,
	}
}
