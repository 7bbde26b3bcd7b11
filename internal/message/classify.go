package message

import (
	"strings"

	"github.com/memohai/wabridge/internal/media"
	"github.com/memohai/wabridge/internal/whatsapp"
)

const (
	interactiveButtonReply = "button_reply"
	interactiveListReply   = "list_reply"
)

// Classify maps a raw inbound message onto exactly one normalized variant.
// It never fails: anything it cannot interpret, including content that did
// not decode, becomes Unsupported carrying the tag as received.
func Classify(msg whatsapp.Message) Normalized {
	kind := strings.TrimSpace(msg.Type)
	if msg.IsMalformed(kind) {
		return Unsupported{RawKind: msg.Type}
	}
	switch kind {
	case "text":
		if msg.Text == nil {
			return Text{}
		}
		return Text{Body: msg.Text.Body}
	case "image":
		return classifyMedia(media.KindImage, msg.Image)
	case "audio":
		return classifyMedia(media.KindAudio, msg.Audio)
	case "video":
		return classifyMedia(media.KindVideo, msg.Video)
	case "document":
		return classifyMedia(media.KindDocument, msg.Document)
	case "location":
		return classifyLocation(msg.Location)
	case "interactive":
		return classifyInteractive(msg.Interactive)
	default:
		return Unsupported{RawKind: msg.Type}
	}
}

func classifyMedia(kind media.Kind, content *whatsapp.MediaContent) Media {
	out := Media{MediaKind: kind}
	if content == nil {
		return out
	}
	out.ReferenceID = strings.TrimSpace(content.ID)
	out.MimeType = strings.TrimSpace(content.MimeType)
	out.SizeHint = content.FileSize
	out.DigestHint = content.Sha256
	out.Caption = content.Caption
	if kind == media.KindDocument {
		out.Filename = strings.TrimSpace(content.Filename)
	}
	return out
}

func classifyLocation(content *whatsapp.LocationContent) Normalized {
	if content == nil || content.Latitude == nil || content.Longitude == nil {
		return Unsupported{RawKind: "location"}
	}
	return Location{
		Latitude:  *content.Latitude,
		Longitude: *content.Longitude,
		Name:      content.Name,
		Address:   content.Address,
	}
}

func classifyInteractive(content *whatsapp.InteractiveContent) Interactive {
	if content == nil {
		return Interactive{}
	}
	out := Interactive{Subtype: strings.TrimSpace(content.Type)}
	switch out.Subtype {
	case interactiveButtonReply:
		if content.ButtonReply != nil {
			out.ID = content.ButtonReply.ID
			out.Title = content.ButtonReply.Title
		}
	case interactiveListReply:
		if content.ListReply != nil {
			out.ID = content.ListReply.ID
			out.Title = content.ListReply.Title
			out.Description = content.ListReply.Description
		}
	}
	return out
}
