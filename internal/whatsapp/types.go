// Package whatsapp talks to the WhatsApp Cloud API: it models the inbound
// webhook payload and implements the outbound Graph API calls.
package whatsapp

import (
	"bytes"
	"encoding/json"
	"slices"
)

// WebhookPayload mirrors the body of a WhatsApp Cloud API webhook callback.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one business account entry within a webhook body.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change wraps the notification value for one subscribed field.
type Change struct {
	Value Value  `json:"value"`
	Field string `json:"field"`
}

// Value carries contacts and messages, or delivery statuses.
type Value struct {
	MessagingProduct string         `json:"messaging_product"`
	Metadata         Metadata       `json:"metadata"`
	Contacts         []Contact      `json:"contacts"`
	Messages         []Message      `json:"messages"`
	Statuses         []Status       `json:"statuses"`
	Errors           []WebhookError `json:"errors"`
}

// Metadata identifies the business phone number that received the event.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Contact is the user who sent the message.
type Contact struct {
	Profile Profile `json:"profile"`
	WaID    string  `json:"wa_id"`
}

// Profile holds the contact's display name.
type Profile struct {
	Name string `json:"name"`
}

// Message is one inbound message. Exactly one of the type-named fields is
// expected to be set, matching Type. A type-named field that does not decode
// is left nil and its name is recorded in Malformed.
type Message struct {
	From        string              `json:"from"`
	ID          string              `json:"id"`
	Timestamp   string              `json:"timestamp"`
	Type        string              `json:"type"`
	Text        *TextContent        `json:"text,omitempty"`
	Image       *MediaContent       `json:"image,omitempty"`
	Audio       *MediaContent       `json:"audio,omitempty"`
	Video       *MediaContent       `json:"video,omitempty"`
	Document    *MediaContent       `json:"document,omitempty"`
	Sticker     *MediaContent       `json:"sticker,omitempty"`
	Location    *LocationContent    `json:"location,omitempty"`
	Interactive *InteractiveContent `json:"interactive,omitempty"`
	Malformed   []string            `json:"-"`
}

// UnmarshalJSON decodes the envelope strictly and each content object on its
// own, so one odd field does not reject the whole webhook.
func (m *Message) UnmarshalJSON(data []byte) error {
	var env struct {
		From        string          `json:"from"`
		ID          string          `json:"id"`
		Timestamp   string          `json:"timestamp"`
		Type        string          `json:"type"`
		Text        json.RawMessage `json:"text"`
		Image       json.RawMessage `json:"image"`
		Audio       json.RawMessage `json:"audio"`
		Video       json.RawMessage `json:"video"`
		Document    json.RawMessage `json:"document"`
		Sticker     json.RawMessage `json:"sticker"`
		Location    json.RawMessage `json:"location"`
		Interactive json.RawMessage `json:"interactive"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	out := Message{
		From:      env.From,
		ID:        env.ID,
		Timestamp: env.Timestamp,
		Type:      env.Type,
	}
	out.Text = decodeContent[TextContent](&out, "text", env.Text)
	out.Image = decodeContent[MediaContent](&out, "image", env.Image)
	out.Audio = decodeContent[MediaContent](&out, "audio", env.Audio)
	out.Video = decodeContent[MediaContent](&out, "video", env.Video)
	out.Document = decodeContent[MediaContent](&out, "document", env.Document)
	out.Sticker = decodeContent[MediaContent](&out, "sticker", env.Sticker)
	out.Location = decodeContent[LocationContent](&out, "location", env.Location)
	out.Interactive = decodeContent[InteractiveContent](&out, "interactive", env.Interactive)
	*m = out
	return nil
}

// IsMalformed reports whether the content object named field failed to decode.
func (m Message) IsMalformed(field string) bool {
	return slices.Contains(m.Malformed, field)
}

func decodeContent[T any](m *Message, field string, raw json.RawMessage) *T {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		m.Malformed = append(m.Malformed, field)
		return nil
	}
	return &v
}

// TextContent is the body of a text message.
type TextContent struct {
	Body string `json:"body"`
}

// MediaContent describes an inbound media attachment.
type MediaContent struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	Sha256   string `json:"sha256"`
	FileSize int64  `json:"file_size,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
	Voice    bool   `json:"voice,omitempty"`
}

// LocationContent is a shared location. Coordinates are pointers so that
// an absent value can be told apart from zero.
type LocationContent struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Name      string   `json:"name,omitempty"`
	Address   string   `json:"address,omitempty"`
	URL       string   `json:"url,omitempty"`
}

// InteractiveContent is a reply to an interactive button or list message.
type InteractiveContent struct {
	Type        string       `json:"type"`
	ButtonReply *ButtonReply `json:"button_reply,omitempty"`
	ListReply   *ListReply   `json:"list_reply,omitempty"`
}

// ButtonReply is a pressed reply button.
type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ListReply is a selected list row.
type ListReply struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Status is a delivery status notification (sent, delivered, read, failed).
type Status struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	RecipientID string `json:"recipient_id"`
}

// WebhookError is an error reported by Meta inside a webhook notification.
type WebhookError struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// MediaObject references media in an outbound message: either a platform
// media id or a public link, never both.
type MediaObject struct {
	ID       string `json:"id,omitempty"`
	Link     string `json:"link,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// SendResponse is the Graph API response to a message send.
type SendResponse struct {
	MessagingProduct string        `json:"messaging_product"`
	Contacts         []SendContact `json:"contacts"`
	Messages         []SentMessage `json:"messages"`
}

// SendContact echoes the resolved recipient.
type SendContact struct {
	Input string `json:"input"`
	WaID  string `json:"wa_id"`
}

// SentMessage carries the id assigned to an outbound message.
type SentMessage struct {
	ID string `json:"id"`
}

// MessageID returns the id of the first sent message, if any.
func (r SendResponse) MessageID() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].ID
}
