package whatsapp

import (
	"fmt"
	"strings"
)

// Event is one inbound message together with its sender.
type Event struct {
	SenderID      string
	SenderName    string
	PhoneNumberID string
	Message       Message
}

// ExtractEvent pulls the first message out of a webhook payload. Status
// notifications yield ErrStatusUpdate; anything without a sender, message
// id or message type yields ErrInvalidPayload.
func ExtractEvent(p WebhookPayload) (Event, error) {
	if len(p.Entry) > 0 && len(p.Entry[0].Changes) > 0 && len(p.Entry[0].Changes[0].Value.Statuses) > 0 {
		return Event{}, ErrStatusUpdate
	}
	if strings.TrimSpace(p.Object) == "" {
		return Event{}, fmt.Errorf("%w: object is required", ErrInvalidPayload)
	}
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return Event{}, fmt.Errorf("%w: no changes", ErrInvalidPayload)
	}
	value := p.Entry[0].Changes[0].Value
	if len(value.Messages) == 0 {
		return Event{}, fmt.Errorf("%w: no messages", ErrInvalidPayload)
	}
	if len(value.Contacts) == 0 || strings.TrimSpace(value.Contacts[0].WaID) == "" {
		return Event{}, fmt.Errorf("%w: sender is required", ErrInvalidPayload)
	}
	msg := value.Messages[0]
	if strings.TrimSpace(msg.ID) == "" {
		return Event{}, fmt.Errorf("%w: message id is required", ErrInvalidPayload)
	}
	if strings.TrimSpace(msg.Type) == "" {
		return Event{}, fmt.Errorf("%w: message type is required", ErrInvalidPayload)
	}
	return Event{
		SenderID:      value.Contacts[0].WaID,
		SenderName:    value.Contacts[0].Profile.Name,
		PhoneNumberID: value.Metadata.PhoneNumberID,
		Message:       msg,
	}, nil
}
