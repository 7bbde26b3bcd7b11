package whatsapp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPayload indicates a webhook body that is not a usable message event.
	ErrInvalidPayload = errors.New("invalid whatsapp webhook payload")
	// ErrStatusUpdate indicates a delivery-status notification. It is a valid
	// event that carries no message to handle.
	ErrStatusUpdate = errors.New("whatsapp status update")
	// ErrSendFailed indicates the API rejected an outbound call or it timed out.
	ErrSendFailed = errors.New("whatsapp send failed")
	// ErrInvalidMediaObject indicates an outbound media object without exactly
	// one of id or link.
	ErrInvalidMediaObject = errors.New("media object requires exactly one of id or link")
	// ErrInvalidMediaID indicates a media id that is not a single URL path segment.
	ErrInvalidMediaID = errors.New("invalid media id")
)

// APIError is an error response from the Graph API.
type APIError struct {
	StatusCode int
	Code       int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("graph api status %d", e.StatusCode)
	}
	return fmt.Sprintf("graph api status %d: %s (code %d)", e.StatusCode, e.Message, e.Code)
}
