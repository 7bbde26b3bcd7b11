package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/memohai/wabridge/internal/media"
)

const (
	DefaultBaseURL         = "https://graph.facebook.com"
	DefaultAPIVersion      = "v21.0"
	DefaultMetadataTimeout = 10 * time.Second
	DefaultDownloadTimeout = 30 * time.Second
	DefaultSendTimeout     = 10 * time.Second
	DefaultUploadTimeout   = 30 * time.Second

	messagingProduct = "whatsapp"
)

// Config holds the credentials and endpoint settings of the Cloud API.
// Metadata lookups are small and get a short timeout; content transfers
// get a longer one.
type Config struct {
	BaseURL          string
	APIVersion       string
	AccessToken      string
	PhoneNumberID    string
	MetadataTimeout  time.Duration
	DownloadTimeout  time.Duration
	SendTimeout      time.Duration
	UploadTimeout    time.Duration
	MaxDownloadBytes int64
}

func (c Config) normalized() Config {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.APIVersion = strings.Trim(strings.TrimSpace(c.APIVersion), "/")
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.MetadataTimeout <= 0 {
		c.MetadataTimeout = DefaultMetadataTimeout
	}
	if c.DownloadTimeout <= 0 {
		c.DownloadTimeout = DefaultDownloadTimeout
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = DefaultSendTimeout
	}
	if c.UploadTimeout <= 0 {
		c.UploadTimeout = DefaultUploadTimeout
	}
	if c.MaxDownloadBytes <= 0 {
		c.MaxDownloadBytes = media.MaxAssetBytes
	}
	return c
}

// Client calls the WhatsApp Cloud API on behalf of one business phone number.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a client. A nil httpClient uses a default client;
// per-call timeouts come from cfg.
func NewClient(log *slog.Logger, cfg Config, httpClient *http.Client) *Client {
	if log == nil {
		log = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		cfg:    cfg.normalized(),
		http:   httpClient,
		logger: log.With(slog.String("service", "whatsapp")),
	}
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// SendText sends a plain text message.
func (c *Client) SendText(ctx context.Context, to, body string) (SendResponse, error) {
	return c.sendMessage(ctx, to, "text", map[string]any{
		"preview_url": false,
		"body":        body,
	}, map[string]any{"recipient_type": "individual"})
}

// SendImage sends an image by id or link, with an optional caption.
func (c *Client) SendImage(ctx context.Context, to string, obj MediaObject) (SendResponse, error) {
	obj.Filename = ""
	return c.sendMedia(ctx, to, "image", obj)
}

// SendAudio sends an audio clip by id or link. Audio messages have no caption.
func (c *Client) SendAudio(ctx context.Context, to string, obj MediaObject) (SendResponse, error) {
	obj.Caption = ""
	obj.Filename = ""
	return c.sendMedia(ctx, to, "audio", obj)
}

// SendVideo sends a video by id or link, with an optional caption.
func (c *Client) SendVideo(ctx context.Context, to string, obj MediaObject) (SendResponse, error) {
	obj.Filename = ""
	return c.sendMedia(ctx, to, "video", obj)
}

// SendDocument sends a document by id or link, with optional filename and caption.
func (c *Client) SendDocument(ctx context.Context, to string, obj MediaObject) (SendResponse, error) {
	return c.sendMedia(ctx, to, "document", obj)
}

// MarkAsRead marks an inbound message as read.
func (c *Client) MarkAsRead(ctx context.Context, messageID string) error {
	if strings.TrimSpace(messageID) == "" {
		return fmt.Errorf("%w: message id is required", ErrSendFailed)
	}
	payload := map[string]any{
		"messaging_product": messagingProduct,
		"status":            "read",
		"message_id":        messageID,
	}
	if err := c.postJSON(ctx, c.cfg.SendTimeout, c.apiURL(c.cfg.PhoneNumberID, "messages"), payload, nil); err != nil {
		return fmt.Errorf("%w: mark as read: %w", ErrSendFailed, err)
	}
	return nil
}

// UploadMedia uploads content and returns the platform media id usable in
// the Send* methods.
func (c *Client) UploadMedia(ctx context.Context, reader io.Reader, filename, mimeType string) (string, error) {
	if reader == nil {
		return "", fmt.Errorf("reader is required")
	}
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("messaging_product", messagingProduct); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := form.WriteField("type", mimeType); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", mimeType)
	part, err := form.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, reader); err != nil {
		return "", fmt.Errorf("read upload content: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.UploadTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL(c.cfg.PhoneNumberID, "media"), &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	if strings.TrimSpace(out.ID) == "" {
		return "", fmt.Errorf("upload media: response has no id")
	}
	return out.ID, nil
}

// ResolveMediaURL exchanges a media id for its short-lived download URL.
// The id must be a single path segment.
func (c *Client) ResolveMediaURL(ctx context.Context, referenceID string) (string, error) {
	if err := validateMediaID(referenceID); err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.MetadataTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL(url.PathEscape(referenceID)), nil)
	if err != nil {
		return "", fmt.Errorf("build media lookup request: %w", err)
	}
	var out struct {
		URL      string `json:"url"`
		MimeType string `json:"mime_type"`
		FileSize int64  `json:"file_size"`
	}
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("media lookup: %w", err)
	}
	return out.URL, nil
}

// DownloadMedia downloads the content behind a URL returned by ResolveMediaURL.
func (c *Client) DownloadMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.DownloadTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download media: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("download media status: %d", resp.StatusCode)
	}
	data, err := media.ReadBounded(resp.Body, resp.ContentLength, c.cfg.MaxDownloadBytes)
	if err != nil {
		return nil, fmt.Errorf("read media body: %w", err)
	}
	return data, nil
}

func (c *Client) sendMedia(ctx context.Context, to, kind string, obj MediaObject) (SendResponse, error) {
	hasID := strings.TrimSpace(obj.ID) != ""
	hasLink := strings.TrimSpace(obj.Link) != ""
	if hasID == hasLink {
		return SendResponse{}, ErrInvalidMediaObject
	}
	return c.sendMessage(ctx, to, kind, obj, nil)
}

func (c *Client) sendMessage(ctx context.Context, to, kind string, content any, extra map[string]any) (SendResponse, error) {
	if strings.TrimSpace(to) == "" {
		return SendResponse{}, fmt.Errorf("%w: recipient is required", ErrSendFailed)
	}
	payload := map[string]any{
		"messaging_product": messagingProduct,
		"to":                to,
		"type":              kind,
		kind:                content,
	}
	for k, v := range extra {
		payload[k] = v
	}
	var out SendResponse
	if err := c.postJSON(ctx, c.cfg.SendTimeout, c.apiURL(c.cfg.PhoneNumberID, "messages"), payload, &out); err != nil {
		return SendResponse{}, fmt.Errorf("%w: send %s: %w", ErrSendFailed, kind, err)
	}
	c.logger.Debug("message sent",
		slog.String("type", kind),
		slog.String("to", to),
		slog.String("message_id", out.MessageID()),
	)
	return out, nil
}

func (c *Client) postJSON(ctx context.Context, timeout time.Duration, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do sends an authorized request and decodes a JSON response into out.
// Non-2xx responses become *APIError.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status}
	var body struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Error.Message
		apiErr.Type = body.Error.Type
		apiErr.Code = body.Error.Code
	}
	return apiErr
}

func validateMediaID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("%w: empty", ErrInvalidMediaID)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidMediaID, id)
	case strings.ContainsAny(id, "/\\?#%"):
		return fmt.Errorf("%w: %q", ErrInvalidMediaID, id)
	}
	return nil
}

func (c *Client) apiURL(parts ...string) string {
	return c.cfg.BaseURL + "/" + c.cfg.APIVersion + "/" + strings.Join(parts, "/")
}
