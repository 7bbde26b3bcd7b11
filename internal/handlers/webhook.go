package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/memohai/wabridge/internal/prune"
	"github.com/memohai/wabridge/internal/whatsapp"
)

// MaxWebhookBody bounds inbound webhook bodies.
const MaxWebhookBody = "1M"

// Dispatcher handles one extracted inbound message.
type Dispatcher interface {
	Handle(ctx context.Context, ev whatsapp.Event)
}

// WebhookConfig holds the secrets shared with Meta.
type WebhookConfig struct {
	VerifyToken string
	AppSecret   string
}

// WebhookHandler serves the WhatsApp Cloud API webhook.
type WebhookHandler struct {
	cfg        WebhookConfig
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewWebhookHandler(log *slog.Logger, cfg WebhookConfig, dispatcher Dispatcher) *WebhookHandler {
	h := &WebhookHandler{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     log.With(slog.String("handler", "webhook")),
	}
	if cfg.AppSecret == "" {
		h.logger.Warn("app secret not configured, webhook signatures are not verified")
	}
	return h
}

func (h *WebhookHandler) Register(e *echo.Echo) {
	e.GET("/webhook", h.Verify)
	e.POST("/webhook", h.Receive, middleware.BodyLimit(MaxWebhookBody), h.requireSignature)
}

// Verify godoc
// @Summary Webhook subscription handshake
// @Tags webhook
// @Param hub.mode query string true "subscribe"
// @Param hub.verify_token query string true "Verify token"
// @Param hub.challenge query string true "Challenge echoed back"
// @Success 200 {string} string
// @Failure 400 {object} StatusResponse
// @Failure 403 {object} StatusResponse
// @Router /webhook [get]
func (h *WebhookHandler) Verify(c echo.Context) error {
	mode := c.QueryParam("hub.mode")
	token := c.QueryParam("hub.verify_token")
	challenge := c.QueryParam("hub.challenge")

	if mode == "" || token == "" {
		h.logger.Warn("webhook verification missing parameters")
		return c.JSON(http.StatusBadRequest, errorResponse("Missing parameters"))
	}
	if mode != "subscribe" || h.cfg.VerifyToken == "" || token != h.cfg.VerifyToken {
		h.logger.Warn("webhook verification failed", slog.String("mode", mode))
		return c.JSON(http.StatusForbidden, errorResponse("Verification failed"))
	}
	h.logger.Info("webhook verified")
	return c.String(http.StatusOK, challenge)
}

// Receive godoc
// @Summary Inbound WhatsApp notifications
// @Tags webhook
// @Success 200 {object} StatusResponse
// @Failure 400 {object} StatusResponse
// @Failure 403 {object} StatusResponse
// @Failure 404 {object} StatusResponse
// @Router /webhook [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	h.logger.Debug("webhook received", slog.String("body", prune.Bytes(body, prune.DefaultLogBytes)))
	ev, err := decodeEvent(body)
	switch {
	case errors.Is(err, errBodyNotJSON):
		h.logger.Warn("webhook body is not json", slog.Any("error", err))
		return c.JSON(http.StatusBadRequest, errorResponse("Invalid JSON provided"))
	case errors.Is(err, whatsapp.ErrStatusUpdate):
		h.logger.Debug("status update received")
		return c.JSON(http.StatusOK, okResponse())
	case err != nil:
		h.logger.Warn("not a whatsapp message event", slog.Any("error", err))
		return c.JSON(http.StatusNotFound, errorResponse("Not a WhatsApp API event"))
	}

	// Replies continue even if Meta drops the connection.
	h.dispatcher.Handle(context.WithoutCancel(c.Request().Context()), ev)
	return c.JSON(http.StatusOK, okResponse())
}

var errBodyNotJSON = errors.New("webhook body is not json")

// decodeEvent parses a webhook body. Well-formed JSON whose fields have
// unexpected types is an invalid payload, not a JSON error.
func decodeEvent(body []byte) (whatsapp.Event, error) {
	var payload whatsapp.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return whatsapp.Event{}, fmt.Errorf("%w: %w", whatsapp.ErrInvalidPayload, err)
		}
		return whatsapp.Event{}, fmt.Errorf("%w: %w", errBodyNotJSON, err)
	}
	return whatsapp.ExtractEvent(payload)
}

// requireSignature checks X-Hub-Signature-256 against the app secret and
// restores the body for the next handler. Without a secret it passes through.
func (h *WebhookHandler) requireSignature(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.cfg.AppSecret == "" {
			return next(c)
		}
		req := c.Request()
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return err
		}
		if !whatsapp.VerifySignature(body, h.cfg.AppSecret, req.Header.Get(whatsapp.SignatureHeader)) {
			h.logger.Warn("webhook signature verification failed", slog.String("remote_ip", c.RealIP()))
			return c.JSON(http.StatusForbidden, errorResponse("Invalid signature"))
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		return next(c)
	}
}
