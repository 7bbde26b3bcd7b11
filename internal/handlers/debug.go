package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memohai/wabridge/internal/healthcheck"
	"github.com/memohai/wabridge/internal/samples"
)

const notSet = "NOT_SET"

// SampleLister reports the samples ready to send.
type SampleLister interface {
	Available() []samples.Info
}

// DebugConfig is the configuration surfaced by /debug. Secrets are
// reported only as set or unset.
type DebugConfig struct {
	PhoneNumberID string
	AppID         string
	APIVersion    string
	AccessToken   string
	VerifyToken   string
	AppSecret     string
}

type DebugSample struct {
	Kind      string `json:"kind"`
	Reference string `json:"reference"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

type DebugResponse struct {
	Status         string                    `json:"status"`
	PhoneNumberID  string                    `json:"phone_number_id"`
	AppID          string                    `json:"app_id"`
	APIVersion     string                    `json:"api_version"`
	AccessTokenSet bool                      `json:"access_token_set"`
	VerifyTokenSet bool                      `json:"verify_token_set"`
	AppSecretSet   bool                      `json:"app_secret_set"`
	Samples        []DebugSample             `json:"samples"`
	Health         string                    `json:"health"`
	Checks         []healthcheck.CheckResult `json:"checks"`
}

type DebugHandler struct {
	cfg      DebugConfig
	samples  SampleLister
	checkers []healthcheck.Checker
	logger   *slog.Logger
}

func NewDebugHandler(log *slog.Logger, cfg DebugConfig, samples SampleLister, checkers ...healthcheck.Checker) *DebugHandler {
	return &DebugHandler{
		cfg:      cfg,
		samples:  samples,
		checkers: checkers,
		logger:   log.With(slog.String("handler", "debug")),
	}
}

func (h *DebugHandler) Register(e *echo.Echo) {
	e.GET("/debug", h.Debug)
}

// Debug godoc
// @Summary Configuration overview
// @Tags health
// @Success 200 {object} DebugResponse
// @Router /debug [get]
func (h *DebugHandler) Debug(c echo.Context) error {
	resp := DebugResponse{
		Status:         "running",
		PhoneNumberID:  orNotSet(h.cfg.PhoneNumberID),
		AppID:          orNotSet(h.cfg.AppID),
		APIVersion:     h.cfg.APIVersion,
		AccessTokenSet: h.cfg.AccessToken != "",
		VerifyTokenSet: h.cfg.VerifyToken != "",
		AppSecretSet:   h.cfg.AppSecret != "",
		Samples:        []DebugSample{},
	}
	if h.samples != nil {
		for _, info := range h.samples.Available() {
			resp.Samples = append(resp.Samples, DebugSample{
				Kind:      info.Kind.String(),
				Reference: info.Reference,
				MimeType:  info.MimeType,
				SizeBytes: info.SizeBytes,
			})
		}
	}
	resp.Checks = healthcheck.Run(c.Request().Context(), h.checkers...)
	resp.Health = healthcheck.Overall(resp.Checks)
	if resp.Health == healthcheck.StatusError {
		h.logger.Warn("runtime checks failing", slog.Int("checks", len(resp.Checks)))
	}
	return c.JSON(http.StatusOK, resp)
}

func orNotSet(v string) string {
	if v == "" {
		return notSet
	}
	return v
}
