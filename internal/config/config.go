package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultConfigPath             = "config.toml"
	DefaultEnvPath                = ".env"
	DefaultHTTPAddr               = ":8000"
	DefaultGraphBaseURL           = "https://graph.facebook.com"
	DefaultGraphAPIVersion        = "v21.0"
	DefaultMediaDir               = "data/media"
	DefaultMetadataTimeoutSeconds = 10
	DefaultDownloadTimeoutSeconds = 30
	DefaultSendTimeoutSeconds     = 10
	DefaultUploadTimeoutSeconds   = 30
)

type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	WhatsApp WhatsAppConfig `toml:"whatsapp"`
	Media    MediaConfig    `toml:"media"`
	Samples  SamplesConfig  `toml:"samples"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `toml:"format" validate:"omitempty,oneof=text json"`
}

type ServerConfig struct {
	Addr string `toml:"addr" validate:"required"`
}

type WhatsAppConfig struct {
	AccessToken            string `toml:"access_token" validate:"required"`
	PhoneNumberID          string `toml:"phone_number_id" validate:"required"`
	APIVersion             string `toml:"api_version" validate:"required"`
	BaseURL                string `toml:"base_url" validate:"required,http_url"`
	VerifyToken            string `toml:"verify_token" validate:"required"`
	AppSecret              string `toml:"app_secret"`
	AppID                  string `toml:"app_id"`
	MetadataTimeoutSeconds int    `toml:"metadata_timeout_seconds" validate:"gte=0"`
	DownloadTimeoutSeconds int    `toml:"download_timeout_seconds" validate:"gte=0"`
	SendTimeoutSeconds     int    `toml:"send_timeout_seconds" validate:"gte=0"`
	UploadTimeoutSeconds   int    `toml:"upload_timeout_seconds" validate:"gte=0"`
}

func (c WhatsAppConfig) MetadataTimeout() time.Duration {
	return time.Duration(c.MetadataTimeoutSeconds) * time.Second
}

func (c WhatsAppConfig) DownloadTimeout() time.Duration {
	return time.Duration(c.DownloadTimeoutSeconds) * time.Second
}

func (c WhatsAppConfig) SendTimeout() time.Duration {
	return time.Duration(c.SendTimeoutSeconds) * time.Second
}

func (c WhatsAppConfig) UploadTimeout() time.Duration {
	return time.Duration(c.UploadTimeoutSeconds) * time.Second
}

type MediaConfig struct {
	Dir string `toml:"dir" validate:"required"`
}

// SamplesConfig locates the sample media sent by the "send <kind>" commands.
// CatalogPath, when set, names a YAML catalog replacing the bundled one in Dir.
type SamplesConfig struct {
	Dir         string `toml:"dir" validate:"required"`
	CatalogPath string `toml:"catalog_path"`
}

// envOverrides maps environment variables onto config fields. The names
// match the variables of existing deployments.
var envOverrides = []struct {
	name  string
	apply func(*Config, string)
}{
	{"ACCESS_TOKEN", func(c *Config, v string) { c.WhatsApp.AccessToken = v }},
	{"PHONE_NUMBER_ID", func(c *Config, v string) { c.WhatsApp.PhoneNumberID = v }},
	{"VERSION", func(c *Config, v string) { c.WhatsApp.APIVersion = v }},
	{"VERIFY_TOKEN", func(c *Config, v string) { c.WhatsApp.VerifyToken = v }},
	{"APP_SECRET", func(c *Config, v string) { c.WhatsApp.AppSecret = v }},
	{"APP_ID", func(c *Config, v string) { c.WhatsApp.AppID = v }},
	{"PORT", func(c *Config, v string) { c.Server.Addr = ":" + strings.TrimPrefix(v, ":") }},
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		WhatsApp: WhatsAppConfig{
			APIVersion:             DefaultGraphAPIVersion,
			BaseURL:                DefaultGraphBaseURL,
			MetadataTimeoutSeconds: DefaultMetadataTimeoutSeconds,
			DownloadTimeoutSeconds: DefaultDownloadTimeoutSeconds,
			SendTimeoutSeconds:     DefaultSendTimeoutSeconds,
			UploadTimeoutSeconds:   DefaultUploadTimeoutSeconds,
		},
		Media: MediaConfig{
			Dir: DefaultMediaDir,
		},
		Samples: SamplesConfig{
			Dir: DefaultMediaDir,
		},
	}
}

// Load reads the TOML file at path over the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	for _, o := range envOverrides {
		if v, ok := lookup(o.name); ok && strings.TrimSpace(v) != "" {
			o.apply(&cfg, strings.TrimSpace(v))
		}
	}
	return cfg, nil
}

// LoadDotenv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables already set. Missing files
// are skipped.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultEnvPath}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings required to serve webhooks.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
