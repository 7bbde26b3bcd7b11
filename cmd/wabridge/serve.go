package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/memohai/wabridge/internal/config"
	"github.com/memohai/wabridge/internal/handlers"
	sampleschecker "github.com/memohai/wabridge/internal/healthcheck/checkers/samples"
	storagechecker "github.com/memohai/wabridge/internal/healthcheck/checkers/storage"
	"github.com/memohai/wabridge/internal/logger"
	"github.com/memohai/wabridge/internal/media"
	"github.com/memohai/wabridge/internal/media/providers/localfs"
	"github.com/memohai/wabridge/internal/reply"
	"github.com/memohai/wabridge/internal/samples"
	"github.com/memohai/wabridge/internal/server"
	"github.com/memohai/wabridge/internal/version"
	"github.com/memohai/wabridge/internal/whatsapp"
)

func newServeCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the WhatsApp webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			app := newServeApp(cfg)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func newServeApp(cfg config.Config) *fx.App {
	return fx.New(
		serveOptions(cfg),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	)
}

func serveOptions(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			provideLogger,
			provideWhatsAppClient,
			provideStorageProvider,
			provideResolver,
			providePersistor,
			provideSampleService,
			provideDispatcher,
			provideServerHandler(provideWebhookHandler),
			provideServerHandler(handlers.NewHealthHandler),
			provideServerHandler(provideDebugHandler),
			provideServer,
		),
		fx.Invoke(startServer),
	)
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideWhatsAppClient(log *slog.Logger, cfg config.Config) *whatsapp.Client {
	wa := cfg.WhatsApp
	return whatsapp.NewClient(log, whatsapp.Config{
		BaseURL:         wa.BaseURL,
		APIVersion:      wa.APIVersion,
		AccessToken:     wa.AccessToken,
		PhoneNumberID:   wa.PhoneNumberID,
		MetadataTimeout: wa.MetadataTimeout(),
		DownloadTimeout: wa.DownloadTimeout(),
		SendTimeout:     wa.SendTimeout(),
		UploadTimeout:   wa.UploadTimeout(),
	}, &http.Client{})
}

func provideStorageProvider(cfg config.Config) (media.StorageProvider, error) {
	provider, err := localfs.New(cfg.Media.Dir)
	if err != nil {
		return nil, fmt.Errorf("media storage: %w", err)
	}
	return provider, nil
}

func provideResolver(log *slog.Logger, client *whatsapp.Client) *media.Resolver {
	return media.NewResolver(log, client)
}

func providePersistor(log *slog.Logger, provider media.StorageProvider) *media.Persistor {
	return media.NewPersistor(log, provider)
}

func provideSampleService(log *slog.Logger, cfg config.Config, client *whatsapp.Client) (*samples.Service, error) {
	catalog, err := loadSampleCatalog(cfg.Samples)
	if err != nil {
		return nil, err
	}
	svc := samples.NewService(log, catalog, client)
	if err := svc.Validate(); err != nil {
		log.Warn("some samples are unavailable", slog.Any("error", err))
	}
	return svc, nil
}

func provideDispatcher(log *slog.Logger, client *whatsapp.Client, resolver *media.Resolver, persistor *media.Persistor, sampleService *samples.Service) *reply.Dispatcher {
	return reply.NewDispatcher(log, client, resolver, persistor, sampleService)
}

func provideWebhookHandler(log *slog.Logger, cfg config.Config, dispatcher *reply.Dispatcher) *handlers.WebhookHandler {
	return handlers.NewWebhookHandler(log, handlers.WebhookConfig{
		VerifyToken: cfg.WhatsApp.VerifyToken,
		AppSecret:   cfg.WhatsApp.AppSecret,
	}, dispatcher)
}

func provideDebugHandler(log *slog.Logger, cfg config.Config, sampleService *samples.Service, provider media.StorageProvider) *handlers.DebugHandler {
	return handlers.NewDebugHandler(log, handlers.DebugConfig{
		PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
		AppID:         cfg.WhatsApp.AppID,
		APIVersion:    cfg.WhatsApp.APIVersion,
		AccessToken:   cfg.WhatsApp.AccessToken,
		VerifyToken:   cfg.WhatsApp.VerifyToken,
		AppSecret:     cfg.WhatsApp.AppSecret,
	}, sampleService,
		storagechecker.NewChecker(log, provider),
		sampleschecker.NewChecker(log, sampleService),
	)
}

type serverParams struct {
	fx.In
	Logger         *slog.Logger
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, params.Config.Server.Addr, params.ServerHandlers...)
}

func startServer(lc fx.Lifecycle, logger *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting wabridge", slog.String("version", version.GetInfo().String()), slog.String("addr", srv.Addr()))
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
