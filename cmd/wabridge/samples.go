package main

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/memohai/wabridge/internal/config"
	"github.com/memohai/wabridge/internal/logger"
	"github.com/memohai/wabridge/internal/media"
	"github.com/memohai/wabridge/internal/samples"
)

func newSamplesCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Inspect the sample media catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report every sample and whether it can be sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger.Init(cfg.Log.Level, cfg.Log.Format)
			catalog, err := loadSampleCatalog(cfg.Samples)
			if err != nil {
				return err
			}
			svc := samples.NewService(logger.L, catalog, nil)
			out := cmd.OutOrStdout()
			for _, k := range media.Kinds {
				info, ok := svc.Info(k)
				if !ok {
					fmt.Fprintf(out, "%-9s not configured\n", k)
					continue
				}
				state := "missing"
				if info.Exists {
					state = "ok"
				}
				size := "-"
				if info.Local && info.Exists {
					size = humanize.IBytes(uint64(info.SizeBytes))
				}
				fmt.Fprintf(out, "%-9s %-8s %-10s %-16s %s\n", k, state, size, info.MimeType, info.Reference)
			}
			if err := svc.Validate(); err != nil {
				return fmt.Errorf("sample catalog has problems:\n%w", err)
			}
			return nil
		},
	})
	return cmd
}

func loadSampleCatalog(cfg config.SamplesConfig) (samples.Catalog, error) {
	if cfg.CatalogPath == "" {
		return samples.DefaultCatalog(cfg.Dir), nil
	}
	catalog, err := samples.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return samples.Catalog{}, fmt.Errorf("load sample catalog: %w", err)
	}
	logger.L.Info("sample catalog loaded", slog.String("path", cfg.CatalogPath), slog.Int("entries", len(catalog.Entries())))
	return catalog, nil
}
