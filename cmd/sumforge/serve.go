package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sumforge/internal/api"
	"github.com/dgallion1/sumforge/internal/draft"
	"github.com/dgallion1/sumforge/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pipeline as an HTTP service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		if err := cfg.ValidateServe(); err != nil {
			return err
		}

		log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		var drafts *draft.Client
		if cfg.OpenAIAPIKey != "" {
			drafts = draft.NewClient(draft.Config{
				APIKey:     cfg.OpenAIAPIKey,
				Model:      cfg.OpenAIModel,
				MaxRetries: cfg.DraftMaxRetries,
				RetryDelay: cfg.DraftRetryDelay,
				Timeout:    cfg.DraftTimeout,
			})
		}

		orch := pipeline.NewOrchestrator(cfg, drafts, log)
		orch.Start(cmd.Context())

		srv := api.NewServer(orch, log, cfg)
		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			<-cmd.Context().Done()
			log.Info("shutting down...")

			orch.Stop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting sumforge", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}
