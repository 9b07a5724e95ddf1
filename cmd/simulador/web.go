package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/simulador-financeiro/internal/config"
	"github.com/Dan9191/simulador-financeiro/internal/integrations/simulacao"
	"github.com/Dan9191/simulador-financeiro/internal/logging"
	"github.com/Dan9191/simulador-financeiro/internal/utils"
	"github.com/Dan9191/simulador-financeiro/internal/web"
	"github.com/spf13/cobra"
)

func newWebCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "Serve the simulation form",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store := web.NewStore(utils.ParseMode(cfg.ValueMode), cfg.SessionIdleTimeout)
			janitor, err := web.StartJanitor(store, cfg.SessionSweepSchedule, logger)
			if err != nil {
				return fmt.Errorf("invalid session sweep schedule: %w", err)
			}
			defer janitor.Stop()

			client := simulacao.NewClient(cfg, logger)
			srv := web.NewServer(store, client, logger)
			logger.Infof("Using simulation service at %s", cfg.APIURL)

			server := &http.Server{
				Addr:         fmt.Sprintf(":%s", cfg.WebPort),
				Handler:      srv.Router(),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: cfg.HTTPTimeout + 5*time.Second,
			}
			return serve(ctx, server, logger)
		},
	}
}
