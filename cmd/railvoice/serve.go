package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/railvoice/railvoice/internal/call"
	"github.com/railvoice/railvoice/internal/callflow"
	"github.com/railvoice/railvoice/internal/config"
	"github.com/railvoice/railvoice/internal/fallback"
	"github.com/railvoice/railvoice/internal/intent"
	"github.com/railvoice/railvoice/internal/menu"
	"github.com/railvoice/railvoice/internal/server"
	"github.com/railvoice/railvoice/internal/stats"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the IVR HTTP service",
	Long:  `Starts the IVR simulator as a long-running HTTP service: call sessions, keypad and text input handling, and the optional AI fallback.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("config not loaded")
		}

		store := call.NewStore()
		catalog := menu.New()

		mainMenu, err := catalog.Get(menu.Main)
		if err != nil {
			return fmt.Errorf("load menu catalog: %w", err)
		}
		classifier := intent.New(mainMenu.Prompt)

		responder, err := fallback.New(cfg.Fallback)
		if err != nil {
			return fmt.Errorf("configure fallback: %w", err)
		}
		if responder == nil {
			slog.Info("AI fallback disabled, no API key configured", "provider", cfg.Fallback.Provider)
		}

		fallbackTimeout, err := config.DurationOrDefault(cfg.Fallback.Timeout, config.DefaultFallbackTimeout)
		if err != nil {
			return fmt.Errorf("parse fallback timeout: %w", err)
		}

		engine := callflow.NewEngine(store, catalog, classifier, responder, fallbackTimeout)
		srv, err := server.New(&cfg.Server, engine)
		if err != nil {
			return err
		}

		if cfg.Stats.Enabled {
			reporter, err := stats.NewReporter(store, cfg.Stats.Interval)
			if err != nil {
				return fmt.Errorf("configure stats reporter: %w", err)
			}
			reporter.Start()
			defer reporter.Stop()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("RailVoice starting up...", "port", cfg.Server.Port)
		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}

		slog.Info("RailVoice stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
