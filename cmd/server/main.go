// Package main - Entry point for the cleaning-cost estimation server
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"cleaning-cost/api"
	"cleaning-cost/core/pricing"
	"cleaning-cost/internal/config"
	"cleaning-cost/internal/logging"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("cleaning-cost-server", pflag.ExitOnError)
	cfgFile := flags.String("config", "", "config file (default is ./cleaning-cost.yaml)")
	flags.String("addr", ":8080", "Server address")
	flags.String("rate-table", pricing.TableFormula, "rate table (formula, bracket)")
	flags.Bool("preserve-floors", false, "keep floor selections when room counts change")
	flags.String("log-level", "info", "log level")
	flags.String("log-format", "json", "log format (json, console)")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgFile, flags)
	if err != nil {
		return err
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()
	logger := logging.Named("server")

	table, err := pricing.NewRateTable(cfg.Pricing.RateTable)
	if err != nil {
		return err
	}
	engine := pricing.NewEngine(table,
		pricing.WithLogger(logging.Named("engine")),
		pricing.WithCurrency(cfg.Pricing.Currency))

	apiServer := api.NewServer(version, engine,
		api.WithLogger(logger),
		api.WithPreserveFloors(cfg.Rooms.PreserveFloors))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           apiServer,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("version", version),
			zap.String("rate_table", table.Name()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
