package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/alejandrodnm/butterfly/config"
	"github.com/alejandrodnm/butterfly/internal/adapters/notify"
	"github.com/alejandrodnm/butterfly/internal/adapters/storage"
	"github.com/alejandrodnm/butterfly/internal/application/butterfly"
	"github.com/alejandrodnm/butterfly/internal/ports"
	"github.com/alejandrodnm/butterfly/internal/strategy"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: built-in example)")
	model := flag.String("model", "", "pricing model (overrides config)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print per-leg table and risk summary")
	profile := flag.Bool("profile", false, "print payoff profile at expiry")
	dsn := flag.String("store", "", "SQLite path to record the valuation (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *model != "" {
		cfg.Pricing.Model = *model
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *dsn != "" {
		cfg.Storage.DSN = *dsn
	}
	setupLogger(cfg.Log)

	// Un modelo desconocido es un error de configuración: sin fallback.
	pricer, err := strategy.Resolve(cfg.Pricing.Model)
	if err != nil {
		slog.Error("failed to resolve pricing model", "err", err, "model", cfg.Pricing.Model)
		os.Exit(1)
	}

	var store ports.ValuationStore
	if cfg.Storage.DSN != "" {
		s, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	p := cfg.Pricing
	spread := p.Spread()

	slog.Debug("butterfly starting",
		"config", *configPath,
		"model", pricer.Name(),
		"spot", p.Spot,
		"strikes", p.Strikes,
		"expiry", p.Expiry,
		"rate", p.Rate,
		"vol", p.Vol,
		"store", cfg.Storage.DSN != "",
	)

	svc := butterfly.NewService(
		butterfly.NewEvaluator(pricer),
		notify.NewConsole(*table, *profile),
		store,
	)

	if _, err := svc.Run(context.Background(), spread); err != nil {
		slog.Error("valuation failed", "err", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}

// setupLogger escribe en stderr: stdout queda para la línea de resultado.
func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
