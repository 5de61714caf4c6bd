package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Versifine/gimbal/internal/config"
	"github.com/Versifine/gimbal/internal/control"
	"github.com/Versifine/gimbal/internal/debug"
	"github.com/Versifine/gimbal/internal/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the gimbal config file")
	flag.Parse()

	cfg, err := config.LoadOrCreate(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
		Output: os.Stderr,
	}); err != nil {
		slog.Error("Failed to init logger", "error", err)
		os.Exit(1)
	}
	defer logger.Close()

	layout, err := cfg.ActuatorLayout()
	if err != nil {
		slog.Error("Invalid actuator layout", "error", err)
		os.Exit(1)
	}
	slog.Info("Gimbal configured",
		"actuators", layout.Count(),
		"radius", layout.Radius(),
		"max_pitch", cfg.Gimbal.MaxPitch,
		"max_roll", cfg.Gimbal.MaxRoll,
		"max_lift", cfg.Gimbal.MaxLift,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := control.NewController(*cfg, logger.Named("control"))
	console := debug.NewConsole(ctrl, layout, logger.Named("console"))
	if err := console.Start(ctx); err != nil {
		slog.Error("Console stopped", "error", err)
		os.Exit(1)
	}
}
