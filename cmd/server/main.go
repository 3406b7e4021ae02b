package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/voice-lab/internal/config"
	"github.com/JaimeStill/voice-lab/internal/infrastructure"
	"github.com/JaimeStill/voice-lab/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("finalize config: %w", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return fmt.Errorf("infrastructure init: %w", err)
	}

	domain := NewDomain(infra, cfg)
	handler := buildHandler(infra, domain, cfg)

	srv := server.New(&cfg.Server, handler, infra.Logger)

	if err := infra.Start(); err != nil {
		return fmt.Errorf("infrastructure start: %w", err)
	}
	if err := srv.Start(infra.Lifecycle); err != nil {
		return fmt.Errorf("server start: %w", err)
	}

	infra.Lifecycle.WaitForStartup()
	infra.Logger.Info("all systems ready", "addr", cfg.Server.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.Info("initiating shutdown")
	if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	infra.Logger.Info("service stopped")
	return nil
}
