package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/landlord/internal/config"
	"github.com/lox/landlord/internal/player"
)

// setupLogger logs to path when given, otherwise to stderr. The returned
// closer must be called once logging is done.
func setupLogger(debug bool, path string) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closer := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	}

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
	return logger, closer, nil
}

// setupSignalHandler returns a context cancelled on interrupt.
func setupSignalHandler(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, stopping", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()
	return ctx, cancel
}

// loadGame reads the game file, then applies environment overrides, the
// seed flag and human replacement in that order.
func loadGame(path string, seed *int64, autoHuman string) (config.Game, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Game{}, err
	}
	if cfg, err = config.ApplyEnv(cfg); err != nil {
		return config.Game{}, err
	}
	if seed != nil {
		cfg = cfg.WithSeed(*seed)
	}
	if autoHuman != "" {
		kind, err := player.ParseKind(autoHuman)
		if err != nil {
			return config.Game{}, err
		}
		if kind == player.Human {
			return config.Game{}, fmt.Errorf("--auto-human must name an automated strategy")
		}
		cfg = cfg.ReplaceHumans(kind)
	}
	return cfg, cfg.Validate()
}
