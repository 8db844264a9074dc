// Command roombook is an interactive room-booking manager. It loads the
// registry from the configured snapshot store, serves the numbered menu on
// stdin/stdout, and saves the registry when the user exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"roombook/internal/config"
	"roombook/internal/console"
	"roombook/internal/core"
	"roombook/internal/logging"
	"roombook/internal/storage"
)

var exitFunc = os.Exit

func main() {
	exitFunc(cli(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func cli(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "roombook: %v\n", err)
		return 2
	}

	logger := logging.New(stderr, cfg.Log.Level, cfg.Log.Format, "roombook")
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		sugar.Errorw("open snapshot store failed", "driver", cfg.Storage.Driver, "error", err)
		_, _ = fmt.Fprintf(stderr, "roombook: open storage: %v\n", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			sugar.Warnw("close snapshot store failed", "error", err)
		}
	}()

	metrics := core.NewPrometheusRecorder()
	svc := core.NewService(core.NewManager(), store,
		core.WithLogger(sugar),
		core.WithMetricsRecorder(metrics),
	)
	con := console.New(svc, stdin, stdout)
	con.Load(ctx)

	code := 0
	if cfg.ExportPath != "" {
		if err := con.Export(cfg.ExportPath); err != nil {
			_, _ = fmt.Fprintf(stderr, "roombook: export: %v\n", err)
			code = 1
		}
	} else if err := con.Run(ctx); err != nil {
		code = 1
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			sugar.Warnw("write metrics textfile failed", "path", cfg.MetricsFile, "error", err)
		}
	}
	return code
}
