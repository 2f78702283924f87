package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"storeflow/pkg/config"
	"storeflow/pkg/inventory"
	"storeflow/pkg/logger"
	"storeflow/pkg/otel"
	"storeflow/pkg/store"
	"storeflow/pkg/store/file"
	"storeflow/pkg/store/memory"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "storeflow:", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logOut, closeLog, err := openSink(cfg.LogFile, os.Stderr)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()
	log := logger.New(logOut, level, "storeflow", otel.GetTraceID)
	defer log.Sync()

	traceOut, closeTrace, err := openSink(cfg.TraceFile, nil)
	if err != nil {
		return fmt.Errorf("open trace file: %w", err)
	}
	defer closeTrace()
	_, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: "storeflow",
		Probability: cfg.TraceProbability,
		Output:      traceOut,
	})
	if err != nil {
		log.Error(context.Background(), "init tracing", "error", err)
		return err
	}
	defer shutdown(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	ctx, span := otel.AddSpan(ctx, "storeflow.session", attribute.String("run.id", runID))
	defer span.End()

	st, err := store.Open(ctx, backendFor(cfg), log)
	if err != nil {
		log.Error(ctx, "open store", "error", err, "file", cfg.DataFile)
		return err
	}
	log.Info(ctx, "session started", "run_id", runID, "file", cfg.DataFile, "ephemeral", cfg.Ephemeral)

	a := &app{
		name: cfg.StoreName,
		svc:  inventory.New(st, log, cfg.RecentViewCapacity),
		log:  log,
		con:  newConsole(ctx, in, out, cfg.Locale),
	}
	err = a.run(ctx)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		fmt.Fprintln(out, "\nProgram interrupted")
		err = nil
	case err != nil:
		otel.RecordError(span, err)
	}
	log.Info(ctx, "session ended", "run_id", runID)
	return err
}

func backendFor(cfg config.Config) store.Backend {
	if cfg.Ephemeral {
		return memory.New()
	}
	return file.New(cfg.DataFile)
}

// openSink opens path for appending, or returns fallback when path is
// empty.
func openSink(path string, fallback io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return fallback, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
