// Command seed wipes the configured store document and writes the sample
// catalog.
package main

import (
	"context"
	"fmt"
	"os"

	"storeflow/pkg/config"
	"storeflow/pkg/inventory"
	"storeflow/pkg/logger"
	"storeflow/pkg/otel"
	"storeflow/pkg/store"
	"storeflow/pkg/store/file"
	"storeflow/pkg/store/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
	log := logger.New(os.Stderr, level, "storeflow-seed", otel.GetTraceID)
	defer log.Sync()

	if err := seed(context.Background(), cfg, log); err != nil {
		log.Error(context.Background(), "seed", "error", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	var backend store.Backend = file.New(cfg.DataFile)
	if cfg.Ephemeral {
		backend = memory.New()
	}
	st, err := store.Open(ctx, backend, log)
	if err != nil {
		return err
	}
	counts, err := inventory.New(st, log, cfg.RecentViewCapacity).SeedSampleData(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %s: %d categories, %d products, %d orders, %d view histories\n",
		cfg.DataFile, counts.Categories, counts.Products, counts.Orders, counts.RecentViews)
	return nil
}
