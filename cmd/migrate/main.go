package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/partnerflow/partnerflow/internal/clickhouse"
	"github.com/partnerflow/partnerflow/internal/config"
	"github.com/partnerflow/partnerflow/internal/logger"
	"github.com/partnerflow/partnerflow/internal/postgres"
)

//go:embed schema/*.sql
var schemaFS embed.FS

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	pgSchema, err := schemaFS.ReadFile("schema/postgres.sql")
	if err != nil {
		logger.Fatalw("Failed to read postgres schema", "error", err)
	}
	chSchema, err := schemaFS.ReadFile("schema/clickhouse.sql")
	if err != nil {
		logger.Fatalw("Failed to read clickhouse schema", "error", err)
	}

	if *dryRun {
		logger.Info("Dry run mode - printing migration SQL without executing")
		fmt.Fprintln(os.Stdout, string(pgSchema))
		fmt.Fprintln(os.Stdout, string(chSchema))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Infow("Connecting to postgres", "host", cfg.Postgres.Host)
	pg, err := postgres.NewClient(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer pg.Close()

	logger.Info("Running postgres migrations...")
	if _, err := pg.DB().ExecContext(ctx, string(pgSchema)); err != nil {
		logger.Fatalw("Failed to run postgres migrations", "error", err)
	}

	logger.Infow("Connecting to clickhouse", "address", cfg.ClickHouse.Address)
	ch, err := clickhouse.NewClient(cfg)
	if err != nil {
		logger.Fatalw("Failed to connect to clickhouse", "error", err)
	}
	defer ch.Close()

	logger.Info("Running clickhouse migrations...")
	if err := ch.GetConn().Exec(ctx, string(chSchema)); err != nil {
		logger.Fatalw("Failed to run clickhouse migrations", "error", err)
	}

	logger.Info("Migrations completed successfully")
}
