package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/mohsen-hassani/manuscript-workbench/internal/buildinfo"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/cli"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/config"
	"github.com/mohsen-hassani/manuscript-workbench/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
