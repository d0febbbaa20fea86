package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/skillshare/internal/buildinfo"
	"github.com/dmitrijs2005/skillshare/internal/logging"
	"github.com/dmitrijs2005/skillshare/internal/server"
	"github.com/dmitrijs2005/skillshare/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}
	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
