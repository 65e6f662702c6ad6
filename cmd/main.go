package main

import (
	"context"
	"fmt"
	"os"

	"github.com/orgball2608/reels-client/internal/app"
	"github.com/orgball2608/reels-client/pkg/config"
	"github.com/orgball2608/reels-client/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Opts{Env: cfg.App.Env})

	application := fx.New(
		fx.Logger(log),
		fx.Supply(cfg),
		app.Module(cfg.Storage.Driver),
	)

	// Start the application
	if err := application.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	// Done fires on SIGINT/SIGTERM and when the command loop exits. Stop
	// cancels the loop; a pending stdin read is abandoned with the process.
	<-application.Done()

	// Gracefully shutdown the application
	if err := application.Stop(context.Background()); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
