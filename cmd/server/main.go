package main

import (
	"context"
	"fmt"

	"github.com/dshemin/lockbox/internal/config"
	"github.com/dshemin/lockbox/internal/crypto"
	handler "github.com/dshemin/lockbox/internal/handler/http"
	"github.com/dshemin/lockbox/internal/lockout"
	"github.com/dshemin/lockbox/internal/logger"
	"github.com/dshemin/lockbox/internal/server"
	"github.com/dshemin/lockbox/internal/service"
	"github.com/dshemin/lockbox/internal/store"
	"github.com/dshemin/lockbox/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("lockbox-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	journal, err := newJournal(ctx, cfg.Storage.Journal, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating attempt journal")
	}

	engine := crypto.NewCipherEngine()
	guard := lockout.NewGuard(lockout.Config{
		MaxAttempts:    cfg.Lockout.MaxAttempts,
		FreezeDuration: cfg.Lockout.FreezeDuration,
	}, log)

	services, err := service.NewServices(engine, guard, journal, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	router := handler.NewHandler(services, log).Init()

	workers.NewWorkers(
		workers.NewFreezeSweeper(ctx, guard, cfg.Workers.SweepInterval, log),
	).Run()

	srv, err := server.NewServer(router, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newJournal wires the attempt journal. An empty DSN disables persistence:
// the lockout guard never reads the journal, so the server degrades to a
// no-op recorder instead of refusing to start.
func newJournal(ctx context.Context, cfg config.Journal, log *logger.Logger) (store.AttemptJournal, error) {
	if cfg.DSN == "" {
		log.Info().Msg("journal DSN is empty, attempt journal disabled")
		return store.NewNopJournal(), nil
	}

	db, err := store.NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return store.NewAttemptJournal(db, log), nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
