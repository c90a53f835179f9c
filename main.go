// Package main is the entry point for the Joke API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"jokeapi/src/app/server"
	"jokeapi/src/core/domain"
	"jokeapi/src/infra/config"
	"jokeapi/src/infra/crypto"
	"jokeapi/src/infra/logger"
	"jokeapi/src/infra/memory"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
		"rate_limit", cfg.RateLimit.Enabled,
	)

	ctx, stop := server.NotifyContext(context.Background())
	defer stop()

	// In-memory stores live as long as the process
	jokes := memory.NewJokeRepository(log)
	if cfg.Store.SeedJokes {
		if err := jokes.Seed(ctx, domain.SampleJokes()); err != nil {
			return err
		}
	}

	srv := server.New(cfg, log, server.Dependencies{
		Jokes:  jokes,
		Keys:   memory.NewKeyRepository(),
		Users:  memory.NewUserRepository(),
		Hasher: crypto.Argon2Hasher{},
		KeyGen: crypto.HexKeyGenerator{},
	})

	// Run blocks until a shutdown signal is received
	return srv.Run(ctx)
}
