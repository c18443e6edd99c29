package main

import (
	"context"
	"fmt"

	"servicebot/config"
	"servicebot/pkg/logger"
	"servicebot/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	pg, err := postgres.New(context.Background(), cfg, log)

	if err != nil {
		panic(err)
	}
	defer pg.Close()

	// Truncate mutable data. Specialists stay: the roster is seeded from
	// configuration and survives resets.
	_, err = pg.GetPool().Exec(context.Background(), "TRUNCATE TABLE clients, appointments, blacklist, ratings CASCADE")
	if err != nil {
		log.Error(fmt.Sprintf("Failed to truncate tables: %v", err))
	} else {
		log.Info("Successfully truncated clients, appointments, blacklist, and ratings tables.")
	}
}
