package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"servicebot/config"
	"servicebot/pkg/bot"
	"servicebot/pkg/logger"
	"servicebot/service"
	"servicebot/storage/postgres"

	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	ctx := context.Background()
	pgStore, err := postgres.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	// Sync the declarative specialist roster. Idempotent: existing rows keep
	// their availability flag, nothing is ever removed at runtime.
	for _, seed := range cfg.Specialists {
		if err := pgStore.Specialist().Upsert(ctx, seed.TelegramID, seed.Name, seed.Username); err != nil {
			log.Error("Failed to seed specialist", logger.Int64("telegram_id", seed.TelegramID), logger.Error(err))
		}
	}

	svc := service.New(pgStore, cfg.AdminID, cfg.Location, log)

	// Periodic-task scheduler, reserved for reminder/expiry jobs.
	scheduler := cron.New()
	scheduler.Start()
	defer scheduler.Stop()

	b, err := bot.New(&cfg, pgStore, svc, log)
	if err != nil {
		log.Error("Failed to initialize bot", logger.Error(err))
		os.Exit(1)
	}

	go func() {
		if err := bot.RunServer(cfg.AppPort, pgStore, log); err != nil {
			log.Error("HTTP status API stopped", logger.Error(err))
		}
	}()

	go func() {
		log.Info("Bot is starting...")
		b.Start()
	}()

	log.Info("🚀 Service bot is now running.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Stopping bot and shutting down...")
}
