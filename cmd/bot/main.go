package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pilgrimage/internal/app"
	"pilgrimage/internal/bot"
	"pilgrimage/internal/config"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.VerifyBot(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	logger := cfg.Logging.NewLogger(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := app.OpenDB(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	services := app.NewServices(db, logger)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error("telegram bot init", "error", err)
		os.Exit(1)
	}
	api.Debug = cfg.Telegram.Debug
	logger.Info("bot started", "username", api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.PollTimeout
	updates := api.GetUpdatesChan(u)

	b := bot.New(api, services.Cleaners, services.Schedules, logger)
	b.Run(ctx, updates)

	api.StopReceivingUpdates()
	logger.Info("bot stopped")
}
