package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/elkmoss/gritbot/internal/api"
	"github.com/elkmoss/gritbot/internal/bot"
	"github.com/elkmoss/gritbot/internal/db"
	"github.com/elkmoss/gritbot/internal/llm"
	"github.com/elkmoss/gritbot/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is required")
	}
	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		log.Println("OPENAI_API_KEY not set; /generate and /chat will report failure")
	}
	dbPath := getEnv("DB_PATH", filepath.Join("data", "gritbot.db"))
	port := getEnv("PORT", "8080")
	model := getEnv("OPENAI_MODEL", "")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	store := db.NewStore(database)

	telegram := bot.NewTelegramClient(botToken)
	assistant := llm.NewClient(openaiKey, model)
	tasks := services.NewTaskService(store)
	handler := bot.NewHandler(tasks, assistant, telegram)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	services.NewReminderService(store, telegram).Start(lifecycleCtx)
	services.NewMotivationService(store, telegram).Start(lifecycleCtx)

	app := fiber.New(fiber.Config{
		AppName:               "Gritbot",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	api.RegisterRoutes(app, api.NewHandler(database))

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("health server exited: %v", err)
		}
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("health server shutdown failed: %v", err)
		}
	}()

	log.Printf("Gritbot polling for updates (db: %s, health: :%s)", dbPath, port)

	var offset int64
	for lifecycleCtx.Err() == nil {
		updates, err := telegram.GetUpdates(lifecycleCtx, offset)
		if err != nil {
			if lifecycleCtx.Err() != nil {
				break
			}
			log.Printf("get updates failed: %v", err)
			time.Sleep(3 * time.Second)
			continue
		}
		for _, update := range updates {
			offset = update.UpdateID + 1
			handler.HandleUpdate(lifecycleCtx, update)
		}
	}

	log.Println("Gritbot stopped")
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
