package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/edutrack/internal/database"
	"github.com/example/edutrack/internal/notify"
	"github.com/example/edutrack/internal/scheduler"
)

func main() {
	// Load .env if present, environment variables win otherwise
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to the database
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Supervisor notifications are optional, the engine runs without them
	var notifier scheduler.Notifier
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatIDStr := os.Getenv("SUPERVISOR_CHAT_ID")
	if token != "" && chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			log.Fatalf("Invalid SUPERVISOR_CHAT_ID: %v", err)
		}
		n, err := notify.NewTelegramNotifier(token, chatID)
		if err != nil {
			log.Fatalf("Failed to create notifier: %v", err)
		}
		notifier = n
		log.Println("Supervisor notifications enabled")
	}

	// Start the maintenance scheduler
	s := scheduler.New(notifier)
	s.Start()
	defer s.Stop()

	log.Println("Maintenance scheduler started. Press Ctrl+C to stop.")

	// Wait for a termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)
}
