package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/wordday/internal/ai"
	"github.com/example/wordday/internal/auth"
	"github.com/example/wordday/internal/config"
	"github.com/example/wordday/internal/daily"
	"github.com/example/wordday/internal/database"
	"github.com/example/wordday/internal/notify"
	"github.com/example/wordday/internal/scheduler"
	"github.com/example/wordday/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to resolve reference timezone: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}
	if cfg.WordsPerDay <= 0 {
		log.Fatalf("WORDS_PER_DAY must be positive, got %d", cfg.WordsPerDay)
	}

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	words := database.NewWordRepository(db)
	assignments := database.NewAssignmentRepository(db)
	users := database.NewUserRepository(db)

	authService, err := auth.New(users, cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	engine := daily.New(words, assignments, loc, cfg.WordsPerDay)

	var checker server.SentenceChecker
	if cfg.AIAPIKey != "" {
		client, err := ai.New(cfg.AIAPIKey, cfg.AIAPIURL, cfg.AIModel)
		if err != nil {
			log.Fatalf("Failed to create AI client: %v", err)
		}
		checker = client
	} else {
		log.Println("AI_API_KEY is not set, sentence check is disabled")
	}

	if cfg.TelegramBotToken != "" {
		notifier, err := notify.NewTelegram(cfg.TelegramBotToken)
		if err != nil {
			log.Printf("Failed to create telegram notifier, reminders disabled: %v", err)
		} else {
			sched := scheduler.New(users, assignments, notifier, loc)
			sched.Start()
			defer sched.Stop()
		}
	}

	srv := server.New(authService, engine, checker, cfg.SecureCookies)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}
