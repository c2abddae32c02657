package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/podscribe/backend/internal/api"
	"github.com/podscribe/backend/internal/auth"
	"github.com/podscribe/backend/internal/config"
	"github.com/podscribe/backend/internal/content"
	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/job"
	"github.com/podscribe/backend/internal/storage"
	"github.com/podscribe/backend/internal/transcribe"
)

func main() {
	godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if os.Getenv("DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := config.Load()

	// Ensure data directory exists
	os.MkdirAll(cfg.DataPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("[main] failed to initialize database")
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("[main] failed to create admin user")
	}
	log.Info().Msgf("[main] admin user ensured: %s", cfg.AdminUsername)

	uploads, err := storage.NewUploadStore(cfg.UploadPath)
	if err != nil {
		log.Fatal().Err(err).Msg("[main] failed to initialize upload store")
	}

	// Job queue with the pipeline handlers
	queue := job.NewJobQueue(database.DB())
	defer queue.Stop()

	transcribeService := transcribe.NewService(database, cfg.ChunkDuration, cfg.ChunkBitrate,
		cfg.OpenAIKey, cfg.WhisperModel, cfg.WhisperURL)
	queue.RegisterHandler(job.JobTranscribe, transcribeService.HandleJob)

	contentService := content.NewService(database, cfg.AnthropicKey, cfg.AnthropicModel)
	queue.RegisterHandler(job.JobGenerate, contentService.HandleGenerateJob)
	queue.RegisterHandler(job.JobTranslate, contentService.HandleTranslateJob)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Create router
	router := api.NewRouter(database, jwtService, cfg, queue, uploads)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: router}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("[main] shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Info().Msgf("[main] starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("[main] server failed")
	}
}
