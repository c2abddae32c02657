package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/podscribe/backend/internal/api/handlers"
	"github.com/podscribe/backend/internal/api/middleware"
	"github.com/podscribe/backend/internal/auth"
	"github.com/podscribe/backend/internal/config"
	"github.com/podscribe/backend/internal/db"
	"github.com/podscribe/backend/internal/job"
	"github.com/podscribe/backend/internal/storage"
)

func NewRouter(database *db.Database, jwtService *auth.JWTService, cfg *config.Config, jobQueue *job.JobQueue, uploads *storage.UploadStore) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	uploadsHandler := handlers.NewUploadsHandler(database, uploads)
	transcriptsHandler := handlers.NewTranscriptsHandler(database, jobQueue)
	articlesHandler := handlers.NewArticlesHandler(database, jobQueue)
	jobHandler := handlers.NewJobHandler(jobQueue)
	settingsHandler := handlers.NewSettingsHandler(database)

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Auth (public)
		r.With(loginLimiter.Handler).Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			// Auth
			r.Get("/auth/me", authHandler.Me)

			// Uploads
			r.Post("/uploads", uploadsHandler.Upload)
			r.Group(func(r chi.Router) {
				r.Use(middleware.MaxBodySize(1 << 20))

				r.Get("/uploads", uploadsHandler.List)
				r.Get("/uploads/{id}", uploadsHandler.Get)
				r.Delete("/uploads/{id}", uploadsHandler.Delete)
				r.Post("/uploads/{id}/transcribe", transcriptsHandler.Start)

				// Transcripts
				r.Get("/transcripts", transcriptsHandler.List)
				r.Get("/transcripts/{id}", transcriptsHandler.Get)
				r.Delete("/transcripts/{id}", transcriptsHandler.Delete)
				r.Get("/transcripts/{id}/export", transcriptsHandler.Export)
				r.Post("/transcripts/{id}/articles", articlesHandler.Generate)

				// Articles
				r.Get("/articles", articlesHandler.List)
				r.Get("/articles/{id}", articlesHandler.Get)
				r.Delete("/articles/{id}", articlesHandler.Delete)
				r.Get("/articles/{id}/export", articlesHandler.Export)
				r.Post("/articles/{id}/translate", articlesHandler.Translate)

				// Jobs
				r.Get("/jobs", jobHandler.ListJobs)
				r.Get("/jobs/{id}", jobHandler.GetJob)
				r.Delete("/jobs/{id}", jobHandler.CancelJob)
				r.Post("/jobs/{id}/retry", jobHandler.RetryJob)

				// Settings (admin only)
				r.With(middleware.RequireRole("admin")).Get("/settings", settingsHandler.GetSettings)
				r.With(middleware.RequireRole("admin")).Put("/settings", settingsHandler.UpdateSettings)
			})
		})
	})

	return r
}
