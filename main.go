package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/whizpalsdeveloper/NotesApp/config"
	"github.com/whizpalsdeveloper/NotesApp/handler"
	"github.com/whizpalsdeveloper/NotesApp/logger"
	"github.com/whizpalsdeveloper/NotesApp/middleware"
	"github.com/whizpalsdeveloper/NotesApp/repository"
	"github.com/whizpalsdeveloper/NotesApp/storage"
	"github.com/whizpalsdeveloper/NotesApp/usecase"
	"github.com/whizpalsdeveloper/NotesApp/utils"
)

// connectMongoWithRetry tolerates startup races against the database
// container by retrying with exponential backoff.
func connectMongoWithRetry(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*mongo.Client, error) {
	const maxAttempts = 5
	backoff := time.Second

	var client *mongo.Client
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err = repository.ConnectMongo(ctx, cfg)
		if err == nil {
			return client, nil
		}
		log.Warn("failed to connect to MongoDB",
			"attempt", attempt, "max_attempts", maxAttempts, "error", err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return nil, err
}

// buildStore picks the note store: MongoDB when configured, otherwise
// the in-memory store (dev mode, data is lost on restart).
func buildStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repository.NoteStore, func()) {
	if cfg.Database.URI == "" {
		log.Warn("MONGO_URI not set, using in-memory note store")
		return repository.NewMemoryStore(), func() {}
	}

	client, err := connectMongoWithRetry(ctx, cfg.Database, log)
	if err != nil {
		log.Error("could not connect to MongoDB", "error", err)
		os.Exit(1)
	}

	repo := repository.GetNotesRepo(client, cfg.Database.DatabaseName)
	if err := repo.SetupIndexes(ctx); err != nil {
		log.Warn("failed to create indexes", "error", err)
	}
	log.Info("connected to MongoDB", "database", cfg.Database.DatabaseName)

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}
	return repo, cleanup
}

// buildImageStore picks MinIO when configured, local disk otherwise.
// The second return value is the directory to serve under /uploads
// ("" when MinIO serves objects itself).
func buildImageStore(cfg config.Config, log *slog.Logger) (storage.ImageStore, string) {
	if cfg.Storage.MinIOEndpoint != "" {
		store, err := storage.NewMinIOStore(cfg.Storage)
		if err != nil {
			log.Error("could not initialize MinIO storage", "error", err)
			os.Exit(1)
		}
		log.Info("using MinIO image storage",
			"endpoint", cfg.Storage.MinIOEndpoint, "bucket", cfg.Storage.MinIOBucket)
		return store, ""
	}

	store, err := storage.NewLocalStore(cfg.Storage.UploadsDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		log.Error("could not initialize local image storage", "error", err)
		os.Exit(1)
	}
	log.Info("using local image storage", "dir", store.Dir())
	return store, store.Dir()
}

func setupRouter(cfg config.Config, log *slog.Logger, notesService *usecase.NotesService, redisClient *redis.Client, uploadsDir string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestTracingMiddleware(),
		middleware.RecoveryMiddleware(log),
		middleware.CORSMiddleware(cfg.Server.AllowedOrigin),
		middleware.MetricsMiddleware(),
	)

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			router.Use(middleware.RedisRateLimitMiddleware(
				redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Window))
		} else {
			router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	statsHandler := handler.NewStatsHandler(notesService, log)
	router.GET("/stats", statsHandler.GetStats)

	notesHandler := handler.NewNotesHandler(notesService, log)
	notes := router.Group("/notes")
	{
		notes.GET("", notesHandler.ListNotes)
		notes.POST("", notesHandler.CreateNote)
		notes.GET("/:id", notesHandler.GetNote)
		notes.PUT("/:id", notesHandler.UpdateNote)
		notes.DELETE("/:id", notesHandler.DeleteNote)
		notes.POST("/:id/images", notesHandler.AddImages)
		notes.DELETE("/:id/images", notesHandler.RemoveImage)
	}

	if uploadsDir != "" {
		router.Static("/uploads", uploadsDir)
	}

	return router
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "error loading .env file: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.Server.Env)
	utils.InitValidator()

	ctx := context.Background()

	store, cleanup := buildStore(ctx, cfg, log)
	defer cleanup()

	imageStore, uploadsDir := buildImageStore(cfg, log)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("failed to connect to Redis, falling back to in-memory rate limiting",
				"addr", cfg.Redis.Addr, "error", err)
			redisClient = nil
		}
	}

	notesService := usecase.NewNotesService(store, imageStore, log)
	router := setupRouter(cfg, log, notesService, redisClient, uploadsDir)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("server starting", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
