package main

import (
	"context"
	"errors"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gestaotemplate/docs/swagger"
	"gestaotemplate/internal/api"
	"gestaotemplate/internal/config"
	"gestaotemplate/internal/db"
	"gestaotemplate/internal/events"
	"gestaotemplate/internal/models"
	"gestaotemplate/internal/ratelimit"
	"gestaotemplate/internal/resources"
	"gestaotemplate/internal/services"
	"gestaotemplate/internal/tasks"
	"gestaotemplate/internal/utils"
	"gestaotemplate/internal/utils/logger"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 🚀 Main function
// @title Gestão Template API
// @version 1.0
// @description Store-scoped configuration of storefront templates
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {

	logger := logger.New("gestaotemplate")

	// check if .env file exists
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		logger.Info("No .env file found, skipping environment variable loading")
	} else {
		logger.Info("Loading environment variables from .env file")
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	setLogLevel(cfg.LogLevel)

	// Connect to database
	dbInstance, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database connection: %v", err)
		}
	}()

	if err := createOwnerFromEnv(dbInstance); err != nil {
		logger.Warn("Failed to create owner: %v", err)
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	storage, err := services.NewStorage(startCtx, cfg.Storage, cfg.Server.PublicURL)
	startCancel()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	deps := api.Deps{DB: dbInstance, Storage: storage}
	events.LogRecords(append(resources.Tables(), "tarefas", "users")...)

	// Create a context for task server
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	var redisClient *redis.Client
	var taskScheduler *tasks.Scheduler
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(serverCtx).Err(); err != nil {
			logger.Warn("Redis unavailable, running without cache, rate limit and background tasks: %v", err)
			_ = redisClient.Close()
			redisClient = nil
		}
	}

	climaCfg := services.ClimaConfig{
		BaseURL:  cfg.Weather.BaseURL,
		APIKey:   cfg.Weather.APIKey,
		Timeout:  cfg.Weather.Timeout,
		CacheTTL: cfg.Weather.CacheTTL,
	}

	if redisClient != nil {
		defer redisClient.Close()

		deps.Clima = services.NewClimaService(climaCfg, services.NewRedisCache(redisClient, "clima:"))
		if cfg.Weather.RateLimit > 0 {
			deps.ClimaLimiter = ratelimit.New(redisClient, ratelimit.Config{
				Name:      "clima",
				RateLimit: ratelimit.RateLimit{Window: cfg.Weather.RateEvery, MaxHits: cfg.Weather.RateLimit},
			})
		}

		redisOpt := tasks.RedisOpt(cfg.Redis)

		// Failed file deletions are retried in the background
		taskClient := tasks.NewTaskClient(redisOpt)
		defer taskClient.Close()
		taskClient.RetryFailedDeletes()

		// Initialize task handlers
		sweeper := services.NewSweeper(dbInstance, storage, resources.SweepTargets(), cfg.Tasks.SweepGrace)
		taskHandler := tasks.NewTaskHandler(storage, sweeper)

		// Initialize task server
		taskServer := tasks.NewServer(redisOpt, cfg.Tasks.Concurrency, taskHandler, logger)

		// Start task server
		go func() {
			if err := taskServer.Start(serverCtx); err != nil {
				logger.Error("Task server error", err)
			}
		}()

		// Initialize task scheduler
		taskScheduler = tasks.NewScheduler(redisOpt, cfg.Tasks.SweepCron, logger)

		// Start task scheduler
		go func() {
			if err := taskScheduler.Start(); err != nil {
				logger.Error("Task scheduler error", err)
			}
		}()
	} else {
		deps.Clima = services.NewClimaService(climaCfg, nil)
		events.On(events.StorageDeleteFailed, func(data interface{}) {
			logger.Warn("Orphaned file %v will be removed by the next sweep", data)
		})
	}

	// Swagger documentation
	if u, err := url.Parse(cfg.Server.PublicURL); err == nil && u.Host != "" {
		swagger.SwaggerInfo.Host = u.Host
		swagger.SwaggerInfo.Schemes = []string{u.Scheme}
	}

	// Initialize API server
	apiServer, err := api.NewServer(cfg, deps)
	if err != nil {
		log.Fatalf("Failed to initialize API server: %v", err)
	}
	go func() {
		logger.Success("API server started")
		if err := apiServer.Start(); err != nil {
			logger.Error("API server error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Create a deadline for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop task scheduler
	if taskScheduler != nil {
		taskScheduler.Stop()
	}

	// Stop task server
	serverCancel()

	// Shutdown API server
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown API server", err)
	}

	logger.Info("Servers shutdown gracefully")
}

var errOwnerPassword = errors.New("OWNER_PASSWORD must have at least 8 characters")

func setLogLevel(level string) {
	logger.SetLevel(logger.ParseLevel(level))
}

// createOwnerFromEnv seeds the first store owner from OWNER_* variables.
func createOwnerFromEnv(db *gorm.DB) error {
	email, ok := os.LookupEnv("OWNER_EMAIL")
	if !ok {
		return nil
	}
	password := os.Getenv("OWNER_PASSWORD")
	if len(password) < 8 {
		return errOwnerPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	lojaNome := os.Getenv("OWNER_LOJA")
	if lojaNome == "" {
		lojaNome = "Minha Loja"
	}
	pasta, err := utils.Pasta(lojaNome)
	if err != nil {
		return err
	}
	_, err = models.CreateOwner(db, os.Getenv("OWNER_NAME"), email, string(hashed), lojaNome, pasta)
	return err
}
