package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alibaba1709/SIH-25069/internal/circularity"
	"github.com/alibaba1709/SIH-25069/internal/config"
	"github.com/alibaba1709/SIH-25069/internal/delivery/http"
	"github.com/alibaba1709/SIH-25069/internal/platform/logger"
	"github.com/alibaba1709/SIH-25069/internal/repository/postgres"
	"github.com/alibaba1709/SIH-25069/internal/repository/redis"
	"github.com/alibaba1709/SIH-25069/internal/service"
)

func main() {
	// Configuration
	cfg, envFile := config.Load()

	mode := "development"
	if cfg.Production() {
		mode = "production"
	}
	log, err := logger.New(mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if !envFile {
		log.Info("No .env file found, using system environment")
	}

	// Benchmark engine: a startup failure is fatal
	datasetPath, err := cfg.DatasetPath()
	if err != nil {
		log.Fatal("reference dataset unavailable", "error", err)
	}
	engineCfg, err := cfg.Engine()
	if err != nil {
		log.Fatal("invalid engine configuration", "error", err)
	}
	engine, err := circularity.NewFromCSV(datasetPath, engineCfg, circularity.WithLogger(log.With("component", "engine")))
	if err != nil {
		log.Fatal("failed to initialize circularity engine", "dataset", datasetPath, "error", err)
	}

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var repo service.AssessmentRepository
	if pool := connectPostgres(ctx, cfg.DatabaseURL, log); pool != nil {
		defer pool.Close()
		pgRepo := postgres.NewPostgresRepository(pool)
		if err := pgRepo.InitSchema(ctx); err != nil {
			log.Warn("Could not create assessments table", "error", err)
		}
		repo = pgRepo
	} else {
		log.Info("Running with in-memory assessment store")
		repo = postgres.NewMockRepository()
	}

	// Prediction cache
	var cache service.PredictionCache
	if cfg.RedisAddr != "" {
		rc, err := redis.NewPredictionCache(ctx, cfg.RedisAddr, cfg.RedisTTL)
		if err != nil {
			log.Warn("Could not connect to Redis, predictions will not be cached", "error", err)
		} else {
			defer rc.Close()
			cache = rc
			log.Info("Connected to Redis", "addr", cfg.RedisAddr)
		}
	}

	// Dependency Injection: Services
	materials := service.NewMaterialService(engine)
	calculator := service.NewCalculatorService(materials)
	mlBridge := service.NewMLBridge(cfg.MLServiceURL, cache, log.With("component", "ml_bridge"))
	assessments := service.NewAssessmentService(engine, mlBridge, calculator, materials, repo, log.With("component", "assessments"))

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "MCI API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, http.NewHandler(assessments, calculator, materials, mlBridge, log.With("component", "http")))

	// Graceful shutdown
	go func() {
		log.Info("Server starting", "port", cfg.Port, "dataset", datasetPath, "rows", engine.Rows())
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("Server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	assessments.WaitBackground()
	log.Info("Server exited gracefully")
}

func connectPostgres(ctx context.Context, url string, log *logger.Logger) *pgxpool.Pool {
	if url == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		log.Warn("Could not connect to database", "error", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		log.Warn("Database unreachable", "error", err)
		pool.Close()
		return nil
	}
	log.Info("Connected to PostgreSQL")
	return pool
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
