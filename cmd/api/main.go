package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"go.uber.org/zap"

	"taskmanager/configs"
	v1 "taskmanager/internal/api/v1"
	"taskmanager/internal/api/v1/handlers"
	"taskmanager/internal/middleware"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"
	"taskmanager/internal/ws"
	"taskmanager/pkg/database"
	"taskmanager/pkg/logger"
)

func main() {
	// Inisialisasi logger
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	// Load config
	cfg := configs.LoadConfig()

	// Inisialisasi database
	db, err := database.Connect(cfg, cfg.DBName)
	if err != nil {
		logger.ErrorLogger.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()
	logger.SystemLogger.Info("Database Connected")

	// Buat tabel jika belum ada
	if err := repository.Migrate(db); err != nil {
		logger.ErrorLogger.Fatal("Migration failed", zap.Error(err))
	}

	// Semua dependency dibuat di sini dan diberikan secara eksplisit
	secret := []byte(cfg.JWTSecret)
	validate := validator.New()

	hub := ws.NewHub()
	go hub.Run()

	authService := service.NewAuthService(db, secret, cfg.BcryptCost, cfg.TokenTTL)
	taskService := service.NewTaskService(db)

	app := fiber.New()

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(helmet.New())

	v1.RegisterRoutes(app, v1.Deps{
		Auth:   handlers.NewAuthHandler(authService, validate),
		Tasks:  handlers.NewTaskHandler(taskService, validate, hub),
		Secret: secret,
		Hub:    hub,
	})

	// Frontend statis; mode API-only jika direktorinya tidak ada
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		app.Static("/app", cfg.StaticDir)
	} else {
		logger.SystemLogger.Warn("Static directory missing, API only mode", zap.String("path", cfg.StaticDir))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
