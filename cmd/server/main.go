package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/befuji/studio-backend/internal/ai"
	"github.com/befuji/studio-backend/internal/config"
	httpHandlers "github.com/befuji/studio-backend/internal/http/handlers"
	httpRouter "github.com/befuji/studio-backend/internal/http/router"
	"github.com/befuji/studio-backend/internal/logger"
	"github.com/befuji/studio-backend/internal/mail"
	"github.com/befuji/studio-backend/internal/models"
	"github.com/befuji/studio-backend/internal/service"
	"github.com/befuji/studio-backend/internal/storage"
	"github.com/befuji/studio-backend/internal/store"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Объектное хранилище - и видеофайлы, и JSON-документы коллекций.
	objectStorage, err := storage.New(ctx, cfg.R2Endpoint(), cfg.R2AccessKeyID, cfg.R2SecretKey, cfg.R2Bucket)
	if err != nil {
		log.Fatalf("main: не удалось подготовить объектное хранилище: %v", err)
	}

	// Коллекции. Политики перестановки намеренно разные: перестановка проектов
	// отбрасывает невошедшие записи, отзывы сохраняются в хвосте.
	projectCollection := store.NewCollection[models.Project](
		objectStorage, store.ProjectsKey,
		filepath.Join(cfg.SeedDataPath, "projects.json"),
		store.ReorderDropMissing,
	)
	reviewCollection := store.NewCollection[models.Review](
		objectStorage, store.ReviewsKey,
		filepath.Join(cfg.SeedDataPath, "reviews.json"),
		store.ReorderKeepMissing,
	)

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AdminTokenTTL)

	var mailer *mail.Client
	if cfg.ResendAPIKey != "" && cfg.MailTo != "" {
		mailer = mail.NewClient(cfg.ResendAPIKey, cfg.MailFrom, cfg.MailTo)
	} else {
		log.Printf("main: почта не сконфигурирована, уведомления отключены")
	}

	var aiClient *ai.Client
	if cfg.AnthropicAPIKey != "" {
		aiClient = ai.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}

	// Сервисы.
	authService := service.NewAuthService(cfg.AdminPassword, cfg.AdminPassHash, tokenManager)
	projectService := service.NewProjectService(projectCollection)

	var reviewService *service.ReviewService
	if mailer != nil {
		reviewService = service.NewReviewService(reviewCollection, mailer)
	} else {
		reviewService = service.NewReviewService(reviewCollection, nil)
	}

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	projectHandler := httpHandlers.NewProjectHandler(projectService)
	reviewHandler := httpHandlers.NewReviewHandler(reviewService, aiClient)
	contactHandler := httpHandlers.NewContactHandler(mailer)
	mediaHandler := httpHandlers.NewMediaHandler(objectStorage, cfg.UploadURLTTL, cfg.MaxUploadSizeMB, cfg.AllowedOrigins)
	healthHandler := httpHandlers.NewHealthHandler(objectStorage)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, projectHandler, reviewHandler, contactHandler, mediaHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}
