package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Dosada05/hackathon-system/config"
	"github.com/Dosada05/hackathon-system/db"
	"github.com/Dosada05/hackathon-system/handlers"
	"github.com/Dosada05/hackathon-system/middleware"
	"github.com/Dosada05/hackathon-system/realtime"
	"github.com/Dosada05/hackathon-system/repositories"
	api "github.com/Dosada05/hackathon-system/routes"
	"github.com/Dosada05/hackathon-system/services"
	"github.com/Dosada05/hackathon-system/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к PostgreSQL
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Подключение к MongoDB
	mongoClient, err := db.ConnectMongo(cfg.MongoURI, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to mongodb", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error("failed to disconnect from mongodb", slog.Any("error", err))
		} else {
			logger.Info("mongodb connection closed")
		}
	}()
	mongoDB := mongoClient.Database(cfg.MongoDBName)
	logger.Info("mongodb connection established", slog.String("database", cfg.MongoDBName))

	// Инициализация загрузчика файлов (Cloudflare R2)
	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	// Инициализация WebSocket Hub
	wsHub := realtime.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	assignmentRepo := repositories.NewPostgresAssignmentRepository(dbConn)
	announcementRepo := repositories.NewMongoAnnouncementRepository(mongoDB)
	questionRepo := repositories.NewMongoQuestionRepository(mongoDB)
	chatRepo := repositories.NewMongoChatRepository(mongoDB)
	submissionRepo := repositories.NewMongoSubmissionRepository(mongoDB)
	scoreRepo := repositories.NewMongoScoreRepository(mongoDB)
	certificateRepo := repositories.NewMongoCertificateRepository(mongoDB)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo)
	teamService := services.NewTeamService(teamRepo)
	judgeService := services.NewJudgeService(assignmentRepo, eventRepo, userRepo)
	submissionService := services.NewSubmissionService(submissionRepo, eventRepo)
	scoreService := services.NewScoreService(scoreRepo, assignmentRepo, eventRepo, wsHub)
	announcementService := services.NewAnnouncementService(announcementRepo, eventRepo, wsHub)
	questionService := services.NewQuestionService(questionRepo, wsHub)
	chatService := services.NewChatService(chatRepo, wsHub)
	certificateService := services.NewCertificateService(certificateRepo, registrationRepo, eventRepo, userRepo, cloudflareUploader)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	userHandler := handlers.NewUserHandler(userService)
	eventHandler := handlers.NewEventHandler(eventService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	teamHandler := handlers.NewTeamHandler(teamService)
	judgeHandler := handlers.NewJudgeHandler(judgeService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	chatHandler := handlers.NewChatHandler(chatService)
	certificateHandler := handlers.NewCertificateHandler(certificateService)
	uploadHandler := handlers.NewUploadHandler(cloudflareUploader)
	docsHandler := handlers.NewDocsHandler()
	healthHandler := handlers.NewHealthHandler(dbConn, mongoClient)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		authHandler,
		userHandler,
		eventHandler,
		registrationHandler,
		teamHandler,
		judgeHandler,
		submissionHandler,
		scoreHandler,
		announcementHandler,
		questionHandler,
		chatHandler,
		certificateHandler,
		uploadHandler,
		docsHandler,
		healthHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
