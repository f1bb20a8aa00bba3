package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dnevnikapp/diary-backend/internal/config"
	"github.com/dnevnikapp/diary-backend/internal/db"
	httpHandlers "github.com/dnevnikapp/diary-backend/internal/http/handlers"
	"github.com/dnevnikapp/diary-backend/internal/http/nav"
	httpRouter "github.com/dnevnikapp/diary-backend/internal/http/router"
	"github.com/dnevnikapp/diary-backend/internal/logger"
	"github.com/dnevnikapp/diary-backend/internal/mail"
	"github.com/dnevnikapp/diary-backend/internal/repository"
	"github.com/dnevnikapp/diary-backend/internal/service"
	"github.com/dnevnikapp/diary-backend/internal/session"
	"github.com/dnevnikapp/diary-backend/internal/storage"
	"github.com/dnevnikapp/diary-backend/internal/verification"
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
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Redis держит сессии и коды подтверждения.
	redisClient, err := db.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("main: ошибка подключения к redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("main: ошибка закрытия redis: %v", err)
		}
	}()

	imageStorage, err := storage.NewImageStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	var mailer mail.Sender
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	} else {
		mailer = mail.LogSender{}
	}

	// Репозитории и хранилища.
	userRepo := repository.NewUserRepository(dbConn)
	postRepo := repository.NewPostRepository(dbConn)
	imageRepo := repository.NewImageRepository(dbConn)
	codeStore := verification.NewCodeStore(redisClient, cfg.CodeTTL)
	sessions := session.NewManager(redisClient, cfg.SessionTTL)

	// Сервисы.
	authService := service.NewAuthService(userRepo)
	registrationService := service.NewRegistrationService(userRepo)
	verificationService := service.NewVerificationService(userRepo, codeStore, mailer)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(userRepo, postRepo, imageRepo)

	// HTTP хэндлеры.
	outcomes := nav.NewRouter(sessions)
	loginHandler := httpHandlers.NewLoginHandler(authService, sessions, outcomes)
	registrationHandler := httpHandlers.NewRegistrationHandler(registrationService, sessions, outcomes)
	verificationHandler := httpHandlers.NewVerificationHandler(verificationService, sessions, outcomes)
	userHandler := httpHandlers.NewUserHandler(userService, sessions, outcomes)
	diaryHandler := httpHandlers.NewDiaryHandler(postService, imageStorage)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, loginHandler, registrationHandler, verificationHandler, userHandler, diaryHandler, sessions, outcomes)

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

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
