package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	_ "multipart-uploader/docs"

	"multipart-uploader/internal/delivery/http/routers"
	"multipart-uploader/internal/domain/dto"
	"multipart-uploader/internal/domain/repositories"
	"multipart-uploader/internal/infrastructure/awsclient"
	"multipart-uploader/internal/infrastructure/db"
	"multipart-uploader/internal/infrastructure/paramstore"
	"multipart-uploader/internal/infrastructure/queue"
	infra_repo "multipart-uploader/internal/infrastructure/repositories"
	"multipart-uploader/internal/infrastructure/storage"
	"multipart-uploader/internal/pkg/config"
	"multipart-uploader/internal/pkg/logging"
	"multipart-uploader/internal/pkg/metrics"
	"multipart-uploader/internal/security"
	"multipart-uploader/internal/usecases"
	consts "multipart-uploader/pkg/constants"
	apperrors "multipart-uploader/pkg/errors"
	"multipart-uploader/pkg/errors/i18n"
	"multipart-uploader/pkg/helper"
)

// @title                       Multipart Uploader API
// @version                     1.0
// @description                 Presigned multipart uploads to S3.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	if err := i18n.Load(cfg.App.Locale); err != nil {
		logger.Warn("locale not available, using default", zap.String("locale", cfg.App.Locale), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsclient.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		logger.Fatal("aws config", zap.Error(err))
	}
	params := paramstore.NewSSMParameterStore(ssm.NewFromConfig(awsCfg), logger)

	dbCfg, err := db.ResolveCredentials(ctx, cfg.Database, params)
	if err != nil {
		logger.Fatal("resolve database credentials", zap.Error(err))
	}
	database, err := db.NewPostgresDB(dbCfg, logger)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	sqlDB, err := database.DB()
	if err != nil {
		logger.Fatal("sql.DB unavailable", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrations(ctx, database); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	s3Client := storage.NewS3Client(awsCfg, cfg.AWS.Endpoint != "")
	objectStore := storage.NewS3Storage(s3Client, s3.NewPresignClient(s3Client), logger)
	files := infra_repo.NewUploadedFileRepository(database)

	events := newEventPublisher(ctx, cfg.Redis, logger)
	defer events.Close()

	m := metrics.New()

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	tokens, err := security.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.JWTExpiration, cfg.App.Name)
	if err != nil {
		logger.Fatal("token service", zap.Error(err))
	}

	uploadService := usecases.NewMultipartUploadService(params, objectStore, files, events, m, usecases.MultipartUploadOptions{
		BucketNameParam: cfg.Upload.BucketNameParam,
		PresignDuration: cfg.Upload.PresignDuration,
		PartSizeBytes:   cfg.Upload.PartSizeBytes,
	}, logger)
	authService := usecases.NewAuthService(params, tokens, cfg.Auth.Username, cfg.Auth.PasswordParam, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ErrorHandler:          apperrors.ErrorHandler(logger),
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())
	app.Use(m.Middleware())

	// Routes
	routers.SetupSystemRoutes(app, dto.InfoResponse{Name: cfg.App.Name, Version: cfg.App.Version, Env: cfg.App.Env}, m)
	routers.SetupAuthRoutes(app, authService)
	routers.SetupUploadRoutes(app, uploadService, helper.NewValidator(), tokens)

	var scheduler *cron.Cron
	if cfg.Janitor.Enabled {
		cleanup := usecases.NewCleanupService(files, objectStore, events, m, usecases.CleanupOptions{
			MaxAge:    cfg.Janitor.MaxAge,
			Workers:   cfg.Janitor.Workers,
			BatchSize: cfg.Janitor.BatchSize,
		}, logger)
		scheduler, err = startJanitor(ctx, cfg.Janitor.Schedule, cleanup, logger)
		if err != nil {
			logger.Fatal("janitor schedule", zap.Error(err))
		}
	}

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Addr()))
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	ctxShut, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctxShut); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
}

// newEventPublisher returns a Redis-backed publisher, or a logging no-op when
// Redis is not configured or unreachable.
func newEventPublisher(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) repositories.UploadEventPublisher {
	if !cfg.Enabled() {
		logger.Info("REDIS_HOST not set, upload events are only logged")
		return queue.NewNullEventPublisher(logger)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr()})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, upload events are only logged", zap.String("addr", cfg.Addr()), zap.Error(err))
		_ = rdb.Close()
		return queue.NewNullEventPublisher(logger)
	}
	return queue.NewRedisEventPublisher(rdb, consts.UploadEventsQueue)
}

func startJanitor(ctx context.Context, schedule string, cleanup usecases.CleanupService, logger *zap.Logger) (*cron.Cron, error) {
	cronLog := logging.CronLogger(logger)
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	if _, err := c.AddFunc(schedule, func() {
		if _, err := cleanup.ExpireStaleUploads(ctx); err != nil {
			logger.Error("stale upload sweep failed", zap.Error(err))
		}
	}); err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("janitor scheduled", zap.String("schedule", schedule))
	return c, nil
}
