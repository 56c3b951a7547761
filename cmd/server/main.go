package main

import (
	"LoanKeeper/internal/config"
	"LoanKeeper/internal/handlers"
	"LoanKeeper/internal/limiter"
	"LoanKeeper/internal/middleware"
	"LoanKeeper/internal/repo"
	"LoanKeeper/internal/service"
	"LoanKeeper/internal/storage"
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const loginAttemptsPerMinute = 10

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	// Блоб-хранилище фотографий
	var store storage.BlobStore
	switch cfg.StorageBackend {
	case "minio":
		ms, err := storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			sugar.Fatalw("failed to initialize minio storage", "error", err)
		}
		if err := ms.EnsureBucket(ctx); err != nil {
			sugar.Fatalw("failed to ensure minio bucket", "error", err)
		}
		store = ms
	default:
		fs, err := storage.NewFSStore(cfg.UploadDir, "/uploads")
		if err != nil {
			sugar.Fatalw("failed to initialize fs storage", "error", err)
		}
		store = fs
	}

	// Ограничитель попыток входа: Redis, если задан, иначе в памяти
	var attempts limiter.AttemptLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			sugar.Fatalw("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		}
		attempts = limiter.NewRedisLimiter(rdb, loginAttemptsPerMinute, time.Minute)
	} else {
		attempts = limiter.NewMemoryLimiter(loginAttemptsPerMinute)
	}

	userRepo := repo.NewUserRepository(gormDB)
	loanRepo := repo.NewLoanRepository(gormDB)
	photoRepo := repo.NewPhotoRepository(gormDB)

	userService := service.NewUserService(userRepo, attempts)
	loanService := service.NewLoanService(loanRepo, sugar)
	photoService := service.NewPhotoService(loanRepo, photoRepo, store,
		int64(cfg.PhotoMaxSizeMB)<<20, sugar)

	h := handlers.NewHandler(userService, loanService, photoService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"StorageBackend", cfg.StorageBackend,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
