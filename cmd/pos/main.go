package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-pos-ledger/config"
	"github.com/fekuna/omnipos-pos-ledger/internal/server"
	"github.com/fekuna/omnipos-pos-ledger/pkg/cache"
	"github.com/fekuna/omnipos-pos-ledger/pkg/database"
	"github.com/fekuna/omnipos-pos-ledger/pkg/i18n"
	"github.com/fekuna/omnipos-pos-ledger/pkg/lock"
	"github.com/fekuna/omnipos-pos-ledger/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load() // Load .env file if it exists

	app := &cli.App{
		Name:  "pos",
		Usage: "point-of-sale inventory and ledger service",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the gRPC server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) logger.ZapLogger {
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
	} else {
		logConfig.Encoding = "json"
	}
	return logger.NewZapLogger(logConfig)
}

func openDatabase(cfg *config.Config) (*database.DB, error) {
	isolation, err := database.ParseIsolation(cfg.Database.Isolation)
	if err != nil {
		return nil, err
	}

	return database.Open(&database.Config{
		Driver:          cfg.Database.Driver,
		Path:            cfg.Database.Path,
		DSN:             cfg.Postgres.DSN(),
		BusyTimeout:     cfg.Database.BusyTimeout(),
		Isolation:       isolation,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second,
	})
}

func migrate(_ *cli.Context) error {
	cfg := config.LoadEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}
	appLogger.Info("Database migrated", zap.String("driver", cfg.Database.Driver))
	return nil
}

func serve(_ *cli.Context) error {
	// 1. Load Configuration
	cfg := config.LoadEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// 2. Initialize Logger
	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	// 3. Initialize i18n
	translator, err := i18n.New(cfg.Server.Locale)
	if err != nil {
		return err
	}

	// 4. Connect to Database
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	appLogger.Info("Connected to database",
		zap.String("driver", cfg.Database.Driver),
		zap.Duration("busy_timeout", cfg.Database.BusyTimeout()),
	)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	// 5. Commit lock
	var locker lock.Locker
	switch cfg.Lock.Backend {
	case config.LockBackendRedis:
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

		locker = lock.NewRedis(redisClient, cfg.Lock.Key, cfg.Lock.TTL(), cfg.Lock.Wait(), cfg.Lock.Retry(), appLogger)
	default:
		locker = lock.NewLocal(cfg.Lock.Wait())
	}

	// 6. Start gRPC Server
	srv := server.New(&server.Deps{
		DB:         db,
		Locker:     locker,
		Translator: translator,
		Logger:     appLogger,
	})

	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.GRPC.Serve(lis)
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("failed to serve: %w", err)
	}

	appLogger.Info("Shutting down server...")
	srv.Stop()
	appLogger.Info("Server stopped")
	return nil
}
