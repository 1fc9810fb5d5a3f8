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

	"github.com/go-contacts-api/internal/config"
	"github.com/go-contacts-api/internal/infrastructure/awsconf"
	"github.com/go-contacts-api/internal/infrastructure/dynamo"
	imaginginfra "github.com/go-contacts-api/internal/infrastructure/imaging"
	jwtinfra "github.com/go-contacts-api/internal/infrastructure/jwt"
	mongoinfra "github.com/go-contacts-api/internal/infrastructure/mongo"
	s3infra "github.com/go-contacts-api/internal/infrastructure/s3"
	"github.com/go-contacts-api/internal/infrastructure/smtp"
	transporthttp "github.com/go-contacts-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg := config.Load()
	setupLogger(cfg)

	ctx := context.Background()

	awsCfg, err := awsconf.Load(ctx, cfg)
	if err != nil {
		fatal("aws config", err)
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		fatal("jwt provider", err)
	}

	deps := &transporthttp.Deps{
		ObjectStore: s3infra.NewStore(s3infra.NewClient(awsCfg, cfg), cfg),
		Mailer:      smtp.NewMailer(cfg),
		JWTProvider: jwtProvider,
		Resizer:     imaginginfra.NewResizer(),
	}

	var closeStore func(context.Context) error
	switch cfg.DBDriver {
	case config.DriverMongo:
		db, client, err := mongoinfra.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			fatal("mongo", err)
		}
		if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
			fatal("mongo indexes", err)
		}
		deps.UserRepo = mongoinfra.NewUserRepo(db)
		deps.ContactRepo = mongoinfra.NewContactRepo(db)
		closeStore = client.Disconnect
	case config.DriverDynamo:
		// Creates the tables if they don't exist.
		dynamoClient := dynamo.NewClient(awsCfg, cfg)
		dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)
		deps.UserRepo = dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
		deps.ContactRepo = dynamo.NewContactRepo(dynamoClient, cfg.DynamoTables.Contacts)
	default:
		fatal("config", fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv, "db", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "err", err)
	}
	if closeStore != nil {
		if err := closeStore(shutdownCtx); err != nil {
			slog.Warn("store close failed", "err", err)
		}
	}
	slog.Info("server stopped")
}

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var h slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDevelopment() {
		opts.Level = slog.LevelDebug
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

func fatal(component string, err error) {
	slog.Error("startup failed", "component", component, "err", err)
	os.Exit(1)
}
