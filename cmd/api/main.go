package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"imgstudio/internal/adapters/eventbroker/nats"
	"imgstudio/internal/adapters/generation/vertex"
	"imgstudio/internal/adapters/handlers/http/chi"
	generationhandler "imgstudio/internal/adapters/handlers/http/chi/v1/generation"
	handoffhandler "imgstudio/internal/adapters/handlers/http/chi/v1/handoff"
	libraryhandler "imgstudio/internal/adapters/handlers/http/chi/v1/library"
	"imgstudio/internal/adapters/metrics/prometheus"
	"imgstudio/internal/adapters/repository/mongodb"
	"imgstudio/internal/adapters/repository/postgres"
	"imgstudio/internal/adapters/storage/cache"
	"imgstudio/internal/adapters/storage/minio"
	"imgstudio/internal/config"
	"imgstudio/internal/core/domain"
	"imgstudio/internal/core/port"
	"imgstudio/internal/core/service/generation"
	"imgstudio/internal/core/service/handoff"
	"imgstudio/internal/core/service/library"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	mediaRoots := domain.MediaRoots(cfg.Storage.Bucket, cfg.Generation.OutputURIPrefix)
	cfg.Library.MediaRoots = mediaRoots
	cfg.Generation.MediaRoots = mediaRoots

	//metadata store
	repo, closeRepo, err := initMetadataStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to init metadata store", "store", cfg.Metadata.Store, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Error("failed to close metadata store", "error", err)
		}
	}()
	logger.Info("metadata store connection established", "store", cfg.Metadata.Store)

	//storage
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to init storage", "error", err)
		os.Exit(1)
	}
	storage := cache.NewSignedURLCache(minioAdapter, cfg.Storage.SignedURLCacheSize, cfg.Storage.SignedURLCacheTTL)

	//events
	var publisher port.EventPublisher = port.NopPublisher{}
	if cfg.NATS.Enabled() {
		natsPublisher, err := nats.NewNATSPublisher(ctx, cfg.NATS, logger)
		if err != nil {
			logger.Error("failed to init NATS publisher", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := natsPublisher.Close(); err != nil {
				logger.Error("failed to close NATS publisher", "error", err)
			}
		}()
		publisher = natsPublisher
		logger.Info("NATS publisher initialized")
	} else {
		logger.Warn("NATS_URL not set, storage cleanup retries are disabled")
	}

	metrics, err := prometheus.NewMetrics(nil)
	if err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	genClient, err := vertex.NewClient(ctx, cfg.Generation, logger)
	if err != nil {
		logger.Error("failed to init generation client", "error", err)
		os.Exit(1)
	}

	//services
	libraryService := library.NewLibraryService(repo, storage, publisher, metrics, logger, cfg.Library)
	browserSessions := library.NewSessions(libraryService, cfg.Library.MaxSessions, cfg.Library.SessionTTL)
	generationService := generation.NewGenerationService(genClient, storage, publisher, metrics, logger, cfg.Generation, cfg.Polling)
	defer generationService.Close()
	handoffStore := handoff.NewHandoffStore(cfg.Handoff.MaxUsers, cfg.Handoff.TTL)

	//http
	router := chi.NewRouter(logger, cfg.Env, cfg.Identity, chi.Handlers{
		Library:    libraryhandler.NewLibraryHandlerV1(libraryService, browserSessions, logger),
		Generation: generationhandler.NewGenerationHandlerV1(generationService, logger),
		Handoff:    handoffhandler.NewHandoffHandlerV1(handoffStore, logger),
		Metrics:    prometheus.Handler(),
	})
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initMetadataStore(ctx context.Context, cfg *config.Config) (port.MediaRepository, func() error, error) {
	switch cfg.Metadata.Store {
	case "postgres":
		db, err := initDB(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewSqlMediaRepository(db), db.Close, nil
	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		closeClient := func() error { return client.Disconnect(context.Background()) }

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			_ = closeClient()
			return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
		}

		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		repo, err := mongodb.NewMongoMediaRepository(ctx, coll)
		if err != nil {
			_ = closeClient()
			return nil, nil, err
		}
		return repo, closeClient, nil
	default:
		return nil, nil, fmt.Errorf("unknown metadata store %q", cfg.Metadata.Store)
	}
}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}
