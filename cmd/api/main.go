// @title           Social Network API
// @version         1.0
// @description     Accounts, follow graph, posts, likes, comments and feeds.
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Sirpyerre/social-network/internal/api"
	"github.com/Sirpyerre/social-network/internal/api/handler"
	"github.com/Sirpyerre/social-network/internal/core/ports"
	"github.com/Sirpyerre/social-network/internal/core/service"
	"github.com/Sirpyerre/social-network/internal/infrastructure/config"
	"github.com/Sirpyerre/social-network/internal/infrastructure/db/memory"
	"github.com/Sirpyerre/social-network/internal/infrastructure/db/mongo"
	"github.com/Sirpyerre/social-network/internal/infrastructure/db/redis"
	"github.com/Sirpyerre/social-network/internal/infrastructure/queue"
	"github.com/Sirpyerre/social-network/internal/infrastructure/storage"
	"github.com/Sirpyerre/social-network/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		logger.Init(logger.Options{Service: "social-network"})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "social-network",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.DependencyCheck{}

	// --- Persistence ---
	var (
		users ports.UserRepository
		posts ports.PostRepository
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		users, posts = memory.NewUserRepository(), memory.NewPostRepository()
	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		userRepo, postRepo := mongo.NewUserRepository(db), mongo.NewPostRepository(db)
		if err := mongo.EnsureIndexes(ctx, userRepo, postRepo); err != nil {
			return err
		}
		users, posts = userRepo, postRepo
		checks["mongodb"] = func(ctx context.Context) error {
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	}

	// --- Search cache (optional) ---
	var searchCache ports.SearchCache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()

		searchCache = redis.NewSearchCache(rdb, cfg.Redis.CacheTTL)
		checks["redis"] = func(ctx context.Context) error { return pingRedis(ctx, rdb) }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("search cache enabled")
	}

	// --- Activity publishing (optional) ---
	var activity ports.ActivityPublisher = queue.NopPublisher{}
	if cfg.AMQP.URL != "" {
		pub, err := queue.NewAMQPPublisher(queue.AMQPConfig{URL: cfg.AMQP.URL, Queue: cfg.AMQP.Queue})
		if err != nil {
			return err
		}
		defer pub.Close()

		activity = pub
		log.Info().Str("queue", cfg.AMQP.Queue).Msg("activity publishing enabled")
	}

	// --- Media ---
	media := storage.NewLocalStore(cfg.UploadDir)
	releaser := queue.NewDispatcher(cfg.MediaWorkers, media, logger.Component("media_release"))
	releaser.Start(ctx)
	defer releaser.Close()

	// --- Services ---
	svc := api.Services{
		Auth:  service.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL, logger.Component("auth")),
		Users: service.NewUserService(users, media, releaser, activity, logger.Component("users")),
		Posts: service.NewPostService(posts, users, media, releaser, activity, logger.Component("posts")),
		Feeds: service.NewFeedService(posts, users, searchCache, logger.Component("feed")),
	}

	e := api.NewRouter(api.Options{
		JWTSecret: cfg.JWTSecret,
		UploadDir: cfg.UploadDir,
		ClientDir: cfg.ClientDir,
		Checks:    checks,
		Log:       logger.Component("http"),
	}, svc)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func pingRedis(ctx context.Context, rdb *goredis.Client) error {
	return rdb.Ping(ctx).Err()
}
