package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/app"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/config"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/auth"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/http/router"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/memory"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/metrics"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/postgres"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/rabbitmq"
	redisInfra "github.com/Faisal-Javaid/napkin-dispenser/internal/infra/redis"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/logger"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Setup("info", "console")
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		repos  app.Repositories
		health func(ctx context.Context) error
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		repos = app.MemoryRepositories(memory.NewStore())
	default:
		dbPool, err := pgxpool.New(ctx, cfg.DB.URL())
		if err != nil {
			log.Fatal().Err(err).Msg("could not create database pool")
		}
		defer dbPool.Close()

		if err := dbPool.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("database is not responding")
		}
		if err := postgres.Migrate(ctx, dbPool); err != nil {
			log.Fatal().Err(err).Msg("failed to apply schema")
		}
		log.Info().Str("host", cfg.DB.Host).Msg("connected to PostgreSQL")

		repos = app.PostgresRepositories(dbPool)
		health = dbPool.Ping
	}

	// Idempotency is disabled when Redis is off or unreachable.
	var idempotencyRepo gateway.IdempotencyRepository
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("could not connect to Redis, idempotency disabled")
		} else {
			log.Info().Str("addr", cfg.Redis.Addr()).Msg("connected to Redis")
			idempotencyRepo = redisInfra.NewIdempotencyRepository(redisClient)
		}
	}

	// Events are best effort: without a broker purchases still commit.
	var eventPublisher gateway.EventPublisher
	if cfg.RabbitMQ.Enabled {
		rabbitConn, err := amqp.DialConfig(cfg.RabbitMQ.URL(), amqp.Config{
			Properties: amqp.Table{"connection_name": "napkin-dispenser-api"},
		})
		if err != nil {
			log.Warn().Err(err).Msg("could not connect to RabbitMQ, events will not be published")
		} else {
			defer rabbitConn.Close()
			ch, err := rabbitConn.Channel()
			if err != nil {
				log.Fatal().Err(err).Msg("failed to open RabbitMQ channel")
			}
			defer ch.Close()

			if err := rabbitmq.DeclareExchange(ch, usecase.EventsExchange); err != nil {
				log.Fatal().Err(err).Msg("failed to declare exchange")
			}
			log.Info().Str("exchange", usecase.EventsExchange).Msg("connected to RabbitMQ")
			eventPublisher = rabbitmq.NewPublisher(ch)
		}
	}

	tokens, err := auth.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid JWT settings")
	}
	promMetrics := metrics.New()

	handlers := app.NewHandlers(repos, app.Services{
		Hasher:    auth.NewBcryptHasher(bcrypt.DefaultCost),
		Tokens:    tokens,
		Publisher: eventPublisher,
		Metrics:   promMetrics,
	})

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: router.New(router.Deps{
			Handlers:    handlers,
			Tokens:      tokens,
			Users:       repos.Users,
			Idempotency: idempotencyRepo,
			Metrics:     promMetrics,
			Timeout:     cfg.RequestTimeout,
			Health:      health,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
