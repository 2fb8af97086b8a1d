package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/config"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/mongodb"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/rabbitmq"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/logger"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/worker"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
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

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.ConnectionURI()))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create MongoDB client")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Msg("MongoDB is not responding")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")
	auditRepo := mongodb.NewAuditRepository(mongoClient, cfg.Mongo.Database)

	rabbitConn, err := amqp.DialConfig(cfg.RabbitMQ.URL(), amqp.Config{
		Properties: amqp.Table{"connection_name": "napkin-dispenser-audit-worker"},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rabbitConn.Close()

	ch, err := rabbitConn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open RabbitMQ channel")
	}
	defer ch.Close()

	q, err := rabbitmq.DeclareBoundQueue(ch, usecase.EventsExchange, rabbitmq.AuditQueue, rabbitmq.AuditBindingKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up audit queue")
	}

	consumer := rabbitmq.NewConsumer(ch, q.Name, "audit-worker")
	if err := consumer.Run(ctx, worker.NewAuditHandler(auditRepo).Handle); err != nil {
		log.Error().Err(err).Msg("consumer stopped")
		return
	}
	log.Info().Msg("worker shut down")
}
