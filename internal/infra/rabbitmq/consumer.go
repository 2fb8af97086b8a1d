package rabbitmq

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// ErrMalformed marks a message that can never be processed. It is dropped
// instead of requeued.
var ErrMalformed = errors.New("malformed message")

// Handler processes one message body.
type Handler func(ctx context.Context, body []byte) error

type Consumer struct {
	channel *amqp.Channel
	queue   string
	tag     string
}

func NewConsumer(ch *amqp.Channel, queue, tag string) *Consumer {
	return &Consumer{channel: ch, queue: queue, tag: tag}
}

// Run consumes with manual acks and prefetch 1 until ctx is cancelled or the
// channel closes.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		c.tag,   // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	notifyClose := c.channel.NotifyClose(make(chan *amqp.Error, 1))

	log.Info().Str("queue", c.queue).Msg("worker started, waiting for messages")
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-notifyClose:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			Dispatch(ctx, d, handler)
		}
	}
}

// Dispatch runs handler on a delivery and settles it: ack on success,
// nack without requeue for ErrMalformed, nack with requeue otherwise.
func Dispatch(ctx context.Context, d amqp.Delivery, handler Handler) {
	err := handler(ctx, d.Body)
	switch {
	case err == nil:
		if err := d.Ack(false); err != nil {
			log.Error().Err(err).Msg("failed to ack message")
		}
	case errors.Is(err, ErrMalformed):
		log.Warn().Err(err).Bytes("body", d.Body).Msg("dropping malformed message")
		if err := d.Nack(false, false); err != nil {
			log.Error().Err(err).Msg("failed to nack message")
		}
	default:
		log.Error().Err(err).Msg("failed to process message, requeueing")
		if err := d.Nack(false, true); err != nil {
			log.Error().Err(err).Msg("failed to nack message")
		}
	}
}
