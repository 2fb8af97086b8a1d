package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// AppID tags every message this service publishes.
const AppID = "napkin-dispenser"

// identified is implemented by events that carry their own message id.
// The audit worker stores one document per id, so a redelivered purchase
// event keeps the id of its transaction.
type identified interface {
	MessageID() string
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher implements gateway.EventPublisher on an AMQP channel.
type Publisher struct {
	channel channel
	now     func() time.Time
}

func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{channel: ch, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	msg, err := p.message(routingKey, body)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx,
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	log.Debug().
		Str("exchange", exchange).
		Str("routing_key", routingKey).
		Str("message_id", msg.MessageId).
		Msg("event published")
	return nil
}

func (p *Publisher) message(routingKey string, body interface{}) (amqp.Publishing, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	id := uuid.NewString()
	if e, ok := body.(identified); ok && e.MessageID() != "" {
		id = e.MessageID()
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    id,
		AppId:        AppID,
		Type:         routingKey,
		Timestamp:    p.now().UTC(),
		Body:         payload,
	}, nil
}
