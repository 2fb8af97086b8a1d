package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	AuditQueue      = "audit_queue"
	AuditBindingKey = "transaction.#"
)

// DeclareExchange makes sure the durable topic exchange exists.
func DeclareExchange(ch *amqp.Channel, exchange string) error {
	err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return nil
}

// DeclareBoundQueue declares a durable queue and binds it to the exchange.
func DeclareBoundQueue(ch *amqp.Channel, exchange, queue, bindingKey string) (amqp.Queue, error) {
	if err := DeclareExchange(ch, exchange); err != nil {
		return amqp.Queue{}, err
	}

	q, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	if err := ch.QueueBind(q.Name, bindingKey, exchange, false, nil); err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to bind queue %s: %w", queue, err)
	}
	return q, nil
}
