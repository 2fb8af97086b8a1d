package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent []sentMessage
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{exchange, key, msg})
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	at := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, now: func() time.Time { return at }}

	event := usecase.TransactionCreatedEvent{TransactionID: "6f1c1f3e-8a4f-4a7b-9a57-3c0f1d9c2b11", CreditsUsed: 3}
	require.NoError(t, p.Publish(context.Background(), usecase.EventsExchange, usecase.TransactionCreatedRouting, event))

	require.Len(t, ch.sent, 1)
	sent := ch.sent[0]
	assert.Equal(t, "dispenser_events", sent.exchange)
	assert.Equal(t, "transaction.created", sent.key)
	assert.Equal(t, event.TransactionID, sent.msg.MessageId)
	assert.Equal(t, AppID, sent.msg.AppId)
	assert.Equal(t, "transaction.created", sent.msg.Type)
	assert.Equal(t, at, sent.msg.Timestamp)
	assert.Equal(t, uint8(amqp.Persistent), sent.msg.DeliveryMode)
	assert.JSONEq(t, `{"transaction_id":"6f1c1f3e-8a4f-4a7b-9a57-3c0f1d9c2b11","user_id":"","dispenser_id":"","product_id":"","row_number":0,"credits_used":3,"new_balance":0,"status":""}`, string(sent.msg.Body))
}

func TestPublisher_PublishAnonymousEvent(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, now: time.Now}

	require.NoError(t, p.Publish(context.Background(), "x", "dispenser.restocked", map[string]any{"row": 1}))
	require.Len(t, ch.sent, 1)
	_, err := uuid.Parse(ch.sent[0].msg.MessageId)
	assert.NoError(t, err)
}

func TestPublisher_PublishErrors(t *testing.T) {
	p := &Publisher{channel: &fakeChannel{err: amqp.ErrClosed}, now: time.Now}
	err := p.Publish(context.Background(), "x", "transaction.created", map[string]any{})
	assert.True(t, errors.Is(err, amqp.ErrClosed))

	err = p.Publish(context.Background(), "x", "transaction.created", make(chan int))
	assert.ErrorContains(t, err, "failed to marshal")
}
