package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type settled struct {
	acked    bool
	nacked   bool
	requeued bool
}

type fakeAcknowledger struct {
	settled
}

func (f *fakeAcknowledger) Ack(uint64, bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	return f.Nack(0, false, requeue)
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want settled
	}{
		{"processed", nil, settled{acked: true}},
		{"malformed", fmt.Errorf("decode: %w", ErrMalformed), settled{nacked: true}},
		{"store unavailable", errors.New("mongo down"), settled{nacked: true, requeued: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAcknowledger{}
			d := amqp.Delivery{Acknowledger: ack, DeliveryTag: 7, Body: []byte(`{}`)}

			var got []byte
			Dispatch(context.Background(), d, func(_ context.Context, body []byte) error {
				got = body
				return tt.err
			})

			assert.Equal(t, []byte(`{}`), got)
			assert.Equal(t, tt.want, ack.settled)
		})
	}
}
