package mq

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"contactbook/config"
	"contactbook/internal/domain/constants"
	"contactbook/internal/domain/service"
	"contactbook/internal/errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (r *recordingAck) Ack(bool) error {
	r.acked = true

	return nil
}

func (r *recordingAck) Nack(_, requeue bool) error {
	r.nacked = true
	r.requeue = requeue

	return nil
}

func TestSettleMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		handlerErr  error
		wantAck     bool
		wantRequeue bool
	}{
		{name: "success acks", handlerErr: nil, wantAck: true},
		{name: "transient failure requeues", handlerErr: Requeue(errors.New("smtp timeout")), wantRequeue: true},
		{name: "wrapped transient failure requeues", handlerErr: errors.Wrap(Requeue(errors.New("smtp timeout")), "deliver"), wantRequeue: true},
		{name: "permanent failure drops", handlerErr: errors.New("bad payload")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ack := &recordingAck{}
			settleMessage(context.Background(), ack, Message{ID: "1"}, func(context.Context, Message) error {
				return tt.handlerErr
			})

			assert.Equal(t, tt.wantAck, ack.acked)
			assert.Equal(t, !tt.wantAck, ack.nacked)
			assert.Equal(t, tt.wantRequeue, ack.requeue)
		})
	}
}

func TestRequeueNil(t *testing.T) {
	assert.NoError(t, Requeue(nil))
}

func TestHeadersToAttributes(t *testing.T) {
	attrs := headersToAttributes(amqp.Table{
		"request_id": "abc",
		"raw":        []byte("bytes"),
		"count":      int32(3),
	})

	assert.Equal(t, map[string]string{"request_id": "abc", "raw": "bytes", "count": "3"}, attrs)
	assert.Nil(t, headersToAttributes(nil))
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(&config.RabbitMQConfig{})
	assert.Error(t, err)
}

type fakePublisher struct {
	queue  string
	data   []byte
	attrs  map[string]string
	closed bool
}

func (f *fakePublisher) Publish(_ context.Context, queue string, data []byte, attrs map[string]string) (string, error) {
	f.queue, f.data, f.attrs = queue, data, attrs

	return "id-1", nil
}

func (f *fakePublisher) Close() error {
	f.closed = true

	return nil
}

func TestMailPublisher_Send(t *testing.T) {
	fake := &fakePublisher{}
	pub := &mailPublisher{client: fake, queue: "contactbook.mail", logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	msg := &service.MailMessage{RequestID: "r1", Template: service.TemplateResetPassword, Recipient: "bob@example.com"}
	require.NoError(t, pub.Send(context.Background(), msg))

	assert.Equal(t, "contactbook.mail", fake.queue)
	assert.Equal(t, service.TemplateResetPassword, fake.attrs[constants.AttrTemplate])
	assert.Equal(t, "r1", fake.attrs[constants.AttrRequestID])

	var decoded service.MailMessage
	require.NoError(t, json.Unmarshal(fake.data, &decoded))
	assert.Equal(t, msg.Recipient, decoded.Recipient)

	require.NoError(t, pub.Close())
	assert.True(t, fake.closed)
}
