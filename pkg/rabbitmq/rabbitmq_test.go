package rabbitmq

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	msg, err := newPublishing("65a1b2c3d4e5f6a7b8c9d0e1", map[string]any{"type": "order.created"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	assert.Equal(t, "65a1b2c3d4e5f6a7b8c9d0e1", msg.MessageId)
	assert.False(t, msg.Timestamp.IsZero())

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "order.created", body["type"])
}

func TestNewPublishing_Unmarshalable(t *testing.T) {
	_, err := newPublishing("k", map[string]any{"bad": make(chan int)})
	assert.ErrorContains(t, err, "failed to marshal event")
}

func TestPublishEvent_NoChannel(t *testing.T) {
	c := &Client{}
	err := c.PublishEvent(context.Background(), "k", map[string]any{})
	assert.ErrorContains(t, err, "not available")
}

func TestLogDeliveries(t *testing.T) {
	handle := LogDeliveries(slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NoError(t, handle(amqp.Delivery{Body: []byte(`{"type":"product.created"}`)}))
	assert.Error(t, handle(amqp.Delivery{Body: []byte(`not json`)}))
}
