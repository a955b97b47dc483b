package kafka_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"transportmarket/internal/service/orders"
	"transportmarket/internal/transport/kafka"
)

func noopHandler(context.Context, orders.Event) error { return nil }

func TestNewConsumer_DisabledWithoutConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		brokers []string
		groupID string
		topic   string
	}{
		{"no brokers", nil, "group", "topic"},
		{"blank topic", []string{"localhost:9092"}, "group", " "},
		{"blank group", []string{"localhost:9092"}, "", "topic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := kafka.NewConsumer(tt.brokers, tt.groupID, tt.topic, noopHandler)
			require.NoError(t, err)
			require.Nil(t, c, "consumer must be disabled")
		})
	}
}

func TestConsumer_NilSafe(t *testing.T) {
	t.Parallel()

	var c *kafka.Consumer
	require.NoError(t, c.Run(context.Background()))
	require.NoError(t, c.Close())
}
