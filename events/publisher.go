// Package events publishes order status changes to Kafka for downstream
// consumers (analytics, notifications). The publisher is optional: when
// no broker is configured the service runs without it.
package events

import (
	"context"
	"encoding/json"
	"strconv"

	"chowline/lifecycle"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher returns nil when broker is empty, which callers of
// lifecycle.SetPublisher treat as "no event sink".
func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	if broker == "" {
		return nil
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish writes one status-change message keyed by order ID, so all
// events for an order land on the same partition in order.
func (p *KafkaPublisher) Publish(ctx context.Context, change lifecycle.StatusChange) error {
	value, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(change.OrderID), 10)),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
