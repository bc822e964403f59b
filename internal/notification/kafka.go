package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter builds the producer for the notification topic.
// Returns nil when no brokers are configured; the dispatcher then
// delivers directly.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	if len(brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

// StartKafkaConsumer runs the notification worker loop until ctx is
// cancelled: reads queued messages and hands them to the service's
// delivery channel.
func StartKafkaConsumer(ctx context.Context, brokers []string, topic string, svc *Service) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: "notification-workers",
		Topic:   topic,
	})

	go func() {
		defer reader.Close()
		log.Printf("📨 Notification consumer started on topic %s", topic)
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("⚠️ Kafka read failed: %v", err)
				continue
			}

			var msg Message
			if err := json.Unmarshal(m.Value, &msg); err != nil {
				log.Printf("⚠️ Dropping malformed notification message: %v", err)
				continue
			}
			svc.deliver(msg)
		}
	}()
}
