package notification

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/iedc-carmel/club-management-backend/config"
)

// Service dispatches notifications, through Kafka when a producer is
// configured, otherwise by sending directly on a goroutine. Either way
// the caller returns immediately and delivery failures are only logged.
type Service struct {
	email  Channel
	writer *kafka.Writer
}

func NewService(cfg *config.Config, writer *kafka.Writer) *Service {
	return &Service{
		email:  NewEmailSender(cfg),
		writer: writer,
	}
}

// NewServiceWithChannel is used by tests to capture deliveries.
func NewServiceWithChannel(ch Channel) *Service {
	return &Service{email: ch}
}

func (s *Service) Dispatch(ctx context.Context, msg Message) {
	if msg.To == "" {
		return
	}

	if s.writer != nil {
		go s.enqueue(msg)
		return
	}
	go s.deliver(msg)
}

func (s *Service) enqueue(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("⚠️ Failed to encode notification for %s: %v", msg.To, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.To),
		Value: payload,
	})
	if err != nil {
		// Queue troubles must not lose the notification entirely.
		log.Printf("⚠️ Kafka enqueue failed, delivering directly: %v", err)
		s.deliver(msg)
	}
}

func (s *Service) deliver(msg Message) {
	if err := s.email.Send([]string{msg.To}, msg.Subject, msg.Body); err != nil {
		log.Printf("⚠️ Failed to send notification to %s: %v", msg.To, err)
		return
	}
	log.Printf("✅ Notification sent to %s", msg.To)
}
