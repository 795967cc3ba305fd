package queue

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/campusboard/board-service/internal/interfaces"
	"github.com/campusboard/board-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type KafkaConsumer struct {
	Reader      *kafka.Reader
	Handler     interfaces.ConsumerHandler
	ServiceName string
}

func NewKafkaConsumer(broker, topic, groupID, username, password string, handler interfaces.ConsumerHandler) *KafkaConsumer {
	cfg := kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	}

	if username != "" {
		cfg.Dialer = &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
			TLS:       &tls.Config{},
			SASLMechanism: plain.Mechanism{
				Username: username,
				Password: password,
			},
		}
	}

	return &KafkaConsumer{
		Reader:      kafka.NewReader(cfg),
		Handler:     handler,
		ServiceName: "mail-worker",
	}
}

// Listen blocks reading messages until ctx is cancelled. Handler errors are
// logged and the offset is committed anyway; mail delivery is best effort.
func (kc *KafkaConsumer) Listen(ctx context.Context) {
	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.S().Errorw("kafka read error", "service", kc.ServiceName, "error", err)
			continue
		}

		if err := kc.Handler.HandleMessage(string(msg.Key), string(msg.Value)); err != nil {
			logger.S().Errorw("mail event handling failed",
				"service", kc.ServiceName,
				"key", string(msg.Key),
				"error", err,
			)
		}
	}
}

func (kc *KafkaConsumer) Close() error {
	return kc.Reader.Close()
}
