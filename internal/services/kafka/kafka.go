package kafka

import (
	"context"

	"github.com/iwtcode/rotaprintAdapter/internal/config"
	"github.com/iwtcode/rotaprintAdapter/internal/interfaces"
	"github.com/iwtcode/rotaprintAdapter/internal/middleware/logging"

	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer создает новый экземпляр продюсера Kafka.
// Если публикация выключена, возвращается продюсер, который ничего не отправляет.
func NewKafkaProducer(cfg *config.AppConfig, logger *logging.Logger) (interfaces.KafkaService, error) {
	if !cfg.Kafka.Enabled {
		logger.Info("Kafka publishing disabled")
		return NopProducer{}, nil
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Kafka.Broker),
		Topic:                  cfg.Kafka.Topic,
		Balancer:               &kafka.Hash{},
		Compression:            compression(cfg.Kafka.Compression),
		AllowAutoTopicCreation: true,
	}
	logger.Info("Kafka producer configured", "broker", cfg.Kafka.Broker, "topic", cfg.Kafka.Topic)
	return &KafkaProducer{writer: writer}, nil
}

// Produce отправляет сообщение в Kafka
func (p *KafkaProducer) Produce(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx,
		kafka.Message{
			Key:   key,
			Value: value,
		},
	)
}

// Close закрывает соединение с Kafka
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NopProducer отбрасывает сообщения.
type NopProducer struct{}

func (NopProducer) Produce(context.Context, []byte, []byte) error { return nil }
func (NopProducer) Close() error                                  { return nil }

func compression(name string) kafka.Compression {
	switch name {
	case "gzip":
		return kafka.Gzip
	case "snappy":
		return kafka.Snappy
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	}
	return 0
}
