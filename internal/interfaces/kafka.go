package interfaces

import (
	"context"
)

// KafkaService определяет контракт для отправки событий консоли во внешние системы
type KafkaService interface {
	Produce(ctx context.Context, key, value []byte) error
	Close() error
}

// EventEncoder сериализует событие перед отправкой в Kafka
type EventEncoder interface {
	Encode(v any) ([]byte, error)
	ContentType() string
}
