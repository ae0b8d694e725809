package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/iwtcode/rotaprintAdapter/internal/config"
	"github.com/iwtcode/rotaprintAdapter/internal/interfaces"
)

// JSONEncoder кодирует события в JSON.
type JSONEncoder struct{}

func (JSONEncoder) Encode(v any) ([]byte, error) { return json.Marshal(v) }
func (JSONEncoder) ContentType() string          { return "application/json" }

// CBOREncoder кодирует события детерминированным CBOR (RFC 8949 §4.2).
type CBOREncoder struct {
	mode cbor.EncMode
}

// NewCBOREncoder создает кодировщик с отсортированными ключами и минимальной длиной чисел.
func NewCBOREncoder() (*CBOREncoder, error) {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor encoder: %w", err)
	}
	return &CBOREncoder{mode: mode}, nil
}

func (e *CBOREncoder) Encode(v any) ([]byte, error) { return e.mode.Marshal(v) }
func (e *CBOREncoder) ContentType() string          { return "application/cbor" }

// NewEncoder выбирает кодировщик по конфигурации.
func NewEncoder(cfg *config.AppConfig) (interfaces.EventEncoder, error) {
	switch cfg.Kafka.Encoding {
	case "cbor":
		return NewCBOREncoder()
	case "json", "":
		return JSONEncoder{}, nil
	}
	return nil, fmt.Errorf("unsupported kafka encoding %q", cfg.Kafka.Encoding)
}
