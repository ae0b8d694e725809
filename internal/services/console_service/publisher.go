package console_service

import (
	"context"
	"sync"
	"time"

	"github.com/iwtcode/rotaprintAdapter/internal/interfaces"
	"github.com/iwtcode/rotaprintAdapter/internal/middleware/logging"
	"github.com/iwtcode/rotaprintAdapter/models"
)

const (
	publishQueueSize = 256
	publishTimeout   = 5 * time.Second
)

// Типы событий, публикуемых в Kafka
const (
	EventNotification = "notification"
	EventRedirect     = "redirect"
	EventConnection   = "connection"
	EventField        = "field"
)

// Event - событие консоли для внешних систем.
type Event struct {
	Type         string               `json:"type" cbor:"type"`
	SessionID    string               `json:"session_id" cbor:"session_id"`
	Timestamp    time.Time            `json:"timestamp" cbor:"timestamp"`
	Notification *models.Notification `json:"notification,omitempty" cbor:"notification,omitempty"`
	Page         models.Page          `json:"page,omitempty" cbor:"page,omitempty"`
	State        string               `json:"state,omitempty" cbor:"state,omitempty"`
	Field        string               `json:"field,omitempty" cbor:"field,omitempty"`
	Value        string               `json:"value,omitempty" cbor:"value,omitempty"`
}

// Publisher отправляет события в Kafka из отдельной горутины,
// чтобы медленный брокер не задерживал цикл сессии.
type Publisher struct {
	producer interfaces.KafkaService
	encoder  interfaces.EventEncoder
	logger   *logging.Logger

	queue chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

// NewPublisher создает публикатор. Очередь обрабатывается после Start.
func NewPublisher(producer interfaces.KafkaService, encoder interfaces.EventEncoder, logger *logging.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		encoder:  encoder,
		logger:   logger.WithPrefix("PUBLISHER"),
		queue:    make(chan Event, publishQueueSize),
	}
}

// Start запускает отправку событий.
func (p *Publisher) Start() {
	p.wg.Add(1)
	go p.run()
}

// Publish ставит событие в очередь. При переполнении событие отбрасывается.
func (p *Publisher) Publish(ev Event) {
	select {
	case p.queue <- ev:
	default:
		p.logger.Warn("Publish queue is full, dropping event", "type", ev.Type)
	}
}

// Close дожидается отправки оставшихся событий.
func (p *Publisher) Close() {
	p.once.Do(func() {
		close(p.queue)
		p.wg.Wait()
	})
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for ev := range p.queue {
		p.send(ev)
	}
}

func (p *Publisher) send(ev Event) {
	data, err := p.encoder.Encode(ev)
	if err != nil {
		p.logger.Error("Failed to encode event", "type", ev.Type, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.producer.Produce(ctx, []byte(ev.SessionID), data); err != nil {
		p.logger.Warn("Failed to publish event", "type", ev.Type, "error", err)
		return
	}
	p.logger.Debug("Event published", "type", ev.Type, "session", ev.SessionID)
}
