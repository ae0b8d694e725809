package console_service

import (
	"context"
	"time"

	rotaprint "github.com/iwtcode/rotaprintAdapter"
	"github.com/iwtcode/rotaprintAdapter/console"
	"github.com/iwtcode/rotaprintAdapter/internal/config"
	domain "github.com/iwtcode/rotaprintAdapter/internal/domain/models"
	"github.com/iwtcode/rotaprintAdapter/internal/interfaces"
	"github.com/iwtcode/rotaprintAdapter/internal/middleware/logging"
	"github.com/iwtcode/rotaprintAdapter/models"
	"github.com/iwtcode/rotaprintAdapter/transport"
)

var _ console.UISink = (*RecordingSink)(nil)

// ConsoleService держит единственную сессию консоли и отдает ее HTTP API.
type ConsoleService struct {
	*rotaprint.Client

	sink      *RecordingSink
	publisher *Publisher
	endpoint  string
	logger    *logging.Logger
}

// NewConsoleService создает сессию. Соединение открывается в Start.
func NewConsoleService(cfg *config.AppConfig, producer interfaces.KafkaService, encoder interfaces.EventEncoder, logger *logging.Logger) interfaces.ConsoleService {
	dialTimeout := time.Duration(cfg.Rotaprint.DialTimeoutMs) * time.Millisecond
	return newConsoleService(cfg, transport.NewDialer(cfg.Rotaprint.URL, dialTimeout), producer, encoder, logger)
}

func newConsoleService(cfg *config.AppConfig, dialer console.Dialer, producer interfaces.KafkaService, encoder interfaces.EventEncoder, logger *logging.Logger) *ConsoleService {
	page := models.Page(cfg.Rotaprint.Page)
	if !page.Valid() {
		page = models.PageOverview
	}
	clientCfg := &rotaprint.Config{
		URL:         cfg.Rotaprint.URL,
		DialTimeout: time.Duration(cfg.Rotaprint.DialTimeoutMs) * time.Millisecond,
		Page:        page,
		LogLevel:    cfg.Logging.Level,
	}

	publisher := NewPublisher(producer, encoder, logger)
	sink := NewRecordingSink(publisher)
	client := rotaprint.NewWithLogger(clientCfg, dialer, sink, logger.Base())
	sink.Bind(client.SessionID())

	return &ConsoleService{
		Client:    client,
		sink:      sink,
		publisher: publisher,
		endpoint:  cfg.Rotaprint.URL,
		logger:    logger.WithPrefix("CONSOLE"),
	}
}

// Start запускает публикацию событий и цикл сессии.
// ctx ограничивает только запуск: сессия живет до Stop.
func (s *ConsoleService) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.publisher.Start()
	s.Client.Start(context.Background())
	s.logger.Info("Console session started", "sessionID", s.SessionID(), "endpoint", s.endpoint)
	return nil
}

// Stop закрывает сессию и дожидается отправки событий.
func (s *ConsoleService) Stop() error {
	s.Client.Close()
	s.publisher.Close()
	s.logger.Info("Console session stopped", "sessionID", s.SessionID())
	return nil
}

// Endpoint возвращает адрес бэкенда.
func (s *ConsoleService) Endpoint() string {
	return s.endpoint
}

// Notifications возвращает уведомления с номером больше after.
func (s *ConsoleService) Notifications(after uint64) []domain.RecordedNotification {
	return s.sink.Notifications(after)
}

// Sink возвращает записанное состояние интерфейса.
func (s *ConsoleService) Sink() *RecordingSink {
	return s.sink
}
