package rotaprint

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/iwtcode/rotaprintAdapter/console"
	"github.com/iwtcode/rotaprintAdapter/models"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/iwtcode/rotaprintAdapter/transport"
	"github.com/sirupsen/logrus"
)

// Client является основной точкой входа для работы с консолью принтера.
// Все операции выполняются в цикле сессии и безопасны для вызова из любых горутин.
type Client struct {
	session *console.Session
	config  *Config
	logger  *logrus.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// SettingsSnapshot - состояние синхронизатора настроек на момент вызова.
type SettingsSnapshot struct {
	Remote   map[string]string `json:"remote"`
	Draft    map[string]string `json:"draft"`
	Defaults map[string]string `json:"defaults"`
	Changed  []string          `json:"changed"`
	Pending  map[string]string `json:"pending,omitempty"`
}

// LogSnapshot - содержимое буфера журнала.
type LogSnapshot struct {
	Entries  []models.LogEntry `json:"entries"`
	Consumed int               `json:"consumed"`
	Visible  bool              `json:"visible"`
}

// New создает клиента. Соединение открывается в Start.
// sink может быть nil, тогда события интерфейса отбрасываются.
func New(cfg *Config, sink console.UISink) *Client {
	return NewWithDialer(cfg, transport.NewDialer(cfg.URL, cfg.DialTimeout), sink)
}

// NewWithDialer создает клиента поверх произвольного транспорта.
func NewWithDialer(cfg *Config, dialer console.Dialer, sink console.UISink) *Client {
	return NewWithLogger(cfg, dialer, sink, NewLogger(cfg.LogLevel))
}

// NewWithLogger создает клиента, который пишет в уже настроенный логгер.
func NewWithLogger(cfg *Config, dialer console.Dialer, sink console.UISink, logger *logrus.Logger) *Client {
	session := console.NewSession(console.Options{
		Dialer: dialer,
		Sink:   sink,
		Logger: logger,
		Page:   cfg.Page,
	})
	return newClient(cfg, session, logger)
}

func newClient(cfg *Config, session *console.Session, logger *logrus.Logger) *Client {
	return &Client{
		session: session,
		config:  cfg,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// NewLogger настраивает logrus: уровень из строки, "off"/"none" отключают вывод.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()

	if level == "off" || level == "none" {
		logger.SetOutput(io.Discard)
	} else {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		logger.SetLevel(lvl)
		logger.SetOutput(os.Stdout)
	}

	// Настраиваем форматтер с понятным форматом времени
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// Start подключается к бэкенду и запускает цикл сессии в фоне.
func (c *Client) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	go func() {
		defer close(c.done)
		if err := c.session.Run(ctx); err != nil && ctx.Err() == nil {
			c.logger.WithError(err).Error("Session loop stopped")
		}
	}()
}

// Close останавливает цикл сессии и закрывает соединение.
func (c *Client) Close() {
	c.once.Do(func() {
		if c.cancel == nil {
			return
		}
		c.cancel()
		<-c.done
	})
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger
}

// SessionID возвращает идентификатор сессии консоли.
func (c *Client) SessionID() string {
	return c.session.ID.String()
}

func (c *Client) do(ctx context.Context, f func() error) error {
	return c.session.Call(ctx, f)
}

// Reconnect переподключается к бэкенду по запросу оператора.
func (c *Client) Reconnect(ctx context.Context) error {
	return c.do(ctx, func() error {
		c.session.Reconnect()
		return nil
	})
}

// GetConnectionState возвращает состояние соединения.
func (c *Client) GetConnectionState(ctx context.Context) (models.ConnectionState, error) {
	var state models.ConnectionState
	err := c.do(ctx, func() error {
		state = c.session.Conn.State()
		return nil
	})
	return state, err
}

// Navigate сообщает о переходе оператора на страницу.
func (c *Client) Navigate(ctx context.Context, page models.Page) error {
	return c.do(ctx, func() error { return c.session.Navigate(page) })
}

// GetPage возвращает текущую страницу консоли.
func (c *Client) GetPage(ctx context.Context) (models.Page, error) {
	var page models.Page
	err := c.do(ctx, func() error {
		if c.session.Guard.Denied() {
			page = models.PageAccessDenied
			return nil
		}
		page = c.session.Poller.Page()
		return nil
	})
	return page, err
}

// FetchSettings запрашивает таблицу настроек.
func (c *Client) FetchSettings(ctx context.Context) error {
	return c.do(ctx, c.session.Settings.RequestFetch)
}

// GetSettings возвращает снимок настроек.
func (c *Client) GetSettings(ctx context.Context) (*SettingsSnapshot, error) {
	var snap *SettingsSnapshot
	err := c.do(ctx, func() error {
		s := c.session.Settings
		snap = &SettingsSnapshot{
			Remote:   s.Remote(),
			Draft:    s.Draft(),
			Defaults: s.Defaults(),
			Changed:  s.ChangedKeys(),
			Pending:  s.Pending(),
		}
		return nil
	})
	return snap, err
}

// EditSetting фиксирует правку поля.
func (c *Client) EditSetting(ctx context.Context, key, value string) error {
	return c.do(ctx, func() error {
		c.session.Settings.OnFieldEdited(key, value)
		return nil
	})
}

// ResetSetting возвращает полю заводское значение.
func (c *Client) ResetSetting(ctx context.Context, key string) error {
	return c.do(ctx, func() error { return c.session.Settings.ResetFieldToDefault(key) })
}

// ReviewSettings снимает копию изменений для подтверждения.
// При недопустимых полях возвращает и Review, и ValidationErrors.
func (c *Client) ReviewSettings(ctx context.Context) (models.Review, error) {
	var review models.Review
	var reviewErr error
	err := c.do(ctx, func() error {
		review, reviewErr = c.session.Settings.RequestReview()
		return nil
	})
	if err != nil {
		return review, err
	}
	return review, reviewErr
}

// ConfirmSettings отправляет проверенные изменения.
func (c *Client) ConfirmSettings(ctx context.Context) error {
	return c.do(ctx, c.session.Settings.ConfirmCommit)
}

// CancelReview отменяет подтверждение.
func (c *Client) CancelReview(ctx context.Context) error {
	return c.do(ctx, func() error {
		c.session.Settings.CancelReview()
		return nil
	})
}

// DiscardEdits отбрасывает несохраненные правки.
func (c *Client) DiscardEdits(ctx context.Context) error {
	return c.do(ctx, func() error {
		c.session.Settings.DiscardEdits()
		return nil
	})
}

// GetStatus возвращает последний снимок состояния станка.
func (c *Client) GetStatus(ctx context.Context) (map[string]string, error) {
	var status map[string]string
	err := c.do(ctx, func() error {
		status = c.session.Poller.Status()
		return nil
	})
	return status, err
}

// GetLogs возвращает буфер журнала.
func (c *Client) GetLogs(ctx context.Context) (*LogSnapshot, error) {
	var snap *LogSnapshot
	err := c.do(ctx, func() error {
		t := c.session.Tailer
		snap = &LogSnapshot{Entries: t.Entries(), Consumed: t.Consumed(), Visible: t.Visible()}
		return nil
	})
	return snap, err
}

// SetLogVisible открывает или скрывает панель журнала.
func (c *Client) SetLogVisible(ctx context.Context, visible bool) error {
	return c.do(ctx, func() error { return c.session.Tailer.SetVisible(visible) })
}

// UpdateLogViewport передает геометрию панели журнала.
func (c *Client) UpdateLogViewport(ctx context.Context, v console.Viewport) error {
	return c.do(ctx, func() error {
		c.session.Tailer.UpdateViewport(v)
		return nil
	})
}

func (c *Client) Home(ctx context.Context) error        { return c.do(ctx, c.session.Machine.Home) }
func (c *Client) FeedHold(ctx context.Context) error    { return c.do(ctx, c.session.Machine.FeedHold) }
func (c *Client) FeedRelease(ctx context.Context) error { return c.do(ctx, c.session.Machine.FeedRelease) }

// ToggleLighting переключает подсветку.
func (c *Client) ToggleLighting(ctx context.Context) error {
	return c.do(ctx, c.session.Machine.ToggleLighting)
}

// ChangeBatch выбирает позицию партии (-1..4).
func (c *Client) ChangeBatch(ctx context.Context, n int) error {
	return c.do(ctx, func() error { return c.session.Machine.ChangeBatch(n) })
}

// RawCommand отправляет строку прошивке.
func (c *Client) RawCommand(ctx context.Context, line string) error {
	return c.do(ctx, func() error { return c.session.Machine.RawCommand(line) })
}

// RotateTo поворачивает деталь по оси Y.
func (c *Client) RotateTo(ctx context.Context, position float64) error {
	return c.do(ctx, func() error { return c.session.Machine.RotateTo(position) })
}

// SubmitGCode загружает программу.
func (c *Client) SubmitGCode(ctx context.Context, program string) error {
	return c.do(ctx, func() error { return c.session.Machine.SubmitGCode(program) })
}

// Print запускает печать с заданными параметрами.
func (c *Client) Print(ctx context.Context, opts models.PrintOptions) error {
	return c.do(ctx, func() error { return c.session.Machine.Print(opts) })
}

// Manual отправляет произвольную известную команду.
func (c *Client) Manual(ctx context.Context, cmd protocol.Command, payload string) error {
	return c.do(ctx, func() error { return c.session.Machine.Manual(cmd, payload) })
}

// ReconnectPrinter просит бэкенд переподключить прошивку.
func (c *Client) ReconnectPrinter(ctx context.Context) error {
	return c.do(ctx, c.session.Printer.Reconnect)
}

// GetPrinterState возвращает последнее известное состояние связи с принтером.
func (c *Client) GetPrinterState(ctx context.Context) (connected, known bool, err error) {
	err = c.do(ctx, func() error {
		connected, known = c.session.Printer.Connected()
		return nil
	})
	return connected, known, err
}
