package console

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/iwtcode/rotaprintAdapter/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/sirupsen/logrus"
)

const eventQueueSize = 64

// Options задает зависимости сессии. Нулевые поля заменяются значениями по умолчанию.
type Options struct {
	Dialer Dialer
	Sink   UISink
	Logger logrus.FieldLogger

	// Page - страница, с которой оператор открыл консоль.
	Page models.Page
	// Scheduler подменяется в тестах. По умолчанию таймеры переносятся в цикл сессии.
	Scheduler         Scheduler
	PrinterCheckDelay time.Duration
}

// Session - одна консоль оператора: соединение, обработчики команд и циклы опроса.
// Все состояние меняется только в горутине Run.
type Session struct {
	ID     uuid.UUID
	logger logrus.FieldLogger

	events chan func()
	done   chan struct{}
	ctx    context.Context

	Conn       *ConnectionManager
	Dispatcher *Dispatcher
	Settings   *Settings
	Poller     *StatusPoller
	Tailer     *LogTailer
	Guard      *SessionGuard
	Printer    *PrinterLink
	Machine    *Machine

	printerDelay time.Duration
}

// NewSession собирает компоненты и регистрирует обработчики всех команд.
func NewSession(opts Options) *Session {
	if opts.Sink == nil {
		opts.Sink = NopSink{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Page == "" {
		opts.Page = models.PageOverview
	}
	if opts.PrinterCheckDelay <= 0 {
		opts.PrinterCheckDelay = PrinterCheckDelay
	}

	id := uuid.New()
	s := &Session{
		ID:           id,
		logger:       opts.Logger.WithField("session", id.String()),
		events:       make(chan func(), eventQueueSize),
		done:         make(chan struct{}),
		ctx:          context.Background(),
		printerDelay: opts.PrinterCheckDelay,
	}

	sched := opts.Scheduler
	if sched == nil {
		sched = &loopScheduler{post: s.post}
	}

	s.Conn = NewConnectionManager(opts.Dialer, opts.Sink, s.post, s.logger)
	s.Dispatcher = NewDispatcher(s.Conn, opts.Sink, s.logger)
	s.Settings = NewSettings(s.Dispatcher, opts.Sink, s.logger)
	s.Poller = NewStatusPoller(s.Dispatcher, opts.Sink, sched, s.Settings, opts.Page, s.logger)
	s.Tailer = NewLogTailer(s.Dispatcher, opts.Sink, sched, s.Settings, s.Poller, s.logger)
	s.Guard = NewSessionGuard(s.Dispatcher, opts.Sink, s.Dispatcher.Lock, s.sessionReady, s.logger)
	s.Printer = NewPrinterLink(s.Dispatcher, opts.Sink, sched, s.logger)
	s.Machine = NewMachine(s.Dispatcher, opts.Sink, s.printStarted, s.logger)

	d := s.Dispatcher
	d.Register(protocol.CmdValueQuery, NewValueRouter(s.Guard, s.Printer, s.logger))
	d.Register(protocol.CmdResetLogCounter, HandlerFunc(func(string) {}))
	d.Register(protocol.CmdFetchSettings, s.Settings.FetchHandler())
	d.Register(protocol.CmdCommitSettings, s.Settings.CommitHandler())
	d.Register(protocol.CmdStatus, s.Poller)
	d.Register(protocol.CmdLogTail, s.Tailer)
	d.Register(protocol.CmdReconnect, s.Printer.ReconnectHandler())
	for cmd, h := range s.Machine.Handlers() {
		d.Register(cmd, h)
	}

	s.Conn.OnMessage(d.Receive)
	s.Conn.OnSessionStarted(s.sessionStarted)
	s.Conn.OnSessionEnded(s.stopLoops)
	return s
}

// Run подключается к бэкенду и обрабатывает события до отмены ctx.
// Вызывается один раз.
func (s *Session) Run(ctx context.Context) error {
	s.ctx = ctx
	s.logger.Info("Session started")
	s.Conn.Connect(ctx)

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			close(s.done)
			s.logger.Info("Session stopped")
			return ctx.Err()
		case f := <-s.events:
			f()
		}
	}
}

// Call выполняет f в цикле сессии и ждет результата.
func (s *Session) Call(ctx context.Context, f func() error) error {
	errc := make(chan error, 1)
	select {
	case s.events <- func() { errc <- f() }:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return apperrors.ErrSessionClosed
	}

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		select {
		case err := <-errc:
			return err
		default:
			return apperrors.ErrSessionClosed
		}
	}
}

// Reconnect - действие оператора "переподключиться". Выполняется в цикле сессии.
func (s *Session) Reconnect() {
	s.stopLoops()
	s.Conn.Reconnect(s.ctx)
}

// Navigate сообщает о переходе оператора на другую страницу.
func (s *Session) Navigate(page models.Page) error {
	if !page.Valid() {
		return &apperrors.ValidationError{Key: "page", Reason: "unknown page " + string(page)}
	}
	if s.Guard.Denied() {
		return apperrors.ErrAccessDenied
	}
	return s.Poller.SetPage(page)
}

func (s *Session) post(f func()) {
	select {
	case s.events <- f:
	case <-s.done:
	}
}

// sessionStarted: новое соединение открыто, сначала проверяем, не открыта ли консоль где-то еще.
func (s *Session) sessionStarted() {
	s.stopLoops()
	s.Dispatcher.Unlock()
	if err := s.Guard.Check(); err != nil {
		s.logger.WithError(err).Error("Session check not sent")
	}
}

// sessionReady запускает стартовую цепочку после проверки сессий.
func (s *Session) sessionReady() {
	steps := []struct {
		name string
		run  func() error
	}{
		{"reset log counter", s.Tailer.SessionStarted},
		{"fetch settings", s.Settings.RequestFetch},
		{"poll status", s.Poller.PollOnce},
		{"tail logs", s.Tailer.Start},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			s.logger.WithError(err).WithField("step", step.name).Error("Startup step failed")
			return
		}
	}
	s.Printer.ScheduleCheck(s.printerDelay)
}

func (s *Session) printStarted() {
	if err := s.Poller.SetPage(models.PageMonitor); err != nil {
		s.logger.WithError(err).Warn("Status poll not sent")
	}
}

func (s *Session) stopLoops() {
	s.Poller.Stop()
	s.Tailer.Stop()
	s.Printer.Stop()
}

func (s *Session) shutdown() {
	s.stopLoops()
	s.Conn.Close()
}
