package console

import (
	"context"
	"errors"
	"time"

	"github.com/iwtcode/rotaprintAdapter/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrConnClosed оборачивается транспортом, когда сервер закрыл соединение штатно.
var ErrConnClosed = errors.New("connection closed by peer")

// Conn - установленное соединение с бэкендом.
type Conn interface {
	ReadMessage() (string, error)
	WriteMessage(text string) error
	Close() error
}

// Dialer открывает новое соединение с бэкендом.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// ConnectionManager владеет жизненным циклом транспорта.
// Все методы, кроме горутин чтения и установки соединения, выполняются в цикле сессии.
// Переподключение выполняется только по запросу оператора.
type ConnectionManager struct {
	dialer Dialer
	sink   UISink
	post   func(func())
	logger logrus.FieldLogger

	state     models.ConnectionState
	conn      Conn
	gen       int
	onMessage func(text string)
	started   []func()
	ended     []func()
}

// NewConnectionManager создает менеджер в состоянии Closed, без уведомлений.
func NewConnectionManager(dialer Dialer, sink UISink, post func(func()), logger logrus.FieldLogger) *ConnectionManager {
	return &ConnectionManager{
		dialer: dialer,
		sink:   sink,
		post:   post,
		logger: logger.WithField("component", "connection"),
		state:  models.StateClosed,
	}
}

// OnSessionStarted подписывает f на вход в состояние Open.
func (m *ConnectionManager) OnSessionStarted(f func()) {
	m.started = append(m.started, f)
}

// OnSessionEnded подписывает f на вход в Closed или Errored.
func (m *ConnectionManager) OnSessionEnded(f func()) {
	m.ended = append(m.ended, f)
}

// OnMessage задает получателя входящих сообщений.
func (m *ConnectionManager) OnMessage(f func(text string)) {
	m.onMessage = f
}

// State возвращает текущее состояние соединения.
func (m *ConnectionManager) State() models.ConnectionState {
	return m.state
}

// Connect начинает установку соединения. Результат возвращается в цикл сессии.
func (m *ConnectionManager) Connect(ctx context.Context) {
	m.gen++
	gen := m.gen
	m.enter(models.StateConnecting, nil)

	go func() {
		conn, err := m.dialer.Dial(ctx)
		m.post(func() {
			if err != nil {
				m.failed(gen, &apperrors.TransportError{Op: "dial", Err: err})
				return
			}
			m.opened(gen, conn)
		})
	}()
}

// Reconnect закрывает текущее соединение и заново входит в Connecting.
func (m *ConnectionManager) Reconnect(ctx context.Context) {
	m.logger.Info("Operator requested reconnect")
	m.drop()
	m.Connect(ctx)
}

// Close закрывает соединение при завершении сессии.
// Штатное завершение не показывает оператору предложение переподключиться.
func (m *ConnectionManager) Close() {
	m.gen++
	m.drop()
	m.transition(models.StateClosed)
}

// Send пишет строку в соединение. Вне состояния Open возвращает ErrNotConnected.
func (m *ConnectionManager) Send(text string) error {
	if m.state != models.StateOpen || m.conn == nil {
		return apperrors.ErrNotConnected
	}
	if err := m.conn.WriteMessage(text); err != nil {
		return &apperrors.TransportError{Op: "write", Err: err}
	}
	return nil
}

func (m *ConnectionManager) opened(gen int, conn Conn) {
	if gen != m.gen {
		_ = conn.Close()
		return
	}
	m.conn = conn
	m.enter(models.StateOpen, nil)

	go m.readLoop(gen, conn)

	for _, f := range m.started {
		f()
	}
}

func (m *ConnectionManager) readLoop(gen int, conn Conn) {
	for {
		text, err := conn.ReadMessage()
		if err != nil {
			m.post(func() { m.lost(gen, err) })
			return
		}
		m.post(func() {
			if gen == m.gen && m.onMessage != nil {
				m.onMessage(text)
			}
		})
	}
}

func (m *ConnectionManager) lost(gen int, err error) {
	if gen != m.gen || m.conn == nil {
		return
	}
	m.drop()
	if errors.Is(err, ErrConnClosed) {
		m.enter(models.StateClosed, nil)
		return
	}
	m.enter(models.StateErrored, &apperrors.TransportError{Op: "read", Err: err})
}

func (m *ConnectionManager) failed(gen int, err error) {
	if gen != m.gen {
		return
	}
	m.enter(models.StateErrored, err)
}

func (m *ConnectionManager) drop() {
	if m.conn != nil {
		if err := m.conn.Close(); err != nil {
			m.logger.WithError(err).Debug("Close connection")
		}
		m.conn = nil
	}
}

// enter выполняет побочные эффекты только при смене состояния.
func (m *ConnectionManager) enter(state models.ConnectionState, err error) {
	if !m.transition(state) {
		return
	}

	switch state {
	case models.StateOpen:
		m.sink.Notify(models.Notification{
			Message:  "Connected!",
			Level:    models.LevelSuccess,
			Duration: 4 * time.Second,
		})
	case models.StateClosed:
		m.sink.Notify(models.Notification{
			Message: "Backend disconnected. Any further changes may not be applied. Attempt to reconnect?",
			Level:   models.LevelDanger,
			Action:  models.ActionReconnect,
		})
	case models.StateErrored:
		m.logger.WithError(err).Error("Connection failed")
		m.sink.Notify(models.Notification{
			Message: "An error occurred while attempting to connect.",
			Level:   models.LevelDanger,
			Action:  models.ActionReconnect,
		})
	}
}

// transition меняет состояние без уведомлений оператору.
// Возвращает false, если состояние не изменилось.
func (m *ConnectionManager) transition(state models.ConnectionState) bool {
	if m.state == state {
		return false
	}
	m.logger.WithFields(logrus.Fields{"from": m.state, "to": state}).Info("Connection state changed")
	m.state = state
	m.sink.ConnectionChanged(state)

	if state == models.StateClosed || state == models.StateErrored {
		for _, f := range m.ended {
			f()
		}
	}
	return true
}
