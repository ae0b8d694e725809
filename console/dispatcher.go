package console

import (
	"errors"

	"github.com/iwtcode/rotaprintAdapter/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/sirupsen/logrus"
)

// Handler обрабатывает полезную нагрузку ответа своей команды.
// Обработчик не возвращает ошибок: о проблемах он сообщает через UISink сам.
type Handler interface {
	Handle(payload string)
}

// HandlerFunc позволяет использовать функцию как Handler.
type HandlerFunc func(payload string)

func (f HandlerFunc) Handle(payload string) { f(payload) }

// RemoteErrorObserver реализуется обработчиками, которым нужно восстановиться
// после ответа ERROR (например, продолжить цикл опроса).
type RemoteErrorObserver interface {
	RemoteFailed()
}

// Sender отправляет команду на бэкенд.
type Sender interface {
	Send(cmd protocol.Command, payload string) error
}

// Dispatcher маршрутизирует входящие конверты по коду команды
// и сериализует исходящие.
type Dispatcher struct {
	conn     *ConnectionManager
	sink     UISink
	logger   logrus.FieldLogger
	handlers map[protocol.Command]Handler
	locked   error
}

// NewDispatcher создает диспетчер поверх менеджера соединения.
func NewDispatcher(conn *ConnectionManager, sink UISink, logger logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		conn:     conn,
		sink:     sink,
		logger:   logger.WithField("component", "dispatcher"),
		handlers: make(map[protocol.Command]Handler),
	}
}

// Register назначает обработчик команде. Повторная регистрация заменяет прежний.
func (d *Dispatcher) Register(cmd protocol.Command, h Handler) {
	d.handlers[cmd] = h
}

// Lock запрещает дальнейшую отправку команд в этой сессии.
func (d *Dispatcher) Lock(reason error) {
	d.locked = reason
}

// Unlock снимает запрет. Вызывается в начале новой сессии.
func (d *Dispatcher) Unlock() {
	d.locked = nil
}

// Send кодирует конверт и отправляет его в соединение.
func (d *Dispatcher) Send(cmd protocol.Command, payload string) error {
	if d.locked != nil {
		return d.locked
	}
	wire, err := protocol.Encode(cmd, payload)
	if err != nil {
		return err
	}
	if err := d.conn.Send(wire); err != nil {
		return err
	}
	if cmd != protocol.CmdLogTail && cmd != protocol.CmdStatus {
		d.logger.WithFields(logrus.Fields{"command": cmd, "payload": shorten(payload)}).Debug("WSKT <")
	}
	return nil
}

// Receive разбирает сырое сообщение. Неверный конверт журналируется и отбрасывается.
func (d *Dispatcher) Receive(raw string) {
	env, err := protocol.Decode(raw)
	if err != nil {
		var perr *apperrors.ProtocolError
		if errors.As(err, &perr) {
			d.logger.WithError(perr).Warn("Dropping malformed message")
			return
		}
		d.logger.WithError(err).Error("Unexpected decode failure")
		return
	}
	d.Dispatch(env)
}

// Dispatch передает конверт обработчику.
// Ответ ERROR превращается в общее уведомление, обработчик команды не вызывается.
func (d *Dispatcher) Dispatch(env protocol.Envelope) {
	if env.Command != protocol.CmdLogTail && env.Command != protocol.CmdStatus {
		d.logger.WithFields(logrus.Fields{"command": env.Command, "payload": shorten(env.Payload)}).Debug("WSKT >")
	}

	h, ok := d.handlers[env.Command]

	if env.Payload == protocol.Error {
		rerr := &apperrors.RemoteError{Command: string(env.Command)}
		d.logger.WithError(rerr).Warn("Backend reported failure")
		d.sink.Notify(models.Notification{
			Message: "An error occurred with command: " + string(env.Command) + ". Check logs for more info.",
			Level:   models.LevelDanger,
		})
		if obs, isObs := h.(RemoteErrorObserver); ok && isObs {
			obs.RemoteFailed()
		}
		return
	}

	if !ok {
		d.logger.WithField("command", env.Command).Warn("No handler for command, dropping")
		return
	}
	h.Handle(env.Payload)
}

func shorten(payload string) string {
	if len(payload) < 50 {
		return payload
	}
	return "(long payload)"
}
