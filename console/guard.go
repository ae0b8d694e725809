package console

import (
	"strconv"
	"strings"

	"github.com/iwtcode/rotaprintAdapter/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/sirupsen/logrus"
)

const maxGuardAttempts = 3

// SessionGuard не дает открыть консоль в двух местах одновременно.
// До ответа бэкенда о числе соединений остальные стартовые команды не отправляются.
type SessionGuard struct {
	send    Sender
	sink    UISink
	lock    func(reason error)
	onReady func()
	logger  logrus.FieldLogger

	waiting  bool
	attempts int
	denied   bool
}

// NewSessionGuard создает проверку. lock вызывается при отказе,
// onReady - когда сессия единственная.
func NewSessionGuard(send Sender, sink UISink, lock func(error), onReady func(), logger logrus.FieldLogger) *SessionGuard {
	return &SessionGuard{
		send:    send,
		sink:    sink,
		lock:    lock,
		onReady: onReady,
		logger:  logger.WithField("component", "guard"),
	}
}

// Check запрашивает число открытых соединений бэкенда.
func (g *SessionGuard) Check() error {
	g.waiting = true
	g.attempts = 0
	g.denied = false
	return g.query()
}

// Denied сообщает, отказано ли этой сессии в доступе.
func (g *SessionGuard) Denied() bool {
	return g.denied
}

// Waiting сообщает, ждет ли проверка ответа.
func (g *SessionGuard) Waiting() bool {
	return g.waiting
}

// OnReply обрабатывает значение RQV websocket.
func (g *SessionGuard) OnReply(value string) {
	if !g.waiting {
		g.logger.WithField("value", value).Debug("Ignoring unsolicited session count")
		return
	}

	count, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		g.attempts++
		if g.attempts < maxGuardAttempts {
			g.logger.WithField("value", value).Warn("Unreadable session count, asking again")
			if err := g.query(); err != nil {
				g.logger.WithError(err).Warn("Session count query not sent")
			}
			return
		}
		// Без числа соединений доступ не выдается, стартовая цепочка ждет переподключения.
		g.waiting = false
		g.logger.WithField("value", value).Error("Giving up on session count")
		g.lock(apperrors.ErrAccessDenied)
		g.sink.Notify(models.Notification{
			Message: "Could not check whether the console is open elsewhere. Attempt to reconnect?",
			Level:   models.LevelDanger,
			Action:  models.ActionReconnect,
		})
		return
	}

	g.waiting = false
	if count > 1 {
		g.denied = true
		g.logger.WithField("connections", count).Warn("Console is open elsewhere, access denied")
		g.lock(apperrors.ErrAccessDenied)
		g.sink.Redirect(models.PageAccessDenied)
		return
	}

	g.logger.Debug("Didn't find any other connections")
	g.onReady()
}

// RemoteFailed: бэкенд не смог ответить, стартовая цепочка не запускается.
func (g *SessionGuard) RemoteFailed() {
	if g.waiting {
		g.logger.Warn("Session count request failed")
	}
}

func (g *SessionGuard) query() error {
	return g.send.Send(protocol.CmdValueQuery, protocol.VarSessions)
}
