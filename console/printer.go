package console

import (
	"time"

	"github.com/iwtcode/rotaprintAdapter/models"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/sirupsen/logrus"
)

const (
	PrinterCheckDelay     = 3 * time.Second
	PrinterReconnectDelay = time.Second
)

// PrinterLink следит за связью бэкенда с прошивкой станка.
type PrinterLink struct {
	send   Sender
	sink   UISink
	logger logrus.FieldLogger
	loop   loop

	known     bool
	connected bool
}

// NewPrinterLink создает монитор связи с принтером.
func NewPrinterLink(send Sender, sink UISink, sched Scheduler, logger logrus.FieldLogger) *PrinterLink {
	return &PrinterLink{
		send:   send,
		sink:   sink,
		logger: logger.WithField("component", "printer"),
		loop:   loop{sched: sched},
	}
}

// Check спрашивает бэкенд, подключен ли принтер.
func (p *PrinterLink) Check() error {
	p.logger.Debug("Checking printer connection...")
	return p.send.Send(protocol.CmdValueQuery, protocol.VarPrinter)
}

// ScheduleCheck откладывает проверку на d.
func (p *PrinterLink) ScheduleCheck(d time.Duration) {
	p.loop.schedule(d, func() {
		if err := p.Check(); err != nil {
			p.logger.WithError(err).Warn("Printer check not sent")
		}
	})
}

// Reconnect просит бэкенд переподключить принтер и через секунду проверяет результат.
func (p *PrinterLink) Reconnect() error {
	if err := p.send.Send(protocol.CmdReconnect, ""); err != nil {
		return err
	}
	p.ScheduleCheck(PrinterReconnectDelay)
	return nil
}

// Connected возвращает последнее известное состояние связи.
// known == false, пока бэкенд ни разу не ответил.
func (p *PrinterLink) Connected() (connected, known bool) {
	return p.connected, p.known
}

// Stop отменяет отложенную проверку.
func (p *PrinterLink) Stop() {
	p.loop.cancel()
}

// OnReply обрабатывает значение RQV grbl.
func (p *PrinterLink) OnReply(value string) {
	switch value {
	case protocol.True:
		p.known, p.connected = true, true
		p.sink.Notify(models.Notification{
			Message:  "Printer connected successfully!",
			Level:    models.LevelSuccess,
			Duration: 4 * time.Second,
		})
	case protocol.False:
		p.known, p.connected = true, false
		p.sink.Notify(models.Notification{
			Message: "Could not connect to printer... Retry?",
			Level:   models.LevelDanger,
			Action:  models.ActionReconnectPrinter,
		})
	default:
		p.logger.WithField("value", value).Warn("Unexpected printer state")
	}
}

// ReconnectHandler обрабатывает ответ RCN.
func (p *PrinterLink) ReconnectHandler() Handler {
	return HandlerFunc(func(payload string) {
		p.logger.WithField("result", payload).Info("Printer reconnect requested")
	})
}

// ValueRouter разбирает ответ RQV и передает значение владельцу переменной.
type ValueRouter struct {
	guard   *SessionGuard
	printer *PrinterLink
	logger  logrus.FieldLogger
}

// NewValueRouter создает обработчик RQV.
func NewValueRouter(guard *SessionGuard, printer *PrinterLink, logger logrus.FieldLogger) *ValueRouter {
	return &ValueRouter{guard: guard, printer: printer, logger: logger.WithField("component", "values")}
}

// Handle обрабатывает ответ RQV.
func (r *ValueRouter) Handle(payload string) {
	variable, value, err := protocol.ParseValueReply(payload)
	if err != nil {
		r.logger.WithError(err).Warn("Dropping malformed value reply")
		return
	}
	switch variable {
	case protocol.VarSessions:
		r.guard.OnReply(value)
	case protocol.VarPrinter:
		r.printer.OnReply(value)
	default:
		r.logger.WithField("variable", variable).Warn("Reply for unknown variable")
	}
}

// RemoteFailed передает сбой проверке сессий.
func (r *ValueRouter) RemoteFailed() {
	r.guard.RemoteFailed()
}
