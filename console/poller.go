package console

import (
	"strings"
	"time"

	"github.com/iwtcode/rotaprintAdapter/models"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/sirupsen/logrus"
)

const (
	FieldOperation = "grbl_operation"

	PhaseIdle  = "Idle"
	PhaseDone  = "Done"
	PhaseRun   = "Run"
	PhaseAlarm = "Alarm"
	PhaseHold  = "Hold"

	fieldAlarmIndicator = "status_alarm"
	fieldGrblIndicator  = "status_grbl"
	fieldCompleteButton = "button_complete"
)

// IntervalSource отдает интервал опроса, прочитанный в момент вызова.
type IntervalSource interface {
	PollingInterval() time.Duration
}

// StatusPoller циклически запрашивает состояние станка и следит,
// чтобы открытая страница соответствовала фазе работы.
type StatusPoller struct {
	send     Sender
	sink     UISink
	interval IntervalSource
	logger   logrus.FieldLogger
	loop     loop

	page     models.Page
	rendered map[string]string
	last     map[string]string
	stopped  bool
}

// NewStatusPoller создает опросчик для страницы page.
func NewStatusPoller(send Sender, sink UISink, sched Scheduler, interval IntervalSource, page models.Page, logger logrus.FieldLogger) *StatusPoller {
	return &StatusPoller{
		send:     send,
		sink:     sink,
		interval: interval,
		logger:   logger.WithField("component", "poller"),
		loop:     loop{sched: sched},
		page:     page,
		rendered: make(map[string]string),
	}
}

// Page возвращает страницу, которую, по мнению ядра, видит оператор.
func (p *StatusPoller) Page() models.Page {
	return p.page
}

// Status возвращает последний полученный снимок состояния.
func (p *StatusPoller) Status() map[string]string {
	return copyTable(p.last)
}

// PollOnce отправляет запрос состояния.
func (p *StatusPoller) PollOnce() error {
	p.stopped = false
	return p.send.Send(protocol.CmdStatus, "")
}

// SetPage вызывается при навигации: отменяет ожидающий тик, сбрасывает
// отрисованные значения и сразу запрашивает состояние для новой страницы.
func (p *StatusPoller) SetPage(page models.Page) error {
	p.loop.cancel()
	p.page = page
	p.rendered = make(map[string]string)
	return p.PollOnce()
}

// Stop отменяет цикл опроса (уход со страницы или завершение сессии).
func (p *StatusPoller) Stop() {
	p.stopped = true
	p.loop.cancel()
}

// Handle обрабатывает ответ GCS.
func (p *StatusPoller) Handle(payload string) {
	status, err := protocol.ParseStatus(payload)
	if err != nil {
		p.logger.WithError(err).Warn("Skipping malformed status")
		p.scheduleNext()
		return
	}
	p.last = status

	phase := status[FieldOperation]
	if target, ok := redirectTarget(p.page, phase); ok {
		p.logger.WithFields(logrus.Fields{"phase": phase, "from": p.page, "to": target}).Info("Redirecting")
		p.sink.Redirect(target)
		p.page = target
		p.rendered = make(map[string]string)
		p.scheduleNext()
		return
	}

	for _, key := range protocol.SortedKeys(status) {
		p.render(key, status[key])
	}
	for key, value := range indicators(phase) {
		p.render(key, value)
	}

	p.scheduleNext()
}

// RemoteFailed: неудачный цикл пропускается, опрос продолжается.
func (p *StatusPoller) RemoteFailed() {
	p.logger.Warn("Status request failed, will retry")
	p.scheduleNext()
}

func (p *StatusPoller) render(key, value string) {
	if prev, ok := p.rendered[key]; ok && prev == value {
		return
	}
	p.rendered[key] = value
	p.sink.SetField(key, value)
}

func (p *StatusPoller) scheduleNext() {
	if p.stopped || p.page != models.PageMonitor {
		return
	}
	p.loop.schedule(p.interval.PollingInterval(), func() {
		if err := p.PollOnce(); err != nil {
			p.logger.WithError(err).Warn("Status poll not sent")
		}
	})
}

// redirectTarget решает, на какую страницу нужно перейти при данной фазе.
func redirectTarget(page models.Page, phase string) (models.Page, bool) {
	if phase == "" {
		return "", false
	}
	idle := phase == PhaseIdle || phase == PhaseDone
	switch {
	case !idle && page == models.PageOverview:
		return models.PageMonitor, true
	case idle && page == models.PageMonitor:
		return models.PageOverview, true
	}
	return "", false
}

// indicators вычисляет производные поля страницы мониторинга.
func indicators(phase string) map[string]string {
	out := map[string]string{
		fieldAlarmIndicator: string(models.LevelSuccess),
	}
	if phase == PhaseAlarm {
		out[fieldAlarmIndicator] = string(models.LevelDanger)
	}

	switch {
	case strings.Contains(phase, PhaseHold):
		out[fieldGrblIndicator] = string(models.LevelWarning)
	case phase == PhaseRun || phase == PhaseDone:
		out[fieldGrblIndicator] = string(models.LevelSuccess)
	default:
		out[fieldGrblIndicator] = ""
	}

	if phase == PhaseDone {
		out[fieldCompleteButton] = "enabled"
	}
	return out
}
