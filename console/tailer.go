package console

import (
	"time"

	"github.com/iwtcode/rotaprintAdapter/models"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/sirupsen/logrus"
)

const (
	scrollThreshold  = 50
	fieldLatestError = "status_latest_error"
)

// TailSettings отдает параметры хвоста журнала, прочитанные в момент вызова.
type TailSettings interface {
	PollingInterval() time.Duration
	LogRetention() int
}

// PageSource сообщает текущую страницу оператора.
type PageSource interface {
	Page() models.Page
}

// Viewport - геометрия панели журнала, которую сообщает UI.
type Viewport struct {
	ScrollTop    float64 `json:"scroll_top"`
	ScrollHeight float64 `json:"scroll_height"`
	ClientHeight float64 `json:"client_height"`
}

// nearBottom сообщает, находится ли панель в пределах порога от низа.
func (v Viewport) nearBottom() bool {
	return v.ScrollHeight-v.ClientHeight < v.ScrollTop+scrollThreshold
}

// LogTailer подтягивает новые строки журнала, классифицирует их
// и держит ограниченный буфер для отображения.
type LogTailer struct {
	send     Sender
	sink     UISink
	settings TailSettings
	pages    PageSource
	logger   logrus.FieldLogger
	loop     loop

	buffer      LogBuffer
	visible     bool
	forceScroll bool
	viewport    Viewport
}

// NewLogTailer создает хвост журнала. Панель изначально видима.
func NewLogTailer(send Sender, sink UISink, sched Scheduler, settings TailSettings, pages PageSource, logger logrus.FieldLogger) *LogTailer {
	return &LogTailer{
		send:        send,
		sink:        sink,
		settings:    settings,
		pages:       pages,
		logger:      logger.WithField("component", "tailer"),
		loop:        loop{sched: sched},
		visible:     true,
		forceScroll: true,
	}
}

// SessionStarted очищает буфер и сбрасывает счетчик журнала на бэкенде.
func (t *LogTailer) SessionStarted() error {
	t.loop.cancel()
	if n := t.buffer.Len(); n > 0 {
		// Строки прошлой сессии уходят из панели целиком.
		t.sink.AppendLog(nil, n, false)
	}
	t.buffer.Reset()
	t.forceScroll = true
	return t.send.Send(protocol.CmdResetLogCounter, "")
}

// Start запускает хвост, если панель открыта.
func (t *LogTailer) Start() error {
	if !t.visible {
		return nil
	}
	return t.RequestMore()
}

// RequestMore запрашивает строки, появившиеся с последней выдачи.
// Смещение хранит бэкенд.
func (t *LogTailer) RequestMore() error {
	return t.send.Send(protocol.CmdLogTail, "")
}

// SetVisible управляет опросом: скрытая панель не опрашивается,
// при повторном открытии журнал прокручивается вниз.
func (t *LogTailer) SetVisible(visible bool) error {
	if visible == t.visible {
		return nil
	}
	t.visible = visible
	if !visible {
		t.loop.cancel()
		return nil
	}
	t.forceScroll = true
	return t.RequestMore()
}

// Visible сообщает, открыта ли панель журнала.
func (t *LogTailer) Visible() bool {
	return t.visible
}

// UpdateViewport запоминает геометрию панели для решения о прокрутке.
func (t *LogTailer) UpdateViewport(v Viewport) {
	t.viewport = v
}

// Entries возвращает содержимое буфера.
func (t *LogTailer) Entries() []models.LogEntry {
	return t.buffer.Entries()
}

// Consumed возвращает число строк, полученных за сессию.
func (t *LogTailer) Consumed() int {
	return t.buffer.Consumed()
}

// Handle обрабатывает порцию журнала (ответ LOG).
func (t *LogTailer) Handle(payload string) {
	t.OnChunk(payload)
}

// OnChunk классифицирует строки, добавляет их в буфер и планирует следующий запрос.
func (t *LogTailer) OnChunk(payload string) {
	lines := protocol.SplitLogChunk(payload)
	added := make([]models.LogEntry, 0, len(lines))

	for _, line := range lines {
		// Тревога прошивки показывается всегда, независимо от видимости панели.
		if protocol.MatchAlarm(line) {
			t.sink.Notify(models.Notification{
				Message: "The firmware is reporting an alarm! Check logs for details",
				Level:   models.LevelDanger,
			})
		}
		if code, ok := protocol.MatchFirmwareError(line); ok && t.pages.Page() == models.PageMonitor {
			t.sink.SetField(fieldLatestError, protocol.DescribeError(code))
		}
		added = append(added, protocol.ParseLogLine(line))
	}

	if len(added) > 0 {
		prev := t.buffer.Len()
		evicted := t.buffer.Append(t.settings.LogRetention(), added...)
		// Порция больше предела: часть новых строк вытеснена сразу.
		if evicted > prev {
			added = added[evicted-prev:]
			evicted = prev
		}
		scroll := t.forceScroll || t.viewport.nearBottom()
		if scroll {
			t.forceScroll = false
		}
		t.sink.AppendLog(added, evicted, scroll)
	}

	t.scheduleNext()
}

// RemoteFailed: порция пропускается, хвост продолжается.
func (t *LogTailer) RemoteFailed() {
	t.logger.Warn("Log request failed, will retry")
	t.scheduleNext()
}

// Stop отменяет ожидающий запрос.
func (t *LogTailer) Stop() {
	t.loop.cancel()
}

func (t *LogTailer) scheduleNext() {
	if !t.visible {
		return
	}
	t.loop.schedule(t.settings.PollingInterval(), func() {
		if err := t.RequestMore(); err != nil {
			t.logger.WithError(err).Warn("Log request not sent")
		}
	})
}
