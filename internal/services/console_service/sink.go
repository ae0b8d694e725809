package console_service

import (
	"sync"
	"time"

	domain "github.com/iwtcode/rotaprintAdapter/internal/domain/models"
	"github.com/iwtcode/rotaprintAdapter/models"
)

const notificationHistory = 50

// fieldLatestError публикуется, остальные поля состояния только запоминаются.
const fieldLatestError = "status_latest_error"

// RecordingSink хранит то, что консоль показала бы оператору, и отдает это HTTP API.
// Уведомления, переходы, смена состояния соединения и последняя ошибка станка
// публикуются в Kafka.
type RecordingSink struct {
	mu        sync.RWMutex
	publisher *Publisher
	sessionID string
	now       func() time.Time

	nextID        uint64
	notifications []domain.RecordedNotification
	fields        map[string]string
	changed       int
	page          models.Page
	state         models.ConnectionState
	logLines      int
	autoScroll    bool
}

// NewRecordingSink создает sink. publisher может быть nil.
func NewRecordingSink(publisher *Publisher) *RecordingSink {
	return &RecordingSink{
		publisher: publisher,
		now:       time.Now,
		fields:    make(map[string]string),
		state:     models.StateClosed,
	}
}

// Bind задает ключ сессии для публикуемых событий.
func (s *RecordingSink) Bind(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = sessionID
}

func (s *RecordingSink) Notify(n models.Notification) {
	s.mu.Lock()
	s.nextID++
	s.notifications = append(s.notifications, domain.RecordedNotification{
		ID:        s.nextID,
		CreatedAt: s.now(),
		Notice:    n,
	})
	if len(s.notifications) > notificationHistory {
		s.notifications = s.notifications[len(s.notifications)-notificationHistory:]
	}
	ev := s.event(EventNotification)
	s.mu.Unlock()

	ev.Notification = &n
	s.publish(ev)
}

func (s *RecordingSink) SetField(fieldID, value string) {
	s.mu.Lock()
	prev, seen := s.fields[fieldID]
	s.fields[fieldID] = value
	ev := s.event(EventField)
	s.mu.Unlock()

	if fieldID != fieldLatestError || (seen && prev == value) {
		return
	}
	ev.Field, ev.Value = fieldID, value
	s.publish(ev)
}

func (s *RecordingSink) SetChanged(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changed = count
}

func (s *RecordingSink) Redirect(page models.Page) {
	s.mu.Lock()
	s.page = page
	ev := s.event(EventRedirect)
	s.mu.Unlock()

	ev.Page = page
	s.publish(ev)
}

func (s *RecordingSink) AppendLog(added []models.LogEntry, evicted int, scroll bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logLines += len(added) - evicted
	if s.logLines < 0 {
		s.logLines = 0
	}
	if len(added) > 0 {
		s.autoScroll = scroll
	}
}

func (s *RecordingSink) ConnectionChanged(state models.ConnectionState) {
	s.mu.Lock()
	if s.state == state {
		s.mu.Unlock()
		return
	}
	s.state = state
	ev := s.event(EventConnection)
	s.mu.Unlock()

	ev.State = state.String()
	s.publish(ev)
}

// Notifications возвращает уведомления с номером больше after.
func (s *RecordingSink) Notifications(after uint64) []domain.RecordedNotification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.RecordedNotification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if n.ID > after {
			out = append(out, n)
		}
	}
	return out
}

// Field возвращает последнее значение поля.
func (s *RecordingSink) Field(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.fields[id]
	return v, ok
}

// Changed возвращает число несохраненных правок на индикаторе.
func (s *RecordingSink) Changed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.changed
}

// RedirectedTo возвращает страницу последнего перехода, пустую если его не было.
func (s *RecordingSink) RedirectedTo() models.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// State возвращает последнее состояние соединения.
func (s *RecordingSink) State() models.ConnectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// LogLines возвращает число строк в панели журнала и признак автопрокрутки.
func (s *RecordingSink) LogLines() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logLines, s.autoScroll
}

// event вызывается под s.mu.
func (s *RecordingSink) event(kind string) Event {
	return Event{Type: kind, SessionID: s.sessionID, Timestamp: s.now()}
}

func (s *RecordingSink) publish(ev Event) {
	if s.publisher != nil {
		s.publisher.Publish(ev)
	}
}
