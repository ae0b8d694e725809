package console

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iwtcode/rotaprintAdapter/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/sirupsen/logrus"
)

const (
	KeyPollingInterval = "polling_interval"
	KeyLogHistory      = "log_history"

	DefaultPollingInterval = 100 * time.Millisecond
	DefaultLogRetention    = 500

	maxLogRetention = math.MaxInt32

	settingFieldPrefix = "setting_"
)

// Settings синхронизирует таблицу настроек бэкенда с локальным черновиком
// и проводит запись изменений в два шага: проверка, затем подтверждение.
type Settings struct {
	send   Sender
	sink   UISink
	logger logrus.FieldLogger

	remote   map[string]string
	draft    map[string]string
	defaults map[string]string
	edited   map[string]bool

	pending   map[string]string
	reviewErr error
}

// NewSettings создает пустой синхронизатор. Таблицы заполняются первым ответом FTS.
func NewSettings(send Sender, sink UISink, logger logrus.FieldLogger) *Settings {
	return &Settings{
		send:   send,
		sink:   sink,
		logger: logger.WithField("component", "settings"),
		remote: make(map[string]string),
		draft:  make(map[string]string),
		edited: make(map[string]bool),
	}
}

// RequestFetch запрашивает актуальную таблицу. Повторные запросы допустимы:
// побеждает последний ответ.
func (s *Settings) RequestFetch() error {
	return s.send.Send(protocol.CmdFetchSettings, "")
}

// OnFetchResult обрабатывает ответ FTS.
// Заводские значения принимаются только из первого ответа сессии,
// поля, уже измененные оператором, не перезаписываются.
func (s *Settings) OnFetchResult(payload string) {
	res, err := protocol.ParseSettingsFetch(payload)
	if err != nil {
		s.logger.WithError(err).Error("Could not parse settings")
		s.sink.Notify(models.Notification{
			Message: "Could not read settings from the backend.",
			Level:   models.LevelDanger,
		})
		return
	}

	s.remote = res.Current
	if s.defaults == nil && res.HasDefaults {
		s.defaults = res.Defaults
	}

	draft := make(map[string]string, len(s.remote))
	for key, value := range s.remote {
		if s.edited[key] {
			draft[key] = s.draft[key]
			continue
		}
		draft[key] = value
	}
	for key := range s.edited {
		if _, ok := draft[key]; !ok {
			draft[key] = s.draft[key]
		}
	}
	s.draft = draft

	for _, key := range protocol.SortedKeys(s.draft) {
		if !s.edited[key] {
			s.sink.SetField(settingFieldPrefix+key, s.draft[key])
		}
	}
	s.publishChanged()
}

// OnFieldEdited фиксирует правку оператора и пересчитывает признак изменения.
func (s *Settings) OnFieldEdited(key, value string) {
	s.draft[key] = value
	s.edited[key] = true
	s.publishChanged()
}

// ResetFieldToDefault подставляет заводское значение и проверяет изменение как при правке.
func (s *Settings) ResetFieldToDefault(key string) error {
	def, ok := s.defaults[key]
	if !ok {
		return fmt.Errorf("reset %s to default: %w", key, apperrors.ErrUnknownKey)
	}
	s.sink.SetField(settingFieldPrefix+key, def)
	s.OnFieldEdited(key, def)
	return nil
}

// Changed сообщает, отличается ли черновик поля от значения бэкенда.
func (s *Settings) Changed(key string) bool {
	return s.draft[key] != s.remote[key]
}

// ChangedKeys возвращает отсортированные ключи измененных полей.
func (s *Settings) ChangedKeys() []string {
	keys := make([]string, 0)
	for _, key := range protocol.SortedKeys(s.draft) {
		if s.Changed(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// ChangedCount возвращает число измененных полей.
func (s *Settings) ChangedCount() int {
	return len(s.ChangedKeys())
}

// RequestReview снимает неизменяемую копию измененных полей.
// Пустые значения помечаются как недопустимые и блокируют подтверждение.
func (s *Settings) RequestReview() (models.Review, error) {
	keys := s.ChangedKeys()

	pending := make(map[string]string, len(keys))
	review := models.Review{Entries: make([]models.ReviewEntry, 0, len(keys))}
	var verrs apperrors.ValidationErrors

	for _, key := range keys {
		value := s.draft[key]
		pending[key] = value

		entry := models.ReviewEntry{Key: key, Current: s.remote[key], Proposed: value}
		if strings.TrimSpace(value) == "" {
			entry.Invalid = true
			verrs = append(verrs, &apperrors.ValidationError{Key: key, Reason: "value is empty"})
		}
		review.Entries = append(review.Entries, entry)
	}

	s.pending = pending
	s.reviewErr = nil
	if len(verrs) > 0 {
		s.reviewErr = verrs
		review.InvalidKeys = verrs.Keys()
		return review, verrs
	}
	review.CanConfirm = len(pending) > 0
	return review, nil
}

// ConfirmCommit отправляет DBS со снимком, сделанным последней проверкой.
func (s *Settings) ConfirmCommit() error {
	if s.pending == nil {
		return apperrors.ErrReviewNeeded
	}
	if s.reviewErr != nil {
		return s.reviewErr
	}
	if len(s.pending) == 0 {
		return apperrors.ErrNothingToSend
	}

	payload, err := protocol.EncodeSettings(s.pending)
	if err != nil {
		return err
	}
	s.logger.WithField("count", len(s.pending)).Info("Committing settings")
	return s.send.Send(protocol.CmdCommitSettings, payload)
}

// CancelReview отбрасывает снимок.
func (s *Settings) CancelReview() {
	s.pending = nil
	s.reviewErr = nil
}

// OnCommitResult обрабатывает ответ DBS: DONE или ERROR.
func (s *Settings) OnCommitResult(status string) {
	switch status {
	case protocol.Done:
		// Поле, исправленное после проверки, остается правкой оператора.
		for key, value := range s.pending {
			if s.draft[key] == value {
				delete(s.edited, key)
			}
		}
		s.pending = nil
		s.reviewErr = nil
		s.sink.Notify(models.Notification{
			Message:  "Database updated successfully!",
			Level:    models.LevelSuccess,
			Duration: 4 * time.Second,
		})
		// Черновик сходится с бэкендом только через повторное чтение.
		if err := s.RequestFetch(); err != nil {
			s.logger.WithError(err).Warn("Could not re-fetch settings after commit")
		}
	case protocol.Error:
		s.sink.Notify(models.Notification{
			Message: "Failed to update database.",
			Level:   models.LevelDanger,
		})
	default:
		s.logger.WithField("status", status).Warn("Unexpected commit status")
	}
}

// DiscardEdits возвращает черновик к значениям бэкенда.
func (s *Settings) DiscardEdits() {
	s.edited = make(map[string]bool)
	s.draft = copyTable(s.remote)
	s.pending = nil
	s.reviewErr = nil
	for _, key := range protocol.SortedKeys(s.draft) {
		s.sink.SetField(settingFieldPrefix+key, s.draft[key])
	}
	s.publishChanged()
}

// Value возвращает значение, подтвержденное бэкендом.
func (s *Settings) Value(key string) (string, bool) {
	v, ok := s.remote[key]
	return v, ok
}

func (s *Settings) Remote() map[string]string   { return copyTable(s.remote) }
func (s *Settings) Draft() map[string]string    { return copyTable(s.draft) }
func (s *Settings) Defaults() map[string]string { return copyTable(s.defaults) }
func (s *Settings) Pending() map[string]string  { return copyTable(s.pending) }

// PollingInterval читает интервал опроса из таблицы при каждом вызове.
func (s *Settings) PollingInterval() time.Duration {
	ms, err := strconv.ParseFloat(s.remote[KeyPollingInterval], 64)
	if err != nil || ms <= 0 {
		return DefaultPollingInterval
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// LogRetention читает предельную длину журнала.
func (s *Settings) LogRetention() int {
	n, err := strconv.ParseFloat(s.remote[KeyLogHistory], 64)
	if err != nil || math.IsNaN(n) || n < 1 {
		return DefaultLogRetention
	}
	if n >= maxLogRetention {
		return maxLogRetention
	}
	return int(n)
}

func (s *Settings) publishChanged() {
	s.sink.SetChanged(s.ChangedCount())
}

// FetchHandler обрабатывает ответы FTS.
func (s *Settings) FetchHandler() Handler {
	return HandlerFunc(s.OnFetchResult)
}

// CommitHandler обрабатывает ответы DBS.
func (s *Settings) CommitHandler() Handler {
	return commitHandler{s}
}

type commitHandler struct{ s *Settings }

func (h commitHandler) Handle(payload string) { h.s.OnCommitResult(payload) }

// RemoteFailed: черновик и снимок остаются, оператор может повторить подтверждение.
func (h commitHandler) RemoteFailed() {
	h.s.logger.WithField("pending", len(h.s.pending)).Warn("Settings commit rejected by backend")
	h.s.OnCommitResult(protocol.Error)
}

func copyTable(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
