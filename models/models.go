package models

import "time"

// Severity - уровень строки журнала прошивки.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
	SeverityPlain   Severity = "PLAIN"
)

// LogEntry содержит одну строку журнала бэкенда
type LogEntry struct {
	Timestamp string   `json:"timestamp"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
}

// ConnectionState - состояние транспортного соединения с бэкендом.
type ConnectionState int

const (
	StateConnecting ConnectionState = iota
	StateOpen
	StateClosed
	StateErrored
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// Page - страница консоли оператора.
type Page string

const (
	PageOverview     Page = "overview"
	PageMonitor      Page = "monitor"
	PageAccessDenied Page = "access_denied"
)

// Valid сообщает, допустима ли страница для навигации оператора.
func (p Page) Valid() bool {
	return p == PageOverview || p == PageMonitor
}

// Level - оформление уведомления.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Действия, которые UI может предложить оператору вместе с уведомлением
const (
	ActionReconnect        = "reconnect"
	ActionReconnectPrinter = "reconnect_printer"
)

// Notification - всплывающее уведомление для оператора.
// Нулевая длительность означает, что уведомление висит до закрытия.
type Notification struct {
	Message  string        `json:"message"`
	Level    Level         `json:"level"`
	Duration time.Duration `json:"duration"`
	Action   string        `json:"action,omitempty"`
}

// Persistent сообщает, должно ли уведомление оставаться на экране.
func (n Notification) Persistent() bool {
	return n.Duration == 0
}

// ReviewEntry - одна строка таблицы подтверждения изменений настроек.
type ReviewEntry struct {
	Key      string `json:"key"`
	Current  string `json:"current"`
	Proposed string `json:"proposed"`
	Invalid  bool   `json:"invalid"`
}

// Review - снимок изменений, предъявленный оператору перед записью.
type Review struct {
	Entries     []ReviewEntry `json:"entries"`
	CanConfirm  bool          `json:"can_confirm"`
	InvalidKeys []string      `json:"invalid_keys,omitempty"`
}

// PrintOptions содержит параметры задания, отправляемые командой SET
type PrintOptions struct {
	CheckMode bool    `json:"check_mode"`
	ScanMode  bool    `json:"scan_mode"`
	Radius    string  `json:"radius"`
	Length    string  `json:"length"`
	Batch     string  `json:"batch"`
	Offset    float64 `json:"offset"`
}
