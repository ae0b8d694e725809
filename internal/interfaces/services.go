package interfaces

import (
	"context"

	rotaprint "github.com/iwtcode/rotaprintAdapter"
	"github.com/iwtcode/rotaprintAdapter/console"
	domain "github.com/iwtcode/rotaprintAdapter/internal/domain/models"
	"github.com/iwtcode/rotaprintAdapter/models"
	"github.com/iwtcode/rotaprintAdapter/protocol"
)

// ConsoleService - сессия консоли оператора поверх websocket-бэкенда.
type ConsoleService interface {
	SessionManager
	SettingsManager
	MachineController

	GetStatus(ctx context.Context) (map[string]string, error)
	GetLogs(ctx context.Context) (*rotaprint.LogSnapshot, error)
	SetLogVisible(ctx context.Context, visible bool) error
	UpdateLogViewport(ctx context.Context, v console.Viewport) error
	Notifications(after uint64) []domain.RecordedNotification
}

// SessionManager управляет соединением и навигацией.
type SessionManager interface {
	Start(ctx context.Context) error
	Stop() error
	SessionID() string
	Endpoint() string
	Reconnect(ctx context.Context) error
	GetConnectionState(ctx context.Context) (models.ConnectionState, error)
	GetPage(ctx context.Context) (models.Page, error)
	Navigate(ctx context.Context, page models.Page) error
	GetPrinterState(ctx context.Context) (connected, known bool, err error)
}

// SettingsManager - редактирование удаленной таблицы настроек.
type SettingsManager interface {
	FetchSettings(ctx context.Context) error
	GetSettings(ctx context.Context) (*rotaprint.SettingsSnapshot, error)
	EditSetting(ctx context.Context, key, value string) error
	ResetSetting(ctx context.Context, key string) error
	ReviewSettings(ctx context.Context) (models.Review, error)
	ConfirmSettings(ctx context.Context) error
	CancelReview(ctx context.Context) error
	DiscardEdits(ctx context.Context) error
}

// MachineController - команды станку.
type MachineController interface {
	Home(ctx context.Context) error
	FeedHold(ctx context.Context) error
	FeedRelease(ctx context.Context) error
	ToggleLighting(ctx context.Context) error
	ReconnectPrinter(ctx context.Context) error
	ChangeBatch(ctx context.Context, n int) error
	RawCommand(ctx context.Context, line string) error
	RotateTo(ctx context.Context, position float64) error
	SubmitGCode(ctx context.Context, program string) error
	Print(ctx context.Context, opts models.PrintOptions) error
	Manual(ctx context.Context, cmd protocol.Command, payload string) error
}
