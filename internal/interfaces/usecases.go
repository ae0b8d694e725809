package interfaces

import (
	domain "github.com/iwtcode/rotaprintAdapter/internal/domain/models"
	"github.com/iwtcode/rotaprintAdapter/models"
)

// Usecases - это агрегирующий интерфейс для всех use cases
type Usecases interface {
	GetConnection() (*domain.ConnectionInfo, error)
	Reconnect() error
	Navigate(page string) error

	FetchSettings() error
	GetSettings() (*domain.SettingsResponse, error)
	EditSetting(key, value string) error
	ResetSetting(key string) error
	ReviewSettings() (models.Review, error)
	ConfirmSettings() error
	CancelReview() error
	DiscardEdits() error

	GetStatus() (map[string]string, error)
	GetLogs() (*domain.LogsResponse, error)
	SetLogVisible(visible bool) error
	UpdateLogViewport(req domain.ViewportRequest) error
	GetNotifications(after uint64) []domain.RecordedNotification

	MachineAction(action string) error
	ChangeBatch(n int) error
	RawCommand(line string) error
	RotateTo(position float64) error
	SubmitGCode(program string) error
	Print(opts models.PrintOptions) error
	Manual(command, payload string) error
}
