package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/iwtcode/rotaprintAdapter/console"
	"github.com/iwtcode/rotaprintAdapter/internal/config"
	domain "github.com/iwtcode/rotaprintAdapter/internal/domain/models"
	"github.com/iwtcode/rotaprintAdapter/internal/interfaces"
	"github.com/iwtcode/rotaprintAdapter/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
	"github.com/iwtcode/rotaprintAdapter/protocol"
)

// Действия станка без параметров
const (
	ActionHome             = "home"
	ActionHold             = "hold"
	ActionRelease          = "release"
	ActionLighting         = "lighting"
	ActionReconnectPrinter = "reconnect"
)

type Usecase struct {
	consoleSvc interfaces.ConsoleService
	timeout    time.Duration
}

func NewUsecase(consoleSvc interfaces.ConsoleService, cfg *config.AppConfig) interfaces.Usecases {
	return &Usecase{
		consoleSvc: consoleSvc,
		timeout:    time.Duration(cfg.Rotaprint.CallTimeoutMs) * time.Millisecond,
	}
}

func (u *Usecase) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), u.timeout)
}

func (u *Usecase) GetConnection() (*domain.ConnectionInfo, error) {
	ctx, cancel := u.ctx()
	defer cancel()

	state, err := u.consoleSvc.GetConnectionState(ctx)
	if err != nil {
		return nil, err
	}
	page, err := u.consoleSvc.GetPage(ctx)
	if err != nil {
		return nil, err
	}
	connected, known, err := u.consoleSvc.GetPrinterState(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.ConnectionInfo{
		SessionID: u.consoleSvc.SessionID(),
		Endpoint:  u.consoleSvc.Endpoint(),
		State:     state.String(),
		Page:      page,
		Printer:   domain.PrinterState{Connected: connected, Known: known},
	}, nil
}

func (u *Usecase) Reconnect() error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.Reconnect(ctx)
}

func (u *Usecase) Navigate(page string) error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.Navigate(ctx, models.Page(strings.ToLower(strings.TrimSpace(page))))
}

func (u *Usecase) FetchSettings() error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.FetchSettings(ctx)
}

func (u *Usecase) GetSettings() (*domain.SettingsResponse, error) {
	ctx, cancel := u.ctx()
	defer cancel()

	snap, err := u.consoleSvc.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.SettingsResponse{
		Status:   "ok",
		Remote:   snap.Remote,
		Draft:    snap.Draft,
		Defaults: snap.Defaults,
		Changed:  snap.Changed,
		Pending:  snap.Pending,
	}, nil
}

func (u *Usecase) EditSetting(key, value string) error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.EditSetting(ctx, key, value)
}

func (u *Usecase) ResetSetting(key string) error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.ResetSetting(ctx, key)
}

func (u *Usecase) ReviewSettings() (models.Review, error) {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.ReviewSettings(ctx)
}

func (u *Usecase) ConfirmSettings() error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.ConfirmSettings(ctx)
}

func (u *Usecase) CancelReview() error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.CancelReview(ctx)
}

func (u *Usecase) DiscardEdits() error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.DiscardEdits(ctx)
}

func (u *Usecase) GetStatus() (map[string]string, error) {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.GetStatus(ctx)
}

func (u *Usecase) GetLogs() (*domain.LogsResponse, error) {
	ctx, cancel := u.ctx()
	defer cancel()

	snap, err := u.consoleSvc.GetLogs(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.LogsResponse{
		Status:   "ok",
		Entries:  snap.Entries,
		Consumed: snap.Consumed,
		Visible:  snap.Visible,
	}, nil
}

func (u *Usecase) SetLogVisible(visible bool) error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.SetLogVisible(ctx, visible)
}

func (u *Usecase) UpdateLogViewport(req domain.ViewportRequest) error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.UpdateLogViewport(ctx, console.Viewport{
		ScrollTop:    req.ScrollTop,
		ScrollHeight: req.ScrollHeight,
		ClientHeight: req.ClientHeight,
	})
}

func (u *Usecase) GetNotifications(after uint64) []domain.RecordedNotification {
	return u.consoleSvc.Notifications(after)
}

func (u *Usecase) MachineAction(action string) error {
	ctx, cancel := u.ctx()
	defer cancel()

	switch action {
	case ActionHome:
		return u.consoleSvc.Home(ctx)
	case ActionHold:
		return u.consoleSvc.FeedHold(ctx)
	case ActionRelease:
		return u.consoleSvc.FeedRelease(ctx)
	case ActionLighting:
		return u.consoleSvc.ToggleLighting(ctx)
	case ActionReconnectPrinter:
		return u.consoleSvc.ReconnectPrinter(ctx)
	}
	return &apperrors.ValidationError{Key: "action", Reason: "unknown machine action " + action}
}

func (u *Usecase) ChangeBatch(n int) error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.ChangeBatch(ctx, n)
}

func (u *Usecase) RawCommand(line string) error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.RawCommand(ctx, line)
}

func (u *Usecase) RotateTo(position float64) error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.RotateTo(ctx, position)
}

func (u *Usecase) SubmitGCode(program string) error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.SubmitGCode(ctx, program)
}

func (u *Usecase) Print(opts models.PrintOptions) error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.Print(ctx, opts)
}

func (u *Usecase) Manual(command, payload string) error {
	ctx, cancel := u.ctx()
	defer cancel()
	return u.consoleSvc.Manual(ctx, protocol.Command(strings.ToUpper(strings.TrimSpace(command))), payload)
}
