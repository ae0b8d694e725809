package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwtcode/rotaprintAdapter/internal/config"
	domain "github.com/iwtcode/rotaprintAdapter/internal/domain/models"
	"github.com/iwtcode/rotaprintAdapter/internal/middleware/logging"
	"github.com/iwtcode/rotaprintAdapter/internal/middleware/swagger"
	"github.com/iwtcode/rotaprintAdapter/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []any
}

type fakeUsecases struct {
	calls  []call
	err    error
	review models.Review
	notes  []domain.RecordedNotification
}

func (f *fakeUsecases) record(name string, args ...any) error {
	f.calls = append(f.calls, call{name, args})
	return f.err
}

func (f *fakeUsecases) GetConnection() (*domain.ConnectionInfo, error) {
	if err := f.record("GetConnection"); err != nil {
		return nil, err
	}
	return &domain.ConnectionInfo{SessionID: "s-1", State: "open", Page: models.PageOverview}, nil
}

func (f *fakeUsecases) Reconnect() error              { return f.record("Reconnect") }
func (f *fakeUsecases) Navigate(page string) error    { return f.record("Navigate", page) }
func (f *fakeUsecases) FetchSettings() error          { return f.record("FetchSettings") }
func (f *fakeUsecases) EditSetting(k, v string) error { return f.record("EditSetting", k, v) }
func (f *fakeUsecases) ResetSetting(k string) error   { return f.record("ResetSetting", k) }
func (f *fakeUsecases) ConfirmSettings() error        { return f.record("ConfirmSettings") }
func (f *fakeUsecases) CancelReview() error           { return f.record("CancelReview") }
func (f *fakeUsecases) DiscardEdits() error           { return f.record("DiscardEdits") }

func (f *fakeUsecases) GetSettings() (*domain.SettingsResponse, error) {
	if err := f.record("GetSettings"); err != nil {
		return nil, err
	}
	return &domain.SettingsResponse{
		Status:  "ok",
		Remote:  map[string]string{"polling_interval": "100"},
		Draft:   map[string]string{"polling_interval": "250"},
		Changed: []string{"polling_interval"},
	}, nil
}

func (f *fakeUsecases) ReviewSettings() (models.Review, error) {
	return f.review, f.record("ReviewSettings")
}

func (f *fakeUsecases) GetStatus() (map[string]string, error) {
	if err := f.record("GetStatus"); err != nil {
		return nil, err
	}
	return map[string]string{"grbl_operation": "Idle"}, nil
}

func (f *fakeUsecases) GetLogs() (*domain.LogsResponse, error) {
	if err := f.record("GetLogs"); err != nil {
		return nil, err
	}
	return &domain.LogsResponse{Status: "ok", Entries: []models.LogEntry{{Message: "boot"}}, Consumed: 1, Visible: true}, nil
}

func (f *fakeUsecases) SetLogVisible(v bool) error { return f.record("SetLogVisible", v) }
func (f *fakeUsecases) UpdateLogViewport(req domain.ViewportRequest) error {
	return f.record("UpdateLogViewport", req)
}
func (f *fakeUsecases) GetNotifications(after uint64) []domain.RecordedNotification {
	_ = f.record("GetNotifications", after)
	return f.notes
}
func (f *fakeUsecases) MachineAction(a string) error      { return f.record("MachineAction", a) }
func (f *fakeUsecases) ChangeBatch(n int) error           { return f.record("ChangeBatch", n) }
func (f *fakeUsecases) RawCommand(l string) error         { return f.record("RawCommand", l) }
func (f *fakeUsecases) RotateTo(p float64) error          { return f.record("RotateTo", p) }
func (f *fakeUsecases) SubmitGCode(p string) error        { return f.record("SubmitGCode", p) }
func (f *fakeUsecases) Print(o models.PrintOptions) error { return f.record("Print", o) }
func (f *fakeUsecases) Manual(c, p string) error          { return f.record("Manual", c, p) }

func newTestRouter(uc *fakeUsecases) http.Handler {
	logger := logging.NewLogger(&logging.Config{Enabled: false}, "test")
	cfg := config.Default()
	cfg.GinMode = "test"
	return ProvideRouter(NewHandler(uc, logger), cfg, &swagger.Config{Enabled: false})
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestRoutesDelegateToUsecases(t *testing.T) {
	uc := &fakeUsecases{}
	r := newTestRouter(uc)

	cases := []struct {
		method, path, body string
		want               call
	}{
		{http.MethodPost, "/api/v1/connect/reconnect", "", call{"Reconnect", nil}},
		{http.MethodPost, "/api/v1/page", `{"page":"monitor"}`, call{"Navigate", []any{"monitor"}}},
		{http.MethodPost, "/api/v1/settings/fetch", "", call{"FetchSettings", nil}},
		{http.MethodPut, "/api/v1/settings/polling_interval", `{"value":"250"}`, call{"EditSetting", []any{"polling_interval", "250"}}},
		{http.MethodPost, "/api/v1/settings/log_history/default", "", call{"ResetSetting", []any{"log_history"}}},
		{http.MethodPost, "/api/v1/settings/confirm", "", call{"ConfirmSettings", nil}},
		{http.MethodPost, "/api/v1/settings/cancel", "", call{"CancelReview", nil}},
		{http.MethodPost, "/api/v1/settings/discard", "", call{"DiscardEdits", nil}},
		{http.MethodPost, "/api/v1/logs/visibility", `{"visible":false}`, call{"SetLogVisible", []any{false}}},
		{http.MethodPost, "/api/v1/logs/viewport", `{"scroll_top":10,"scroll_height":500,"client_height":400}`,
			call{"UpdateLogViewport", []any{domain.ViewportRequest{ScrollTop: 10, ScrollHeight: 500, ClientHeight: 400}}}},
		{http.MethodPost, "/api/v1/machine/home", "", call{"MachineAction", []any{"home"}}},
		{http.MethodPost, "/api/v1/machine/batch", `{"batch":-1}`, call{"ChangeBatch", []any{-1}}},
		{http.MethodPost, "/api/v1/machine/raw", `{"command":"$X"}`, call{"RawCommand", []any{"$X"}}},
		{http.MethodPost, "/api/v1/machine/rotate", `{"position":12.5}`, call{"RotateTo", []any{12.5}}},
		{http.MethodPost, "/api/v1/machine/gcode", `{"program":"G0X1"}`, call{"SubmitGCode", []any{"G0X1"}}},
		{http.MethodPost, "/api/v1/machine/print", `{"radius":"10","length":"20","batch":"1","offset":0.5}`,
			call{"Print", []any{models.PrintOptions{Radius: "10", Length: "20", Batch: "1", Offset: 0.5}}}},
		{http.MethodPost, "/api/v1/machine/command", `{"command":"ECO","payload":"ping"}`, call{"Manual", []any{"ECO", "ping"}}},
	}

	for _, tc := range cases {
		uc.calls = nil
		w, body := do(t, r, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusOK, w.Code, tc.path)
		require.Equal(t, "ok", body["status"], tc.path)
		require.Equal(t, []call{tc.want}, uc.calls, tc.path)
	}
}

func TestReadRoutes(t *testing.T) {
	uc := &fakeUsecases{notes: []domain.RecordedNotification{{ID: 3, Notice: models.Notification{Message: "Connected!"}}}}
	r := newTestRouter(uc)

	w, body := do(t, r, http.MethodGet, "/api/v1/connect", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "s-1", body["connection_info"].(map[string]any)["session_id"])

	w, body = do(t, r, http.MethodGet, "/api/v1/settings", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []any{"polling_interval"}, body["changed"])

	w, body = do(t, r, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Idle", body["fields"].(map[string]any)["grbl_operation"])

	w, body = do(t, r, http.MethodGet, "/api/v1/logs", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["entries"], 1)

	uc.calls = nil
	w, body = do(t, r, http.MethodGet, "/api/v1/notifications?after=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["notifications"], 1)
	require.Equal(t, []call{{"GetNotifications", []any{uint64(2)}}}, uc.calls)

	w, _ = do(t, r, http.MethodGet, "/api/v1/notifications?after=x", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.ErrNotConnected, http.StatusServiceUnavailable},
		{apperrors.ErrAccessDenied, http.StatusForbidden},
		{apperrors.ErrUnknownKey, http.StatusNotFound},
		{apperrors.ErrReviewNeeded, http.StatusConflict},
		{&apperrors.ValidationError{Key: "batch", Reason: "must be between -1 and 4"}, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		r := newTestRouter(&fakeUsecases{err: tc.err})
		w, body := do(t, r, http.MethodPost, "/api/v1/machine/home", "")
		require.Equal(t, tc.code, w.Code, tc.err.Error())
		require.Equal(t, "error", body["status"])
	}
}

func TestBadPayloads(t *testing.T) {
	uc := &fakeUsecases{}
	r := newTestRouter(uc)

	for _, tc := range []struct{ path, body string }{
		{"/api/v1/page", `{}`},
		{"/api/v1/logs/visibility", `{}`},
		{"/api/v1/machine/batch", `{"batch":"two"}`},
		{"/api/v1/machine/rotate", `{}`},
		{"/api/v1/machine/gcode", `{"program":""}`},
		{"/api/v1/machine/command", `not json`},
	} {
		w, _ := do(t, r, http.MethodPost, tc.path, tc.body)
		require.Equal(t, http.StatusBadRequest, w.Code, tc.path)
	}
	require.Empty(t, uc.calls)
}

func TestReviewWithInvalidFields(t *testing.T) {
	uc := &fakeUsecases{
		review: models.Review{
			Entries:     []models.ReviewEntry{{Key: "polling_interval", Current: "100", Proposed: "abc", Invalid: true}},
			InvalidKeys: []string{"polling_interval"},
		},
		err: apperrors.ValidationErrors{{Key: "polling_interval", Reason: "must be a number"}},
	}
	r := newTestRouter(uc)

	w, body := do(t, r, http.MethodPost, "/api/v1/settings/review", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, "invalid", body["status"])
	review := body["review"].(map[string]any)
	require.Equal(t, false, review["can_confirm"])
	require.Equal(t, []any{"polling_interval"}, review["invalid_keys"])

	uc.err = nil
	uc.review = models.Review{CanConfirm: true}
	w, body = do(t, r, http.MethodPost, "/api/v1/settings/review", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, body["review"].(map[string]any)["can_confirm"])
}
