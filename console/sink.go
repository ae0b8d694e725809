package console

import "github.com/iwtcode/rotaprintAdapter/models"

// UISink - граница с кодом представления. Ядро только вызывает эти методы
// и никогда не читает состояние разметки напрямую.
type UISink interface {
	Notify(n models.Notification)
	SetField(fieldID, value string)
	SetChanged(count int)
	Redirect(page models.Page)
	AppendLog(added []models.LogEntry, evicted int, scroll bool)
	ConnectionChanged(state models.ConnectionState)
}

// NopSink игнорирует все вызовы. Удобен для клиентов без интерфейса.
type NopSink struct{}

func (NopSink) Notify(models.Notification) {}
func (NopSink) SetField(string, string) {}
func (NopSink) SetChanged(int) {}
func (NopSink) Redirect(models.Page) {}
func (NopSink) AppendLog([]models.LogEntry, int, bool) {}
func (NopSink) ConnectionChanged(models.ConnectionState) {}

var _ UISink = NopSink{}
