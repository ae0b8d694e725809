package console

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/iwtcode/rotaprintAdapter/models"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/stretchr/testify/require"
)

type tailerFixture struct {
	tailer   *LogTailer
	send     *fakeSender
	sink     *fakeSink
	sched    *manualScheduler
	settings *fixedSettings
}

func newTailerFixture(page models.Page, retention int) *tailerFixture {
	f := &tailerFixture{
		send:     &fakeSender{},
		sink:     newFakeSink(),
		sched:    &manualScheduler{},
		settings: &fixedSettings{interval: 100 * time.Millisecond, retention: retention},
	}
	f.tailer = NewLogTailer(f.send, f.sink, f.sched, f.settings, fixedPage(page), testLogger())
	return f
}

func logChunk(from, to int) string {
	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, fmt.Sprintf("12:00:%02d<~>INFO<~>line %d", i%60, i))
	}
	return strings.Join(lines, protocol.LogLineSeparator)
}

func TestLogBufferRetention(t *testing.T) {
	var b LogBuffer
	entries := make([]models.LogEntry, 0, 8)
	for i := 0; i < 8; i++ {
		entries = append(entries, models.LogEntry{Message: fmt.Sprint(i)})
	}

	evicted := b.Append(5, entries...)
	require.Equal(t, 3, evicted)
	require.Equal(t, 5, b.Len())
	require.Equal(t, 8, b.Consumed())

	got := b.Entries()
	for i, e := range got {
		require.Equal(t, fmt.Sprint(i+3), e.Message)
	}

	require.Equal(t, 2, b.Trim(3))
	require.Equal(t, "5", b.Entries()[0].Message)
	require.Equal(t, 8, b.Consumed())
}

func TestTailerSessionStart(t *testing.T) {
	f := newTailerFixture(models.PageOverview, 10)

	require.NoError(t, f.tailer.SessionStarted())
	require.NoError(t, f.tailer.Start())
	require.Equal(t, []protocol.Command{protocol.CmdResetLogCounter, protocol.CmdLogTail}, f.send.commands())
	require.Equal(t, "", f.send.sent[1].Payload)
}

func TestTailerSessionStartClearsPanel(t *testing.T) {
	f := newTailerFixture(models.PageOverview, 10)
	f.tailer.OnChunk(logChunk(0, 4))
	f.sched.fire()

	require.NoError(t, f.tailer.SessionStarted())
	require.Empty(t, f.tailer.Entries())
	require.Equal(t, 0, f.tailer.Consumed())

	last := f.sink.appends[len(f.sink.appends)-1]
	require.Empty(t, last.Added)
	require.Equal(t, 4, last.Evicted)

	// Пустой буфер не порождает лишних вызовов.
	n := len(f.sink.appends)
	require.NoError(t, f.tailer.SessionStarted())
	require.Len(t, f.sink.appends, n)
}

func TestTailerAppendsAndTrims(t *testing.T) {
	f := newTailerFixture(models.PageOverview, 5)

	f.tailer.OnChunk(logChunk(0, 3))
	require.Len(t, f.sink.appends, 1)
	require.Len(t, f.sink.appends[0].Added, 3)
	require.Equal(t, 0, f.sink.appends[0].Evicted)

	f.tailer.OnChunk(logChunk(3, 7))
	require.Len(t, f.sink.appends, 2)
	require.Len(t, f.sink.appends[1].Added, 4)
	require.Equal(t, 2, f.sink.appends[1].Evicted)

	entries := f.tailer.Entries()
	require.Len(t, entries, 5)
	require.Equal(t, "line 2", entries[0].Message)
	require.Equal(t, "line 6", entries[4].Message)
	require.Equal(t, 7, f.tailer.Consumed())
}

func TestTailerChunkLargerThanRetention(t *testing.T) {
	f := newTailerFixture(models.PageOverview, 3)
	f.tailer.OnChunk(logChunk(0, 2))
	f.tailer.OnChunk(logChunk(2, 8))

	last := f.sink.appends[1]
	require.Equal(t, 2, last.Evicted)
	require.Len(t, last.Added, 3)
	require.Equal(t, "line 5", last.Added[0].Message)
	require.Len(t, f.tailer.Entries(), 3)
}

func TestTailerAlarmAlwaysNotifies(t *testing.T) {
	f := newTailerFixture(models.PageOverview, 10)
	require.NoError(t, f.tailer.SetVisible(false))

	f.tailer.OnChunk("12:00:00<~>ERROR<~>ALARM:1")
	require.Len(t, f.sink.notifications, 1)
	require.Equal(t, models.LevelDanger, f.sink.notifications[0].Level)
	require.True(t, f.sink.notifications[0].Persistent())
}

func TestTailerFirmwareErrorOnMonitorOnly(t *testing.T) {
	f := newTailerFixture(models.PageMonitor, 10)
	f.tailer.OnChunk("12:00:00<~>INFO<~>GRBL > error:9")
	require.Equal(t, protocol.DescribeError(9), f.sink.values["status_latest_error"])

	overview := newTailerFixture(models.PageOverview, 10)
	overview.tailer.OnChunk("12:00:00<~>INFO<~>GRBL > error:9")
	_, set := overview.sink.values["status_latest_error"]
	require.False(t, set)
}

func TestTailerAutoScroll(t *testing.T) {
	f := newTailerFixture(models.PageOverview, 100)

	// Первый кусок прокручивается принудительно.
	f.tailer.UpdateViewport(Viewport{ScrollTop: 0, ScrollHeight: 1000, ClientHeight: 200})
	f.tailer.OnChunk(logChunk(0, 1))
	require.True(t, f.sink.appends[0].Scroll)

	// Оператор прокрутил вверх: автопрокрутки нет.
	f.tailer.OnChunk(logChunk(1, 2))
	require.False(t, f.sink.appends[1].Scroll)

	// У самого низа: прокручиваем.
	f.tailer.UpdateViewport(Viewport{ScrollTop: 760, ScrollHeight: 1000, ClientHeight: 200})
	f.tailer.OnChunk(logChunk(2, 3))
	require.True(t, f.sink.appends[2].Scroll)

	// Повторное открытие панели снова заставляет прокрутить.
	f.tailer.UpdateViewport(Viewport{ScrollTop: 0, ScrollHeight: 1000, ClientHeight: 200})
	require.NoError(t, f.tailer.SetVisible(false))
	require.NoError(t, f.tailer.SetVisible(true))
	f.tailer.OnChunk(logChunk(3, 4))
	require.True(t, f.sink.appends[3].Scroll)
	f.tailer.OnChunk(logChunk(4, 5))
	require.False(t, f.sink.appends[4].Scroll)
}

func TestTailerPausesWhileHidden(t *testing.T) {
	f := newTailerFixture(models.PageOverview, 10)

	f.tailer.OnChunk(logChunk(0, 1))
	require.Len(t, f.sched.pending(), 1)

	require.NoError(t, f.tailer.SetVisible(false))
	require.Empty(t, f.sched.pending())

	f.tailer.OnChunk(logChunk(1, 2))
	require.Empty(t, f.sched.pending())
	require.Empty(t, f.send.sent)

	require.NoError(t, f.tailer.SetVisible(true))
	require.Equal(t, []protocol.Command{protocol.CmdLogTail}, f.send.commands())
}

func TestTailerEmptyChunkKeepsPolling(t *testing.T) {
	f := newTailerFixture(models.PageOverview, 10)
	f.tailer.OnChunk("")
	require.Empty(t, f.sink.appends)
	require.Len(t, f.sched.pending(), 1)

	f.sched.fire()
	require.Equal(t, []protocol.Command{protocol.CmdLogTail}, f.send.commands())

	f.tailer.RemoteFailed()
	require.Len(t, f.sched.pending(), 1)
}
