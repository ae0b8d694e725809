package console

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/iwtcode/rotaprintAdapter/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/stretchr/testify/require"
)

// runUntil выполняет события цикла, пока cond не станет истинным.
func runUntil(t *testing.T, q *queue, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		if q.drain() == 0 {
			time.Sleep(time.Millisecond)
		}
	}
}

type managerFixture struct {
	manager  *ConnectionManager
	dialer   *fakeDialer
	sink     *fakeSink
	q        *queue
	started  int
	ended    int
	received []string
}

func newManagerFixture(conns ...*fakeConn) *managerFixture {
	f := &managerFixture{
		dialer: &fakeDialer{conns: conns},
		sink:   newFakeSink(),
		q:      &queue{},
	}
	f.manager = NewConnectionManager(f.dialer, f.sink, f.q.post, testLogger())
	f.manager.OnSessionStarted(func() { f.started++ })
	f.manager.OnSessionEnded(func() { f.ended++ })
	f.manager.OnMessage(func(text string) { f.received = append(f.received, text) })
	return f
}

func (f *managerFixture) open(t *testing.T) {
	t.Helper()
	f.manager.Connect(context.Background())
	runUntil(t, f.q, func() bool { return f.manager.State() == models.StateOpen })
}

func (f *managerFixture) countMessage(msg string) int {
	n := 0
	for _, m := range f.sink.messages() {
		if m == msg {
			n++
		}
	}
	return n
}

const disconnectedMessage = "Backend disconnected. Any further changes may not be applied. Attempt to reconnect?"

func TestConnectionOpenFiresSessionStarted(t *testing.T) {
	f := newManagerFixture(newFakeConn())
	require.Equal(t, models.StateClosed, f.manager.State())

	f.open(t)
	require.Equal(t, 1, f.started)
	require.Equal(t, []models.ConnectionState{models.StateConnecting, models.StateOpen}, f.sink.states)
	require.Equal(t, []string{"Connected!"}, f.sink.messages())
}

func TestConnectionSendRequiresOpen(t *testing.T) {
	conn := newFakeConn()
	f := newManagerFixture(conn)

	err := f.manager.Send("x")
	require.True(t, errors.Is(err, apperrors.ErrNotConnected))

	f.open(t)
	require.NoError(t, f.manager.Send("hello"))
	require.Equal(t, []string{"hello"}, conn.written)

	conn.writeErr = errors.New("broken pipe")
	var terr *apperrors.TransportError
	require.True(t, errors.As(f.manager.Send("x"), &terr))
}

func TestConnectionDeliversMessages(t *testing.T) {
	conn := newFakeConn()
	f := newManagerFixture(conn)
	f.open(t)

	conn.incoming <- "one"
	conn.incoming <- "two"
	runUntil(t, f.q, func() bool { return len(f.received) == 2 })
	require.Equal(t, []string{"one", "two"}, f.received)
}

func TestConnectionCloseNotifiesOnce(t *testing.T) {
	conn := newFakeConn()
	f := newManagerFixture(conn)
	f.open(t)

	conn.errc <- fmt.Errorf("going away: %w", ErrConnClosed)
	runUntil(t, f.q, func() bool { return f.manager.State() == models.StateClosed })

	// Повторное событие закрытия не дублирует уведомление.
	f.manager.lost(f.manager.gen, ErrConnClosed)
	f.q.drain()

	require.Equal(t, 1, f.countMessage(disconnectedMessage))
	require.Equal(t, 1, f.ended)
	last := f.sink.notifications[len(f.sink.notifications)-1]
	require.True(t, last.Persistent())
	require.Equal(t, models.ActionReconnect, last.Action)

	// Переподключения без оператора нет.
	require.Equal(t, 1, f.dialer.dials)
	require.True(t, errors.Is(f.manager.Send("x"), apperrors.ErrNotConnected))
}

func TestConnectionReadErrorEntersErrored(t *testing.T) {
	conn := newFakeConn()
	f := newManagerFixture(conn)
	f.open(t)
	require.Equal(t, 0, f.ended)

	conn.errc <- errors.New("connection reset by peer")
	runUntil(t, f.q, func() bool { return f.manager.State() == models.StateErrored })
	require.Contains(t, f.sink.messages(), "An error occurred while attempting to connect.")
	require.Equal(t, 1, f.ended)
}

func TestConnectionCloseIsQuiet(t *testing.T) {
	conn := newFakeConn()
	f := newManagerFixture(conn)
	f.open(t)

	f.manager.Close()
	f.q.drain()
	require.Equal(t, models.StateClosed, f.manager.State())
	require.True(t, conn.closed)
	require.Equal(t, 1, f.ended)
	require.Equal(t, 0, f.countMessage(disconnectedMessage))
	require.Equal(t, []string{"Connected!"}, f.sink.messages())
	require.Equal(t, models.StateClosed, f.sink.states[len(f.sink.states)-1])
}

func TestConnectionDialFailure(t *testing.T) {
	f := newManagerFixture()
	f.dialer.err = errors.New("connection refused")

	f.manager.Connect(context.Background())
	runUntil(t, f.q, func() bool { return f.manager.State() == models.StateErrored })
	require.Equal(t, 0, f.started)
	require.Equal(t, 1, f.dialer.dials)
}

func TestConnectionReconnectIgnoresStaleEvents(t *testing.T) {
	first, second := newFakeConn(), newFakeConn()
	f := newManagerFixture(first, second)
	f.open(t)

	f.manager.Reconnect(context.Background())
	runUntil(t, f.q, func() bool { return f.manager.State() == models.StateOpen })
	require.Equal(t, 2, f.started)
	require.True(t, first.closed)

	// Закрытие первого соединения уже обработано и не влияет на новое.
	f.q.drain()
	require.Equal(t, models.StateOpen, f.manager.State())

	second.incoming <- "fresh"
	runUntil(t, f.q, func() bool { return len(f.received) == 1 })
	require.Equal(t, []string{"fresh"}, f.received)
}

func TestDispatcherRoutesAndShortCircuits(t *testing.T) {
	f := newManagerFixture(newFakeConn())
	d := NewDispatcher(f.manager, f.sink, testLogger())

	var got []string
	d.Register(protocol.CmdHome, HandlerFunc(func(p string) { got = append(got, p) }))

	d.Dispatch(protocol.Envelope{Command: protocol.CmdHome, Payload: protocol.Done})
	require.Equal(t, []string{protocol.Done}, got)

	d.Dispatch(protocol.Envelope{Command: protocol.CmdHome, Payload: protocol.Error})
	require.Equal(t, []string{protocol.Done}, got)
	require.Equal(t, []string{"An error occurred with command: HME. Check logs for more info."}, f.sink.messages())
	require.True(t, f.sink.notifications[0].Persistent())

	// Неизвестная команда молча отбрасывается.
	d.Dispatch(protocol.Envelope{Command: "ZZZ", Payload: "1"})
	require.Len(t, got, 1)
}

type observedHandler struct {
	handled int
	failed  int
}

func (h *observedHandler) Handle(string) { h.handled++ }
func (h *observedHandler) RemoteFailed() { h.failed++ }

func TestDispatcherNotifiesObserverOnError(t *testing.T) {
	f := newManagerFixture(newFakeConn())
	d := NewDispatcher(f.manager, f.sink, testLogger())
	h := &observedHandler{}
	d.Register(protocol.CmdStatus, h)

	d.Dispatch(protocol.Envelope{Command: protocol.CmdStatus, Payload: protocol.Error})
	require.Equal(t, 0, h.handled)
	require.Equal(t, 1, h.failed)
}

func TestDispatcherDropsMalformed(t *testing.T) {
	f := newManagerFixture(newFakeConn())
	d := NewDispatcher(f.manager, f.sink, testLogger())
	h := &observedHandler{}
	d.Register(protocol.CmdStatus, h)

	require.NotPanics(t, func() { d.Receive("not json at all") })
	require.Equal(t, 0, h.handled)
	require.Empty(t, f.sink.notifications)

	d.Receive(`{"command":"GCS","payload":"{}"}`)
	require.Equal(t, 1, h.handled)
}

func TestDispatcherSend(t *testing.T) {
	conn := newFakeConn()
	f := newManagerFixture(conn)
	d := NewDispatcher(f.manager, f.sink, testLogger())

	require.True(t, errors.Is(d.Send(protocol.CmdHome, ""), apperrors.ErrNotConnected))

	f.open(t)
	require.NoError(t, d.Send(protocol.CmdGCode, "G0 X1\nG0 Y2"))
	require.Equal(t, []protocol.Envelope{{Command: protocol.CmdGCode, Payload: "G0 X1\nG0 Y2"}}, conn.envelopes())

	d.Lock(apperrors.ErrAccessDenied)
	require.True(t, errors.Is(d.Send(protocol.CmdHome, ""), apperrors.ErrAccessDenied))
	d.Unlock()
	require.NoError(t, d.Send(protocol.CmdHome, ""))
}
