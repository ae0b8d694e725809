package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iwtcode/rotaprintAdapter/models"
	apperrors "github.com/iwtcode/rotaprintAdapter/pkg/errors"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func testLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

type sent struct {
	Command protocol.Command
	Payload string
}

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) Send(cmd protocol.Command, payload string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{cmd, payload})
	return nil
}

func (f *fakeSender) commands() []protocol.Command {
	out := make([]protocol.Command, 0, len(f.sent))
	for _, s := range f.sent {
		out = append(out, s.Command)
	}
	return out
}

func (f *fakeSender) reset() { f.sent = nil }

type logAppend struct {
	Added   []models.LogEntry
	Evicted int
	Scroll  bool
}

type fakeSink struct {
	mu            sync.Mutex
	notifications []models.Notification
	fields        []string
	values        map[string]string
	changed       []int
	redirects     []models.Page
	appends       []logAppend
	states        []models.ConnectionState
}

func newFakeSink() *fakeSink {
	return &fakeSink{values: make(map[string]string)}
}

func (s *fakeSink) Notify(n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

func (s *fakeSink) SetField(id, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields = append(s.fields, id)
	s.values[id] = value
}

func (s *fakeSink) SetChanged(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changed = append(s.changed, count)
}

func (s *fakeSink) Redirect(page models.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirects = append(s.redirects, page)
}

func (s *fakeSink) AppendLog(added []models.LogEntry, evicted int, scroll bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appends = append(s.appends, logAppend{added, evicted, scroll})
}

func (s *fakeSink) ConnectionChanged(state models.ConnectionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, state)
}

func (s *fakeSink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, n.Message)
	}
	return out
}

func (s *fakeSink) lastChanged() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.changed) == 0 {
		return -1
	}
	return s.changed[len(s.changed)-1]
}

// manualScheduler срабатывает только по команде теста.
type manualScheduler struct {
	tasks []*manualTask
}

type manualTask struct {
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTask) Stop() { t.stopped = true }

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Task {
	t := &manualTask{delay: d, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

// pending возвращает задачи, которые еще могут сработать.
func (s *manualScheduler) pending() []*manualTask {
	var out []*manualTask
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fire выполняет все ожидающие задачи.
func (s *manualScheduler) fire() int {
	tasks := s.pending()
	for _, t := range tasks {
		t.fired = true
		t.f()
	}
	return len(tasks)
}

// fakeConn - соединение, управляемое тестом.
type fakeConn struct {
	incoming chan string
	errc     chan error
	mu       sync.Mutex
	written  []string
	closed   bool
	writeErr error
}

func newFakeConn() *fakeConn {
	return &fakeConn{incoming: make(chan string, 16), errc: make(chan error, 1)}
}

func (c *fakeConn) ReadMessage() (string, error) {
	select {
	case text := <-c.incoming:
		return text, nil
	case err := <-c.errc:
		return "", err
	}
}

func (c *fakeConn) WriteMessage(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.written = append(c.written, text)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		select {
		case c.errc <- errors.New("use of closed connection"):
		default:
		}
	}
	return nil
}

func (c *fakeConn) push(cmd protocol.Command, payload string) {
	wire, err := protocol.Encode(cmd, payload)
	if err != nil {
		panic(err)
	}
	c.incoming <- wire
}

func (c *fakeConn) commands() []protocol.Command {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]protocol.Command, 0, len(c.written))
	for _, w := range c.written {
		env, err := protocol.Decode(w)
		if err == nil {
			out = append(out, env.Command)
		}
	}
	return out
}

func (c *fakeConn) envelopes() []protocol.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]protocol.Envelope, 0, len(c.written))
	for _, w := range c.written {
		env, err := protocol.Decode(w)
		if err == nil {
			out = append(out, env)
		}
	}
	return out
}

// fakeDialer отдает заранее подготовленные соединения по очереди.
type fakeDialer struct {
	mu    sync.Mutex
	conns []*fakeConn
	err   error
	dials int
}

func (d *fakeDialer) Dial(context.Context) (Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	if d.err != nil {
		return nil, d.err
	}
	if len(d.conns) == 0 {
		return nil, &apperrors.TransportError{Op: "dial", Err: errors.New("no more connections")}
	}
	c := d.conns[0]
	d.conns = d.conns[1:]
	return c, nil
}

// queue копит события цикла, тест выполняет их сам.
type queue struct {
	mu     sync.Mutex
	events []func()
}

func (q *queue) post(f func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, f)
}

// drain выполняет накопленные события в текущей горутине.
func (q *queue) drain() int {
	n := 0
	for {
		q.mu.Lock()
		if len(q.events) == 0 {
			q.mu.Unlock()
			return n
		}
		f := q.events[0]
		q.events = q.events[1:]
		q.mu.Unlock()
		f()
		n++
	}
}

// fixedSettings - параметры хвоста и опроса для тестов.
type fixedSettings struct {
	interval  time.Duration
	retention int
}

func (f fixedSettings) PollingInterval() time.Duration { return f.interval }
func (f fixedSettings) LogRetention() int              { return f.retention }

type fixedPage models.Page

func (p fixedPage) Page() models.Page { return models.Page(p) }
