package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iwtcode/rotaprintAdapter/console"
	"github.com/iwtcode/rotaprintAdapter/protocol"
	"github.com/stretchr/testify/require"
)

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http") + "/ws"
}

// newBackend поднимает сервер, который отвечает на каждый конверт через reply.
// Пустой ответ закрывает соединение штатно.
func newBackend(t *testing.T, reply func(protocol.Envelope) string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			env, err := protocol.Decode(string(data))
			if err != nil {
				return
			}
			out := reply(env)
			if out == "" {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(out)); err != nil {
				return
			}
		}
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestConnRoundTrip(t *testing.T) {
	ts := newBackend(t, func(env protocol.Envelope) string {
		wire, _ := protocol.Encode(env.Command, protocol.Done)
		return wire
	})

	conn, err := NewDialer(wsURL(ts.URL), time.Second).Dial(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	wire, err := protocol.Encode(protocol.CmdHome, "")
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(wire))

	text, err := conn.ReadMessage()
	require.NoError(t, err)

	env, err := protocol.Decode(text)
	require.NoError(t, err)
	require.Equal(t, protocol.CmdHome, env.Command)
	require.Equal(t, protocol.Done, env.Payload)
}

func TestConnPreservesDelimitersInPayload(t *testing.T) {
	payload := `{"a":"1"}~<>~{"a":"2"}` + "\n<*>x<~>INFO<~>\"quoted\""
	ts := newBackend(t, func(env protocol.Envelope) string {
		wire, _ := protocol.Encode(env.Command, env.Payload)
		return wire
	})

	conn, err := NewDialer(wsURL(ts.URL), time.Second).Dial(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	wire, err := protocol.Encode(protocol.CmdEcho, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(wire))

	text, err := conn.ReadMessage()
	require.NoError(t, err)
	env, err := protocol.Decode(text)
	require.NoError(t, err)
	require.Equal(t, payload, env.Payload)
}

func TestConnPeerCloseIsConnClosed(t *testing.T) {
	ts := newBackend(t, func(protocol.Envelope) string { return "" })

	conn, err := NewDialer(wsURL(ts.URL), time.Second).Dial(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	wire, err := protocol.Encode(protocol.CmdStatus, "")
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(wire))

	_, err = conn.ReadMessage()
	require.Error(t, err)
	require.True(t, errors.Is(err, console.ErrConnClosed))
}

func TestDialFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := NewDialer(wsURL(ts.URL), time.Second).Dial(context.Background())
	require.Error(t, err)
	require.False(t, errors.Is(err, console.ErrConnClosed))
}
