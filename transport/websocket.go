package transport

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iwtcode/rotaprintAdapter/console"
)

const writeWait = 10 * time.Second

// Dialer открывает websocket-соединения с бэкендом принтера.
type Dialer struct {
	URL     string
	Timeout time.Duration
	Header  http.Header
}

// NewDialer создает Dialer для адреса url вида ws://host:port.
func NewDialer(url string, timeout time.Duration) *Dialer {
	return &Dialer{URL: url, Timeout: timeout}
}

// Dial устанавливает соединение. Таймаут ограничивает только рукопожатие.
func (d *Dialer) Dial(ctx context.Context) (console.Conn, error) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	dialer := *websocket.DefaultDialer
	if d.Timeout > 0 {
		dialer.HandshakeTimeout = d.Timeout
	}

	ws, resp, err := dialer.DialContext(ctx, d.URL, d.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %s: %w", d.URL, resp.Status, err)
		}
		return nil, fmt.Errorf("dial %s: %w", d.URL, err)
	}
	return &Conn{ws: ws}, nil
}

// Conn оборачивает *websocket.Conn. Чтение допускается из одной горутины,
// запись защищена мьютексом.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// ReadMessage возвращает следующее текстовое сообщение.
// Штатное закрытие со стороны сервера превращается в console.ErrConnClosed.
func (c *Conn) ReadMessage() (string, error) {
	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return "", fmt.Errorf("%w: %v", console.ErrConnClosed, err)
			}
			return "", err
		}
		if kind != websocket.TextMessage {
			continue
		}
		return string(data), nil
	}
}

// WriteMessage отправляет текстовое сообщение.
func (c *Conn) WriteMessage(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, []byte(text))
}

// Close отправляет кадр закрытия и закрывает сокет.
func (c *Conn) Close() error {
	c.mu.Lock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.mu.Unlock()
	return c.ws.Close()
}

var (
	_ console.Dialer = (*Dialer)(nil)
	_ console.Conn   = (*Conn)(nil)
)
