package coreclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/Cheese-chesscore/pkg/chessdto"
)

// Watch streams a game's state: first the current snapshot, then one per
// committed move. fn returning false ends the stream. Watch returns nil when
// fn stops it or the server closes the socket normally (game finished).
func (c *Client) Watch(ctx context.Context, id string, fn func(*chessdto.GameState) bool) error {
	target, err := c.wsURL("/v1/games/" + url.PathEscape(id) + "/watch")
	if err != nil {
		return err
	}
	conn, _, err := websocket.Dial(ctx, target, &websocket.DialOptions{
		HTTPClient:      c.wsHTTPClient(),
		HTTPHeader:      c.buildHeaders(),
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		return fmt.Errorf("watch dial: %w", err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(1 << 20)

	for {
		var st chessdto.GameState
		if err := wsjson.Read(ctx, conn, &st); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			return fmt.Errorf("watch read: %w", err)
		}
		if !fn(&st) {
			return conn.Close(websocket.StatusNormalClosure, "")
		}
	}
}

func (c *Client) wsURL(path string) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.New("unsupported scheme: " + u.Scheme)
	}
	return u.String(), nil
}

// wsHTTPClient routes the handshake through the custom dialer when one is set.
func (c *Client) wsHTTPClient() *http.Client {
	if c.dial == nil {
		return nil
	}
	dial := c.dial
	return &http.Client{Transport: &http.Transport{
		DialContext: func(_ context.Context, _, addr string) (net.Conn, error) { return dial(addr) },
	}}
}

func (c *Client) buildHeaders() http.Header {
	h := http.Header{}
	if c.headers == nil {
		return h
	}
	for k, v := range c.headers() {
		if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
			h.Set(k, v)
		}
	}
	return h
}
