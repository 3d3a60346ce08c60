package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/websocket"
)

// Conn is one open notification socket exchanging JSON frames.
type Conn interface {
	Receive(v any) error
	Send(v any) error
	Close() error
}

type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Conn, error)
}

// Endpoint is the socket URL for a user, e.g.
// ws://host/ws/notifications/42?role=user.
func Endpoint(base, userID, role string) string {
	if role == "" {
		role = "user"
	}
	return strings.TrimRight(base, "/") + "/ws/notifications/" + url.PathEscape(userID) +
		"?role=" + url.QueryEscape(role)
}

// WebSocketDialer dials with golang.org/x/net/websocket. Origin defaults to
// the endpoint's host over http(s).
type WebSocketDialer struct {
	Origin string
}

func (d WebSocketDialer) Dial(ctx context.Context, endpoint string) (Conn, error) {
	origin := d.Origin
	if origin == "" {
		o, err := originFor(endpoint)
		if err != nil {
			return nil, err
		}
		origin = o
	}

	cfg, err := websocket.NewConfig(endpoint, origin)
	if err != nil {
		return nil, fmt.Errorf("notify: websocket config: %w", err)
	}
	ws, err := cfg.DialContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("notify: dial %s: %w", endpoint, err)
	}
	return &wsConn{ws: ws}, nil
}

func originFor(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("notify: bad endpoint %q: %w", endpoint, err)
	}
	scheme := "http"
	if u.Scheme == "wss" {
		scheme = "https"
	}
	return scheme + "://" + u.Host, nil
}

type wsConn struct {
	ws *websocket.Conn
}

func (c *wsConn) Receive(v any) error { return websocket.JSON.Receive(c.ws, v) }

func (c *wsConn) Send(v any) error { return websocket.JSON.Send(c.ws, v) }

func (c *wsConn) Close() error { return c.ws.Close() }
