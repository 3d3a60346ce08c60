package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dharmasatrya/ticketkini/internal/clock"
	"github.com/dharmasatrya/ticketkini/internal/models"
)

var (
	ErrNoUser             = errors.New("notify: user id is required")
	ErrAlreadyRunning     = errors.New("notify: client already running")
	ErrReconnectExhausted = errors.New("notify: reconnect attempts exhausted")
)

const DefaultPingInterval = 30 * time.Second

// Remote is the REST side of notifications.
type Remote interface {
	UnreadNotifications(ctx context.Context, limit int) (*models.UnreadNotifications, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

type Config struct {
	URL          string        `yaml:"url"`
	UserID       string        `yaml:"-"`
	Role         string        `yaml:"-"`
	PingInterval time.Duration `yaml:"ping_interval"`
	Backoff      Backoff       `yaml:"backoff"`
	CacheSize    int           `yaml:"cache_size"`
}

func DefaultConfig() Config {
	return Config{
		URL:          "ws://localhost:8000",
		Role:         "user",
		PingInterval: DefaultPingInterval,
		Backoff:      DefaultBackoff(),
		CacheSize:    DefaultCacheSize,
	}
}

type Option func(*Client)

func WithClock(c clock.Clock) Option { return func(cl *Client) { cl.clock = c } }

func WithPresenter(p Presenter) Option { return func(cl *Client) { cl.presenter = p } }

func WithDesktopNotifier(d DesktopNotifier) Option { return func(cl *Client) { cl.desktop = d } }

func WithBus(b *Bus) Option { return func(cl *Client) { cl.bus = b } }

func WithLogger(l *slog.Logger) Option { return func(cl *Client) { cl.logger = l } }

// Client keeps one notification socket open for a user and mirrors what
// arrives on it into the Inbox and the Presenter.
type Client struct {
	cfg       Config
	dialer    Dialer
	remote    Remote
	clock     clock.Clock
	presenter Presenter
	desktop   DesktopNotifier
	bus       *Bus
	logger    *slog.Logger
	inbox     *Inbox

	state    atomic.Int32
	attempts atomic.Int32
	running  atomic.Bool
}

func NewClient(cfg Config, dialer Dialer, remote Remote, opts ...Option) *Client {
	def := DefaultConfig()
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = def.PingInterval
	}
	if cfg.Backoff.Floor <= 0 || cfg.Backoff.Cap <= 0 {
		cfg.Backoff = def.Backoff
	}
	if cfg.Backoff.MaxAttempts <= 0 {
		cfg.Backoff.MaxAttempts = def.Backoff.MaxAttempts
	}
	if cfg.Role == "" {
		cfg.Role = def.Role
	}

	c := &Client{
		cfg:       cfg,
		dialer:    dialer,
		remote:    remote,
		clock:     clock.Real(),
		presenter: NopPresenter{},
		desktop:   NopDesktop{},
		logger:    slog.Default(),
		inbox:     NewInbox(cfg.CacheSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "notify", "user_id", cfg.UserID)
	return c
}

func (c *Client) State() State { return State(c.state.Load()) }

// Attempts is the number of consecutive failed connections.
func (c *Client) Attempts() int { return int(c.attempts.Load()) }

func (c *Client) Inbox() *Inbox { return c.inbox }

func (c *Client) Endpoint() string {
	return Endpoint(c.cfg.URL, c.cfg.UserID, c.cfg.Role)
}

// Run loads the unread list and then keeps the socket connected until ctx
// is done or reconnects are exhausted.
func (c *Client) Run(ctx context.Context) error {
	if c.cfg.UserID == "" {
		return ErrNoUser
	}
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer c.running.Store(false)

	c.loadUnread(ctx)

	reconnect := false
	for {
		c.setState(StateConnecting)
		conn, err := c.dialer.Dial(ctx, c.Endpoint())
		if err == nil {
			c.attempts.Store(0)
			c.setState(StateConnected)
			// Pushes sent while the socket was down are only visible
			// through the server's counter.
			if reconnect && c.remote != nil {
				_ = c.Reconcile(ctx)
			}
			reconnect = true
			err = c.serve(ctx, conn)
			_ = conn.Close()
		}
		c.setState(StateDisconnected)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		attempt := int(c.attempts.Add(1))
		if attempt > c.cfg.Backoff.MaxAttempts {
			c.setState(StateFailed)
			c.logger.Error("giving up on notification socket", "attempts", attempt-1, "error", err)
			c.presenter.Toast(Toast{
				Title:      "Notifications unavailable",
				Message:    "Lost connection to the notification service. Reload to try again.",
				Level:      LevelError,
				Persistent: true,
			})
			return ErrReconnectExhausted
		}

		delay := c.cfg.Backoff.Delay(attempt)
		c.logger.Warn("notification socket closed, reconnecting",
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
		select {
		case <-c.clock.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// serve pumps frames until the socket closes. Ping send failures are only
// logged; a dead socket shows up as a receive error.
func (c *Client) serve(ctx context.Context, conn Conn) error {
	ticker := c.clock.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	frames := make(chan Frame)
	errc := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			var f Frame
			if err := conn.Receive(&f); err != nil {
				errc <- err
				return
			}
			select {
			case frames <- f:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errc:
			return err
		case f := <-frames:
			c.handle(f)
		case <-ticker.C:
			if err := conn.Send(Frame{Type: FramePing}); err != nil {
				c.logger.Warn("keepalive ping failed", "error", err)
			}
		}
	}
}

func (c *Client) handle(f Frame) {
	switch {
	case f.CarriesNotification():
		c.deliver(*f.Data)
	case f.Type == FramePong:
		c.logger.Debug("pong")
	case f.Type == FrameUnreadCount:
		if f.Count == nil {
			return
		}
		c.inbox.SetUnread(*f.Count)
		unread := c.inbox.Unread()
		c.presenter.UpdateBadge(unread)
		c.bus.Publish(Event{Kind: EventUnreadCount, Unread: unread})
	case f.Type == FrameError:
		c.logger.Warn("notification server error", "message", f.Message)
		c.presenter.Toast(Toast{
			Title:    "Notification error",
			Message:  f.Message,
			Level:    LevelError,
			Duration: ToastDuration,
		})
	case f.Type == FrameConnectionSuccess:
		c.logger.Info("notification socket ready", "message", f.Message)
	default:
		c.logger.Debug("ignoring frame", "type", f.Type)
	}
}

func (c *Client) deliver(n models.Notification) {
	unread := c.inbox.Add(n)

	if c.desktop.Permission() == PermissionGranted {
		if err := c.desktop.Notify(n); err != nil {
			c.logger.Warn("desktop notification failed", "error", err)
		}
	}
	c.presenter.Toast(ToastFor(n))
	c.presenter.UpdateBadge(unread)
	c.presenter.UpdateDropdown(c.inbox.Items())
	c.bus.Publish(Event{Kind: EventNotification, Notification: &n, Unread: unread})
}

func (c *Client) loadUnread(ctx context.Context) {
	if c.remote == nil {
		return
	}
	unread, err := c.remote.UnreadNotifications(ctx, c.cfg.CacheSize)
	if err != nil {
		c.logger.Warn("failed to load unread notifications", "error", err)
		return
	}
	c.inbox.Reset(unread.Notifications, unread.Count)
	c.presenter.UpdateBadge(c.inbox.Unread())
	c.presenter.UpdateDropdown(c.inbox.Items())
}

// MarkRead acknowledges one notification. Local state changes only after
// the server agrees; a failure is logged and returned, never retried.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	if err := c.remote.MarkNotificationRead(ctx, id); err != nil {
		c.logger.Warn("mark read failed", "notification_id", id, "error", err)
		return err
	}
	unread := c.inbox.Remove(id)
	c.presenter.UpdateBadge(unread)
	c.presenter.UpdateDropdown(c.inbox.Items())
	c.bus.Publish(Event{Kind: EventRead, Unread: unread})
	return nil
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	if err := c.remote.MarkAllNotificationsRead(ctx); err != nil {
		c.logger.Warn("mark all read failed", "error", err)
		return err
	}
	c.inbox.Clear()
	c.presenter.UpdateBadge(0)
	c.presenter.UpdateDropdown(nil)
	c.bus.Publish(Event{Kind: EventAllRead})
	return nil
}

// Reconcile overwrites the local counter with the server's.
func (c *Client) Reconcile(ctx context.Context) error {
	n, err := c.remote.UnreadCount(ctx)
	if err != nil {
		c.logger.Warn("unread count refresh failed", "error", err)
		return err
	}
	c.inbox.SetUnread(n)
	unread := c.inbox.Unread()
	c.presenter.UpdateBadge(unread)
	c.bus.Publish(Event{Kind: EventUnreadCount, Unread: unread})
	return nil
}

func (c *Client) setState(s State) {
	prev := State(c.state.Swap(int32(s)))
	if prev == s {
		return
	}
	c.logger.Debug("notification state", "from", prev, "to", s)
	c.bus.Publish(Event{Kind: EventState, State: s})
}
