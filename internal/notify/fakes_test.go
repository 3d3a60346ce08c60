package notify

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/dharmasatrya/ticketkini/internal/clock"
	"github.com/dharmasatrya/ticketkini/internal/models"
)

var epoch = time.Date(2025, 6, 29, 8, 0, 0, 0, time.UTC)

type fakeConn struct {
	in     chan Frame
	closed chan struct{}
	once   sync.Once

	mu   sync.Mutex
	sent []Frame
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan Frame), closed: make(chan struct{})}
}

func (c *fakeConn) Receive(v any) error {
	select {
	case f := <-c.in:
		*(v.(*Frame)) = f
		return nil
	case <-c.closed:
		return io.EOF
	}
}

func (c *fakeConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v.(Frame))
	return nil
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) Sent() []Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Frame(nil), c.sent...)
}

// fakeDialer hands out queued conns; with none queued the dial fails.
type fakeDialer struct {
	clock *clock.FakeClock

	mu        sync.Mutex
	conns     []*fakeConn
	dials     []time.Time
	endpoints []string
}

func (d *fakeDialer) Dial(ctx context.Context, endpoint string) (Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials = append(d.dials, d.clock.Now())
	d.endpoints = append(d.endpoints, endpoint)
	if len(d.conns) == 0 {
		return nil, errors.New("connection refused")
	}
	c := d.conns[0]
	d.conns = d.conns[1:]
	return c, nil
}

func (d *fakeDialer) queue(c *fakeConn) {
	d.mu.Lock()
	d.conns = append(d.conns, c)
	d.mu.Unlock()
}

func (d *fakeDialer) dialTimes() []time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]time.Time(nil), d.dials...)
}

type recordingPresenter struct {
	mu       sync.Mutex
	toasts   []Toast
	badge    int
	dropdown []models.Notification
}

func (p *recordingPresenter) Toast(t Toast) {
	p.mu.Lock()
	p.toasts = append(p.toasts, t)
	p.mu.Unlock()
}

func (p *recordingPresenter) UpdateBadge(n int) {
	p.mu.Lock()
	p.badge = n
	p.mu.Unlock()
}

func (p *recordingPresenter) UpdateDropdown(items []models.Notification) {
	p.mu.Lock()
	p.dropdown = items
	p.mu.Unlock()
}

func (p *recordingPresenter) Toasts() []Toast {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Toast(nil), p.toasts...)
}

func (p *recordingPresenter) Badge() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.badge
}

type grantedDesktop struct {
	mu    sync.Mutex
	shown []models.Notification
}

func (d *grantedDesktop) Permission() Permission { return PermissionGranted }

func (d *grantedDesktop) Notify(n models.Notification) error {
	d.mu.Lock()
	d.shown = append(d.shown, n)
	d.mu.Unlock()
	return nil
}

func (d *grantedDesktop) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.shown)
}

type fakeRemote struct {
	unread   models.UnreadNotifications
	count    int
	markErr  error
	marked   []string
	allMarks int
}

func (r *fakeRemote) UnreadNotifications(ctx context.Context, limit int) (*models.UnreadNotifications, error) {
	u := r.unread
	return &u, nil
}

func (r *fakeRemote) UnreadCount(ctx context.Context) (int, error) { return r.count, nil }

func (r *fakeRemote) MarkNotificationRead(ctx context.Context, id string) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.marked = append(r.marked, id)
	return nil
}

func (r *fakeRemote) MarkAllNotificationsRead(ctx context.Context) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.allMarks++
	return nil
}
