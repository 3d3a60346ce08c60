package notify

import (
	"sync"

	"github.com/dharmasatrya/ticketkini/internal/models"
)

const DefaultCacheSize = 50

// Inbox is the local view of unread notifications: a bounded, newest-first
// cache and the unread counter. The counter follows the server and may
// exceed the number of cached items.
type Inbox struct {
	mu     sync.RWMutex
	items  []models.Notification
	unread int
	limit  int
}

func NewInbox(limit int) *Inbox {
	if limit <= 0 {
		limit = DefaultCacheSize
	}
	return &Inbox{limit: limit}
}

// Reset replaces the cache with a freshly fetched unread list.
func (in *Inbox) Reset(items []models.Notification, unread int) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if len(items) > in.limit {
		items = items[:in.limit]
	}
	in.items = append([]models.Notification(nil), items...)
	if unread < len(in.items) {
		unread = len(in.items)
	}
	in.unread = unread
}

// Add prepends n and returns the new unread count. A notification already
// cached under the same id is replaced without counting twice; shared ids
// such as "system" always count as new.
func (in *Inbox) Add(n models.Notification) int {
	in.mu.Lock()
	defer in.mu.Unlock()

	unique := n.ID != "" && n.ID != models.SystemNotificationID
	seen := false
	kept := make([]models.Notification, 0, len(in.items)+1)
	kept = append(kept, n)
	for _, it := range in.items {
		if unique && it.ID == n.ID {
			seen = true
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) > in.limit {
		kept = kept[:in.limit]
	}
	in.items = kept
	if !seen {
		in.unread++
	}
	return in.unread
}

func (in *Inbox) SetUnread(n int) {
	if n < 0 {
		n = 0
	}
	in.mu.Lock()
	in.unread = n
	in.mu.Unlock()
}

// Remove evicts an acknowledged notification and decrements the counter.
// An id missing from the cache only counts when the counter says some
// unread notifications were never cached.
func (in *Inbox) Remove(id string) int {
	in.mu.Lock()
	defer in.mu.Unlock()

	found := false
	for i, it := range in.items {
		if it.ID.String() == id {
			in.items = append(in.items[:i:i], in.items[i+1:]...)
			found = true
			break
		}
	}
	if found || in.unread > len(in.items) {
		in.unread--
	}
	if in.unread < 0 {
		in.unread = 0
	}
	return in.unread
}

func (in *Inbox) Clear() {
	in.mu.Lock()
	in.items = nil
	in.unread = 0
	in.mu.Unlock()
}

func (in *Inbox) Items() []models.Notification {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return append([]models.Notification(nil), in.items...)
}

func (in *Inbox) Unread() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.unread
}
