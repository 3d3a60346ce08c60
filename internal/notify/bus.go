package notify

import (
	"sync"

	"github.com/dharmasatrya/ticketkini/internal/models"
)

type EventKind string

const (
	EventNotification EventKind = "notification"
	EventUnreadCount  EventKind = "unread_count"
	EventRead         EventKind = "read"
	EventAllRead      EventKind = "all_read"
	EventState        EventKind = "state"
)

type Event struct {
	Kind         EventKind
	Notification *models.Notification
	Unread       int
	State        State
}

// Bus fans client events out to other components. Publish never blocks:
// a subscriber whose buffer is full misses the event.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe returns the event channel and a cancel func that closes it.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
