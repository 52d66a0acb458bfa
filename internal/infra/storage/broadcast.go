package storage

import (
	"log/slog"
	"sync"

	"parking-booking-gateway/internal/usecase/shared"
)

const subscriberBuffer = 32

// broadcaster fans changes out to the subscribers of a namespace, the way a
// storage event reaches every other tab of the same browser.
type broadcaster struct {
	mu     sync.RWMutex
	subs   map[string]map[int]chan shared.Change
	nextID int
	logger *slog.Logger
}

func newBroadcaster(logger *slog.Logger) *broadcaster {
	return &broadcaster{
		subs:   make(map[string]map[int]chan shared.Change),
		logger: logger,
	}
}

func (b *broadcaster) Subscribe(namespace string) (<-chan shared.Change, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan shared.Change, subscriberBuffer)
	if b.subs[namespace] == nil {
		b.subs[namespace] = make(map[int]chan shared.Change)
	}
	b.subs[namespace][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if subs, ok := b.subs[namespace]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(b.subs, namespace)
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

func (b *broadcaster) publish(change shared.Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[change.Namespace] {
		select {
		case ch <- change:
		default:
			// Subscriber buffer full, drop
			b.logger.Warn("storage change dropped", "namespace", change.Namespace, "key", change.Key)
		}
	}
}
