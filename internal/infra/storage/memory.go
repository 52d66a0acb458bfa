package storage

import (
	"context"
	"log/slog"
	"sync"

	"parking-booking-gateway/internal/usecase/shared"
)

type MemoryStore struct {
	*broadcaster
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	return &MemoryStore{
		broadcaster: newBroadcaster(logger),
		data:        make(map[string]map[string]string),
	}
}

func (m *MemoryStore) Get(_ context.Context, namespace, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[namespace][key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, namespace, key, value string) error {
	m.mu.Lock()
	if m.data[namespace] == nil {
		m.data[namespace] = make(map[string]string)
	}
	m.data[namespace][key] = value
	m.mu.Unlock()

	m.publish(shared.Change{Namespace: namespace, Key: key})
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	_, existed := m.data[namespace][key]
	delete(m.data[namespace], key)
	m.mu.Unlock()

	if existed {
		m.publish(shared.Change{Namespace: namespace, Key: key, Removed: true})
	}
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, namespace string) error {
	m.mu.Lock()
	delete(m.data, namespace)
	m.mu.Unlock()

	m.publish(shared.Change{Namespace: namespace, Removed: true})
	return nil
}

var _ shared.SessionStore = (*MemoryStore)(nil)
