package sessionstore

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	data       Data
	expiration int64
}

// MemoryStore is the in-process fallback used when Redis is disabled.
// A background sweep evicts expired entries.
type MemoryStore struct {
	items map[string]memoryItem
	mu    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]memoryItem),
	}
	go store.startGC()
	return store
}

func (s *MemoryStore) Set(_ context.Context, sid string, data Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[sid] = memoryItem{
		data:       data,
		expiration: time.Now().Add(ttl).UnixNano(),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sid string) (Data, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, found := s.items[sid]
	if !found {
		return Data{}, ErrNotFound
	}

	if time.Now().UnixNano() > item.expiration {
		return Data{}, ErrNotFound
	}

	return item.data, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, sid)
	return nil
}

func (s *MemoryStore) startGC() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now().UnixNano()
		s.mu.Lock()
		for sid, item := range s.items {
			if now > item.expiration {
				delete(s.items, sid)
			}
		}
		s.mu.Unlock()
	}
}
