package store

import "sync"

// MemoryStore 进程内实现，测试和单机演示用。
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]string)}
}

func (s *MemoryStore) Read(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	return v, ok
}

func (s *MemoryStore) Write(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
}
