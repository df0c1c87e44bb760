package common

import (
	"context"
	"errors"
	"sync"
)

// ErrKeyNotFound distinguishes an absent key from a store failure.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the durability backend for the flight draft: a handful of
// string keys that must survive a process restart. Only the session
// service writes to it.
type KVStore interface {
	Set(ctx context.Context, key string, value string) error
	Get(ctx context.Context, key string) (string, error)
	Remove(ctx context.Context, key string) error
}

// MemoryKVStore is an in-process KVStore for tests and for running
// without Redis. Values do not survive a restart.
type MemoryKVStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ KVStore = (*MemoryKVStore)(nil)

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{values: make(map[string]string)}
}

func (s *MemoryKVStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryKVStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return val, nil
}

func (s *MemoryKVStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
