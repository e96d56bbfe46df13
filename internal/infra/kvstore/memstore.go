package kvstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/ports"
)

// MemStore is an in-memory BlobStore. Values are held in their encoded form so
// reads never alias what was written.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{blobs: map[string][]byte{}}
}

var _ ports.BlobStore = (*MemStore)(nil)

func (m *MemStore) Write(key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return &domain.OpError{Op: "memstore.marshal", Kind: domain.KindStorage, Path: key, Err: err}
	}
	m.mu.Lock()
	m.blobs[key] = b
	m.mu.Unlock()
	return nil
}

func (m *MemStore) Read(key string, dst any) (bool, error) {
	m.mu.RLock()
	b, ok := m.blobs[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, &domain.OpError{
			Op:   "memstore.read",
			Kind: domain.KindCorrupt,
			Path: key,
			Err:  fmt.Errorf("%w: %v", domain.ErrCorrupt, err),
		}
	}
	return true, nil
}

func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	delete(m.blobs, key)
	m.mu.Unlock()
	return nil
}

// Raw returns the stored bytes of key. Useful in tests.
func (m *MemStore) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[key]
	return b, ok
}

// SetRaw stores b under key without encoding. Useful in tests to plant corrupt content.
func (m *MemStore) SetRaw(key string, b []byte) {
	m.mu.Lock()
	m.blobs[key] = b
	m.mu.Unlock()
}
