package storage

import "sync"

// MemoryStorage keeps the snapshot in process memory only
type MemoryStorage struct {
	snapshot *Snapshot
	saves    int
	mutex    sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() (*Snapshot, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	// Return a copy to prevent external mutation
	return m.snapshot.Clone(), nil
}

func (m *MemoryStorage) Save(snapshot *Snapshot) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.snapshot = snapshot.Clone()
	m.saves++
	return nil
}

// Saves reports how many times Save has been called
func (m *MemoryStorage) Saves() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.saves
}

func (m *MemoryStorage) Close() error {
	return nil
}
