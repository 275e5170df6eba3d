package scoring

import "sync"

// ResultStore defines the interface for loading and saving game results.
// This allows for mocking the storage layer during tests.
type ResultStore interface {
	// LoadAll returns every recorded result.
	LoadAll() ([]Result, error)
	// SaveAll replaces the recorded results.
	SaveAll(results []Result) error
}

// MemoryStore keeps results for the lifetime of the process only.
type MemoryStore struct {
	mu      sync.RWMutex
	results []Result
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) LoadAll() ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Result, len(m.results))
	copy(out, m.results)
	return out, nil
}

func (m *MemoryStore) SaveAll(results []Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = make([]Result, len(results))
	copy(m.results, results)
	return nil
}
