package credstore

import (
	"context"
	"sync"
)

// Memory is an in-memory Store. It satisfies the persistence contract only
// for the lifetime of the process; intended for tests and ephemeral use.
type Memory struct {
	mu    sync.Mutex
	entry Entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a copy of the current entry.
func (m *Memory) Load(context.Context) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneEntry(m.entry), nil
}

// Save replaces the entry.
func (m *Memory) Save(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry = cloneEntry(entry)
	return nil
}

// SaveIdentity replaces only the identity slot.
func (m *Memory) SaveIdentity(_ context.Context, identity []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry.Identity = cloneBytes(identity)
	return nil
}

// Clear empties the entry.
func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry = Entry{}
	return nil
}

func cloneEntry(e Entry) Entry {
	return Entry{Token: e.Token, Identity: cloneBytes(e.Identity)}
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
