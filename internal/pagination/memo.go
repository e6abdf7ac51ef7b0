package pagination

import "sync"

// Memo caches windows keyed on the normalized inputs. It is bounded: once
// full, the oldest entry is evicted. A Memo is safe for concurrent use.
//
// Cached windows are shared between callers; do not modify their slices.
type Memo struct {
	mu      sync.Mutex
	size    int
	entries map[Params]Window
	order   []Params // insertion order, oldest first
}

// NewMemo returns a Memo holding at most size windows. A size of 0 or less
// disables caching; Compute then always computes.
func NewMemo(size int) *Memo {
	return &Memo{
		size:    size,
		entries: make(map[Params]Window),
	}
}

// Compute returns the window for p and whether it came from the cache.
func (m *Memo) Compute(p Params) (Window, bool) {
	p = p.Normalize()
	if m == nil || m.size <= 0 {
		return ComputeParams(p), false
	}

	m.mu.Lock()
	w, ok := m.entries[p]
	m.mu.Unlock()
	if ok {
		return w, true
	}

	w = ComputeParams(p)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[p]; !exists {
		if len(m.order) >= m.size {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.entries, oldest)
		}
		m.order = append(m.order, p)
	}
	m.entries[p] = w
	return w, false
}

// Len returns the number of cached windows.
func (m *Memo) Len() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
