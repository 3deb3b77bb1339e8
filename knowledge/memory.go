package knowledge

import "sync"

// Memory is an in-process pattern store shared by concurrent games.
type Memory struct {
	sync.RWMutex
	entries map[Key]Entry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[Key]Entry)}
}

func (m *Memory) Lookup(key Key) (Entry, bool) {
	m.RLock()
	defer m.RUnlock()

	e, ok := m.entries[key]
	return e, ok
}

func (m *Memory) LookupAll(keys []Key) ([]Record, error) {
	m.RLock()
	defer m.RUnlock()

	records := make([]Record, 0, len(keys))
	for _, k := range keys {
		if e, ok := m.entries[k]; ok {
			records = append(records, Record{PatternHash: k, Wins: e.Wins, Losses: e.Losses})
		}
	}
	return records, nil
}

// Apply adds a batch of updates under a single lock.
func (m *Memory) Apply(updates []Update) {
	m.Lock()
	defer m.Unlock()

	for _, u := range updates {
		e := m.entries[u.Key]
		if u.Won {
			e.Wins++
		} else {
			e.Losses++
		}
		m.entries[u.Key] = e
	}
}

func (m *Memory) Len() int {
	m.RLock()
	defer m.RUnlock()

	return len(m.entries)
}

// Snapshot copies the current entries into a Map.
func (m *Memory) Snapshot() Map {
	m.RLock()
	defer m.RUnlock()

	out := make(Map, len(m.entries))
	for k, e := range m.entries {
		out[k] = e
	}
	return out
}
