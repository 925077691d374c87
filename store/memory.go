package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"curator/scoring"
)

// Memory is an in-process Store. Nothing survives a restart.
type Memory struct {
	mu       sync.Mutex
	recs     []scoring.Record
	ids      map[string]struct{}
	settings map[string]string
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		ids:      make(map[string]struct{}),
		settings: make(map[string]string),
		now:      time.Now,
	}
}

func (m *Memory) List(context.Context) ([]scoring.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.recs), nil
}

func (m *Memory) Append(_ context.Context, recs ...scoring.Record) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	added := 0
	for _, rec := range recs {
		rec = stamp(rec, m.now)
		if _, ok := m.ids[rec.ID]; ok {
			continue
		}
		m.ids[rec.ID] = struct{}{}
		m.recs = append(m.recs, rec)
		added++
	}
	return added, nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = nil
	m.ids = make(map[string]struct{})
	return nil
}

func (m *Memory) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs), nil
}

func (m *Memory) Setting(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.settings[key]
	if !ok {
		return "", ErrSettingNotFound
	}
	return v, nil
}

func (m *Memory) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *Memory) Close() error {
	return nil
}
