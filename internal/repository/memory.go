package repository

import (
	"context"
	"sort"
	"storemon/internal/models"
	"sync"
	"time"
)

// MemoryData is the in-memory implementation of all three readers, used in
// tests and when the service runs without a database (CSV-seeded).
type MemoryData struct {
	mu    sync.RWMutex
	obs   map[string][]models.Observation
	hours map[string]models.Schedule
	zones map[string]string
}

func NewMemoryData() *MemoryData {
	return &MemoryData{
		obs:   make(map[string][]models.Observation),
		hours: make(map[string]models.Schedule),
		zones: make(map[string]string),
	}
}

func (m *MemoryData) AddObservation(o models.Observation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.obs[o.StoreID]
	i := sort.Search(len(list), func(i int) bool {
		return list[i].Timestamp.After(o.Timestamp)
	})
	list = append(list, models.Observation{})
	copy(list[i+1:], list[i:])
	list[i] = o
	m.obs[o.StoreID] = list
}

func (m *MemoryData) SetHours(storeID string, dayOfWeek int, hours models.HoursRange) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hours[storeID] == nil {
		m.hours[storeID] = make(models.Schedule)
	}
	m.hours[storeID][dayOfWeek] = hours
}

func (m *MemoryData) SetTimezone(storeID, tz string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zones[storeID] = tz
}

func (m *MemoryData) Range(_ context.Context, storeID string, start, end time.Time) ([]models.Observation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Observation
	for _, o := range m.obs[storeID] {
		if !o.Timestamp.Before(start) && !o.Timestamp.After(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *MemoryData) LatestBefore(_ context.Context, storeID string, t time.Time) (models.Observation, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.obs[storeID]
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Timestamp.Before(t) {
			return list[i], true, nil
		}
	}
	return models.Observation{}, false, nil
}

func (m *MemoryData) MaxTimestamp(_ context.Context) (time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var maxTS time.Time
	for _, list := range m.obs {
		if n := len(list); n > 0 && list[n-1].Timestamp.After(maxTS) {
			maxTS = list[n-1].Timestamp
		}
	}
	return maxTS, !maxTS.IsZero(), nil
}

func (m *MemoryData) StoreIDs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.obs))
	for id := range m.obs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryData) Schedule(_ context.Context, storeID string) (models.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sched := m.hours[storeID]
	if sched == nil {
		return nil, nil
	}
	out := make(models.Schedule, len(sched))
	for d, hr := range sched {
		out[d] = hr
	}
	return out, nil
}

func (m *MemoryData) Timezone(_ context.Context, storeID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.zones[storeID], nil
}
