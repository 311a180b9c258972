// Package planstore keeps the latest planning inputs and result in memory
// for display surfaces.
package planstore

import (
	"sync"
	"time"

	"github.com/kilianp07/berthplan/core/model"
	"github.com/kilianp07/berthplan/core/scheduler"
	"github.com/kilianp07/berthplan/internal/eventbus"
)

// Snapshot is one consistent view of the datasets and the plan computed from them.
type Snapshot struct {
	Berths    []model.Berth  `json:"berths"`
	Vessels   []model.Vessel `json:"vessels"`
	Plan      scheduler.Plan `json:"plan"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store holds the latest Snapshot. Set replaces it wholesale.
type Store interface {
	Set(Snapshot)
	Latest() (Snapshot, bool)
	Subscribe() <-chan Snapshot
	Unsubscribe(<-chan Snapshot)
}

type MemoryStore struct {
	mu      sync.RWMutex
	current Snapshot
	set     bool
	bus     *eventbus.Bus[Snapshot]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bus: eventbus.New[Snapshot](1)}
}

// Set stores s and notifies subscribers.
func (s *MemoryStore) Set(snap Snapshot) {
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	s.current = snap
	s.set = true
	s.mu.Unlock()
	s.bus.Publish(snap)
}

func (s *MemoryStore) Latest() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.set
}

// Subscribe returns a channel receiving every future snapshot.
func (s *MemoryStore) Subscribe() <-chan Snapshot { return s.bus.Subscribe() }

func (s *MemoryStore) Unsubscribe(ch <-chan Snapshot) { s.bus.Unsubscribe(ch) }

// Close closes all subscriber channels.
func (s *MemoryStore) Close() { s.bus.Close() }
