package commands

import (
	"sync"

	"github.com/google/uuid"
)

// resourceLocks serializes reserve calls per resource so that the
// read-check-then-insert section runs as one atomic unit. The map grows with
// the number of distinct resources, which is bounded in practice.
type resourceLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newResourceLocks() *resourceLocks {
	return &resourceLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (r *resourceLocks) get(id uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.locks[id]
	if !ok {
		m = &sync.Mutex{}
		r.locks[id] = m
	}
	return m
}
