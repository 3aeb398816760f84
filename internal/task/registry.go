package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry is the process-local, concurrency-safe set of known tasks.
// There is no persisted state: a faithful implementation exposes task
// state only through a registry like this one.
type Registry struct {
	mu      sync.RWMutex
	tasks   map[string]*Task
	byOwner map[string]string // owner id -> task id, for single-task-per-client mode
}

func NewRegistry() *Registry {
	return &Registry{
		tasks:   make(map[string]*Task),
		byOwner: make(map[string]string),
	}
}

// Submit registers a new task for owner against the given materials. If
// singleTaskPerOwner is true and owner already has a non-terminal task,
// it returns ErrTaskAlreadyRunning instead.
func (r *Registry) Submit(owner string, materials []string, singleTaskPerOwner bool) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if singleTaskPerOwner {
		if id, ok := r.byOwner[owner]; ok {
			if existing, ok := r.tasks[id]; ok && !existing.State().Terminal() {
				return nil, ErrTaskAlreadyRunning
			}
		}
	}

	t := New(uuid.New().String(), materials)
	r.tasks[t.ID] = t
	r.byOwner[owner] = t.ID
	return t, nil
}

// Get returns the task with the given id, or (nil, false).
func (r *Registry) Get(id string) (*Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	return t, ok
}

// All returns every known task, for stats() aggregation. The returned
// slice is a snapshot; it does not reflect subsequent Submit calls.
func (r *Registry) All() []*Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	return out
}

// StateCounts returns the number of tasks in each State, for stats().
func (r *Registry) StateCounts() map[State]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[State]int)
	for _, t := range r.tasks {
		counts[t.State()]++
	}
	return counts
}

// Sweeper periodically evicts terminal tasks older than a retention
// window, so a long-lived registry doesn't grow without bound.
type Sweeper struct {
	registry  *Registry
	retention time.Duration
	interval  time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
}

func NewSweeper(registry *Registry, retention, interval time.Duration) *Sweeper {
	return &Sweeper{
		registry:  registry,
		retention: retention,
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

// Run blocks, sweeping on each tick, until Stop is called.
func (s *Sweeper) Run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Sweeper) sweep() {
	cutoff := now().Add(-s.retention)
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()
	for id, t := range s.registry.tasks {
		if !t.State().Terminal() {
			continue
		}
		if t.CreatedAt.Before(cutoff) {
			delete(s.registry.tasks, id)
		}
	}
}
