// Package task implements the engine-side task state machine and
// registry: Queued/Running/Finished/Terminated/Error, percent-done
// tracking per material, and the closed set of pre-admission status
// codes and in-run error sentinels.
package task

import (
	"sync"
	"time"

	"github.com/piwi3910/cutstock/internal/solution"
)

// State is the task lifecycle state. Terminal states (Finished,
// Terminated, Error) are sticky: once set, State never changes again.
type State int

const (
	Queued State = iota
	Running
	Finished
	Terminated
	Error
)

func (s State) String() string {
	switch s {
	case Queued:
		return "Queued"
	case Running:
		return "Running"
	case Finished:
		return "Finished"
	case Terminated:
		return "Terminated"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

func (s State) Terminal() bool {
	return s == Finished || s == Terminated || s == Error
}

// MaterialProgress tracks one material's percent-done within a task.
type MaterialProgress struct {
	Material    string
	PercentDone int
}

// Task is one submitted optimization run. All mutation goes through its
// methods, which hold mu for the duration. Callers normally obtain a
// *Task from the Registry; New builds a standalone one.
type Task struct {
	ID        string
	CreatedAt time.Time

	mu            sync.Mutex
	state         State
	materials     map[string]*MaterialProgress
	err           error
	bestByMaterial map[string]*solution.Solution
	cancel        chan struct{}
	cancelOnce    sync.Once
}

// New creates a Queued task for the given set of materials.
func New(id string, materials []string) *Task {
	mp := make(map[string]*MaterialProgress, len(materials))
	for _, m := range materials {
		mp[m] = &MaterialProgress{Material: m}
	}
	return &Task{
		ID:             id,
		CreatedAt:      now(),
		state:          Queued,
		materials:      mp,
		bestByMaterial: make(map[string]*solution.Solution),
		cancel:         make(chan struct{}),
	}
}

func now() time.Time { return time.Now() }

// Start transitions Queued → Running. Returns false if the task was not
// in Queued.
func (t *Task) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Queued {
		return false
	}
	t.state = Running
	return true
}

// Done marks every material complete and transitions Running →
// Finished. No-op if the task is already in a terminal state.
func (t *Task) Done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Terminal() {
		return
	}
	for _, m := range t.materials {
		m.PercentDone = 100
	}
	t.state = Finished
}

// Fail transitions Running → Error and records the diagnostic. No-op if
// the task is already in a terminal state.
func (t *Task) Fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Terminal() {
		return
	}
	t.state = Error
	t.err = err
}

// Stop requests cooperative cancellation: the task moves to Terminated
// once its workers observe Cancelled() and drain. Safe to call more
// than once.
func (t *Task) Stop() {
	t.cancelOnce.Do(func() { close(t.cancel) })
}

// Terminate sets Terminated immediately, regardless of whether workers
// have drained; their results are discarded on arrival.
func (t *Task) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Stop()
	if t.state.Terminal() {
		return
	}
	t.state = Terminated
}

// Cancelled returns a channel closed once Stop or Terminate has been
// called; workers select on it at every cooperative-cancel boundary.
func (t *Task) Cancelled() <-chan struct{} { return t.cancel }

// State returns the task's current state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Err returns the diagnostic recorded by Fail, if any.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// SetPercentDone updates one material's progress, clamped to [0,100].
func (t *Task) SetPercentDone(material string, percent int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.materials[material]
	if !ok {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	m.PercentDone = percent
}

// PercentDone returns the overall task progress: the mean of every
// material's percent-done.
func (t *Task) PercentDone() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.materials) == 0 {
		return 100
	}
	var total int
	for _, m := range t.materials {
		total += m.PercentDone
	}
	return total / len(t.materials)
}

// UpdateBest records the current best Solution found so far for a
// material, overwriting any prior value.
func (t *Task) UpdateBest(material string, sol *solution.Solution) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bestByMaterial[material] = sol
}

// Best returns the current-best solution per material, for status()
// polling and the final per-material recomputation.
func (t *Task) Best() map[string]*solution.Solution {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]*solution.Solution, len(t.bestByMaterial))
	for k, v := range t.bestByMaterial {
		out[k] = v
	}
	return out
}
