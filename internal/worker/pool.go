// Package worker implements the permutation worker (spec.md §4.6): it
// extends a survivor set of candidate solutions tile by tile under a
// fixed demand ordering and stock selection, and publishes its finished
// survivors into a shared, material-scoped pool.
package worker

import (
	"sync"

	"github.com/piwi3910/cutstock/internal/ranking"
	"github.com/piwi3910/cutstock/internal/solution"
)

// Pool is the shared, lock-protected set of finished candidate
// solutions for one material, ranked under the final comparator and
// capped at a fixed size so it never grows with the number of worker
// runs that feed it.
type Pool struct {
	mu        sync.Mutex
	final     ranking.Sequence
	cap       int
	survivors []*solution.Solution
}

// NewPool creates a Pool ranked under final, retaining at most capacity
// solutions at any time.
func NewPool(final ranking.Sequence, capacity int) *Pool {
	return &Pool{final: final, cap: capacity}
}

// Publish merges a worker run's finished survivors into the pool under
// lock, then re-sorts and truncates to the pool cap.
func (p *Pool) Publish(candidates []*solution.Solution) {
	if len(candidates) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.survivors = append(p.survivors, candidates...)
	p.final.Sort(p.survivors)
	if len(p.survivors) > p.cap {
		p.survivors = p.survivors[:p.cap]
	}
}

// Best returns the current best solution in the pool, or nil if empty.
func (p *Pool) Best() *solution.Solution {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.survivors) == 0 {
		return nil
	}
	return p.survivors[0]
}

// HasAllFitSolution reports whether the pool's best solution places
// every demand tile (no no-fit entries) — the scheduler's stop
// condition for the "extra permutations with a solution" budget.
func (p *Pool) HasAllFitSolution() bool {
	best := p.Best()
	return best != nil && best.NoFitCount() == 0
}

// Snapshot returns a copy of every solution currently in the pool, best
// first.
func (p *Pool) Snapshot() []*solution.Solution {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*solution.Solution, len(p.survivors))
	copy(out, p.survivors)
	return out
}
