package scheduler

import (
	"context"
	"sync"

	"github.com/piwi3910/cutstock/internal/config"
	"github.com/piwi3910/cutstock/internal/logging"
	"github.com/piwi3910/cutstock/internal/placement"
	"github.com/piwi3910/cutstock/internal/ranking"
	"github.com/piwi3910/cutstock/internal/solution"
	"github.com/piwi3910/cutstock/internal/stock"
	"github.com/piwi3910/cutstock/internal/task"
	"github.com/piwi3910/cutstock/internal/tile"
	"github.com/piwi3910/cutstock/internal/worker"
)

// poolCapacity bounds how many survivor solutions a material's pool
// retains across every worker run feeding it; only the best ones
// matter for the final per-material recomputation.
const poolCapacity = 50

// axisVariants is the fixed set of cut_first_axis jobs a
// (permutation, stock selection) pair may spawn.
var axisVariants = []placement.CutFirstAxis{placement.Both, placement.HorizontalFirst, placement.VerticalFirst}

// Scheduler runs the per-material fan-out of spec.md §4.7: it groups
// and subgroups demand, generates group permutations, drives the stock
// selector, and dispatches permutation-worker jobs under a bounded
// concurrency budget, reporting progress and recording the best
// solution per material onto t.
type Scheduler struct {
	cfg    config.OptimizerConfig
	logger logging.Logger
}

// New builds a Scheduler with the given tuning and logger.
func New(cfg config.OptimizerConfig, logger logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.NullLogger{}
	}
	return &Scheduler{cfg: cfg, logger: logger}
}

// Run drives every material set to completion (or cooperative
// cancellation via t), recording best-so-far and percent-done onto t as
// it goes, and returns the final best solution per material plus any
// demand tiles whose material had no matching stock at all.
func (s *Scheduler) Run(t *task.Task, demand, stock_ []tile.Dimensions, kerf, minTrim int64) (map[string]*solution.Solution, []tile.Dimensions) {
	sets, unmatched := GroupByMaterial(demand, stock_)

	results := make(map[string]*solution.Solution, len(sets))
	var resultsMu sync.Mutex
	var wg sync.WaitGroup

	for _, mset := range sets {
		wg.Add(1)
		go func(mset MaterialSet) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("material executor panicked for %s: %v", mset.Material, r)
					t.Fail(task.ErrConcurrencyFailure)
				}
			}()
			best := s.runMaterial(t, mset, kerf, minTrim)
			resultsMu.Lock()
			results[mset.Material] = best
			resultsMu.Unlock()
		}(mset)
	}
	wg.Wait()

	return results, unmatched
}

// runMaterial executes the group/permutation/selection/worker fan-out
// for a single material and returns its best solution, or nil if no
// permutation produced one.
func (s *Scheduler) runMaterial(t *task.Task, mset MaterialSet, kerf, minTrim int64) *solution.Solution {
	logger := s.logger.WithField("material", mset.Material)

	demandTiles := Expand(mset.Groups)
	oneDim := OneDimensional(demandTiles, mset.Stock)
	// The subgroup threshold and cap both scale with total demand size
	// (tiles/100, floored at 1): the same dynamic value governs "does
	// this material's demand need splitting at all" and "how many
	// pieces does each group split into". DistinctGroupPermutationCap is
	// a separate knob, used only to cap how many of the resulting
	// groups GroupPermutations actually permutes.
	maxGroupSize := len(demandTiles) / 100
	if maxGroupSize < 1 {
		maxGroupSize = 1
	}
	groups := Subgroup(mset.Groups, maxGroupSize, maxGroupSize, oneDim)
	perms := GroupPermutations(groups, s.cfg.Scheduler.DistinctGroupPermutationCap)

	var demandArea, demandMaxD int64
	for _, d := range demandTiles {
		demandArea += d.Area()
		if d.MaxDim() > demandMaxD {
			demandMaxD = d.MaxDim()
		}
	}

	pool := worker.NewPool(ranking.FinalSequence(s.cfg.OptimizationPriority), poolCapacity)
	axis := newAxisStats(s.cfg.Scheduler)
	intermediate := ranking.IntermediateSequence(s.cfg.OptimizationPriority)

	maxThreads := s.cfg.MaxSimultaneousThreads
	if maxThreads < 1 {
		maxThreads = 1
	}
	slots := make(chan struct{}, maxThreads)

	var wg sync.WaitGroup
	var extraPermutationsConsumed int
	total := len(perms)

	// anySelection/selectorFailure track whether the stock selector ever
	// produced a feasible combination for this material, across every
	// permutation tried (the selector's feasibility is invariant across
	// permutations: same stock, same demand area/max-dim). If it never
	// did, that's spec.md §7's StockInfeasible (selector exhausted
	// without a candidate) or GeneratorLimit (selector hit its
	// enumeration ceiling first) — both recorded on t as Error.
	var anySelection bool
	var selectorFailure error

	for i, perm := range perms {
		select {
		case <-t.Cancelled():
			wg.Wait()
			return pool.Best()
		default:
		}
		if t.State() != task.Running {
			wg.Wait()
			return pool.Best()
		}
		if pool.HasAllFitSolution() {
			if extraPermutationsConsumed >= s.cfg.Scheduler.ExtraPermutationsWithSolution {
				break
			}
			extraPermutationsConsumed++
		}

		ordering := DemandOrdering(perm)
		selector := stock.NewSelector(mset.Stock, demandArea, demandMaxD, s.cfg.Selector.LengthHint, s.cfg.Selector.GeneratorLimit)

		for {
			selection, ok, err := selector.Next()
			if err != nil {
				logger.Warn("stock selector stopped early: %v", err)
				selectorFailure = err
				break
			}
			if !ok {
				break
			}
			anySelection = true

			for _, variant := range axisVariants {
				if !axis.Eligible(variant) {
					continue
				}

				select {
				case <-t.Cancelled():
					wg.Wait()
					return pool.Best()
				default:
				}

				job := worker.Job{
					Permutation:    ordering,
					Selection:      selection,
					Kerf:           kerf,
					MinTrim:        minTrim,
					Grain:          s.cfg.GrainPolicy(),
					Axis:           variant,
					Intermediate:   intermediate,
					AccuracyFactor: s.cfg.AccuracyFactor,
				}

				wg.Add(1)
				slots <- struct{}{}
				go func(job worker.Job, axisVariant placement.CutFirstAxis) {
					defer wg.Done()
					defer func() { <-slots }()
					defer func() {
						if r := recover(); r != nil {
							logger.Error("worker panicked: %v", r)
							t.Fail(task.ErrWorkerFailure)
						}
					}()

					beforeID := bestID(pool)
					worker.Run(context.Background(), job, pool, t.Cancelled(), nil)
					won := bestID(pool) != beforeID
					axis.RecordAttempt(axisVariant, won)

					if b := pool.Best(); b != nil {
						t.UpdateBest(mset.Material, b)
					}
				}(job, variant)
			}
		}

		t.SetPercentDone(mset.Material, percentOf(i+1, total))
	}

	wg.Wait()
	t.SetPercentDone(mset.Material, 100)

	if len(perms) > 0 && !anySelection && t.State() == task.Running {
		if selectorFailure != nil {
			t.Fail(task.ErrGeneratorLimit)
		} else {
			t.Fail(task.ErrStockInfeasible)
		}
	}

	return pool.Best()
}

func bestID(p *worker.Pool) int64 {
	if b := p.Best(); b != nil {
		return b.ID
	}
	return -1
}

func percentOf(done, total int) int {
	if total <= 0 {
		return 100
	}
	return done * 100 / total
}
