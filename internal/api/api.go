// Package api implements the engine's external interface (spec.md §6):
// submit/status/stop/terminate/stats, backed by a task.Registry and a
// scheduler.Scheduler.
package api

import (
	"time"

	"github.com/piwi3910/cutstock/internal/config"
	"github.com/piwi3910/cutstock/internal/logging"
	"github.com/piwi3910/cutstock/internal/scale"
	"github.com/piwi3910/cutstock/internal/scheduler"
	"github.com/piwi3910/cutstock/internal/solution"
	"github.com/piwi3910/cutstock/internal/task"
	"github.com/piwi3910/cutstock/internal/tile"
)

// SubmitRequest is the wire-level request to submit: the unscaled
// demand/stock lists plus the per-run tuning.
type SubmitRequest struct {
	Owner              string                 `json:"owner"`
	Demand             []scale.DemandItem     `json:"demand"`
	Stock              []scale.StockItem      `json:"stock"`
	Config             config.OptimizerConfig `json:"config"`
	SingleTaskPerOwner bool                   `json:"single_task_per_owner"`
}

// SubmitResponse mirrors spec.md §6's submit() contract.
type SubmitResponse struct {
	StatusCode task.StatusCode `json:"status_code"`
	TaskID     string          `json:"task_id,omitempty"`
}

// StatusResponse mirrors spec.md §6's status() contract. InitPercent is
// always 0 in this implementation: there is no distinct initialization
// phase tracked separately from per-material percent-done.
type StatusResponse struct {
	State               string                         `json:"state"`
	PercentDone         int                            `json:"percent_done"`
	InitPercent         int                            `json:"init_percent"`
	CurrentBestSolution map[string]*solution.Solution `json:"current_best_solution,omitempty"`
}

// StatsResponse mirrors spec.md §6's stats() contract.
type StatsResponse struct {
	PerStateCounts map[string]int `json:"per_state_counts"`
	RunningCount   int            `json:"running_count"`
	QueuedCount    int            `json:"queued_count"`
	FinishedCount  int            `json:"finished_count"`
	Tasks          []TaskReport   `json:"tasks"`
}

// TaskReport is one task's row in stats().
type TaskReport struct {
	TaskID      string `json:"task_id"`
	State       string `json:"state"`
	PercentDone int    `json:"percent_done"`
}

// Engine wires the task registry and scheduler into the external
// interface. One Engine serves every client of a process.
type Engine struct {
	registry *task.Registry
	logger   logging.Logger
}

// NewEngine creates an Engine with a fresh task registry.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NullLogger{}
	}
	return &Engine{registry: task.NewRegistry(), logger: logger}
}

// Submit validates req, registers a task, and kicks off its scheduler
// run in the background. It never blocks for the run to finish.
func (e *Engine) Submit(req SubmitRequest) SubmitResponse {
	if err := scale.Validate(req.Demand, req.Stock); err != nil {
		return SubmitResponse{StatusCode: task.StatusCodeForError(err)}
	}

	materials := distinctMaterials(req.Demand)
	t, err := e.registry.Submit(req.Owner, materials, req.SingleTaskPerOwner)
	if err != nil {
		return SubmitResponse{StatusCode: task.StatusCodeForError(err)}
	}

	go e.run(t, req)
	return SubmitResponse{StatusCode: task.Ok, TaskID: t.ID}
}

func (e *Engine) run(t *task.Task, req SubmitRequest) {
	if !t.Start() {
		return
	}

	scaled, err := scale.Scale(req.Demand, req.Stock, req.Config.Kerf, req.Config.MinTrim)
	if err != nil {
		t.Fail(err)
		return
	}

	sched := scheduler.New(req.Config, e.logger)
	results, unmatched := sched.Run(t, scaled.Demand, scaled.Stock, scaled.Kerf, scaled.MinTrim)
	for material, best := range results {
		if best != nil {
			t.UpdateBest(material, best)
		}
	}
	recordUnmatched(t, unmatched)

	if t.State() == task.Running {
		select {
		case <-t.Cancelled():
			t.Terminate()
		default:
			t.Done()
		}
	}
}

// recordUnmatched gives every material with no matching stock an empty
// solution whose NoFit list is the full set of that material's demand
// tiles, carried through from the start per spec.md §4.3.
func recordUnmatched(t *task.Task, unmatched []tile.Dimensions) {
	byMaterial := make(map[string][]tile.Dimensions)
	for _, d := range unmatched {
		byMaterial[d.Material] = append(byMaterial[d.Material], d)
	}
	for material, tiles := range byMaterial {
		empty := solution.New(0, nil)
		empty.NoFit = tiles
		t.UpdateBest(material, empty)
		t.SetPercentDone(material, 100)
	}
}

// Status returns a pollable status snapshot, or false if task_id is
// unknown.
func (e *Engine) Status(taskID string) (StatusResponse, bool) {
	t, ok := e.registry.Get(taskID)
	if !ok {
		return StatusResponse{}, false
	}
	return StatusResponse{
		State:               t.State().String(),
		PercentDone:         t.PercentDone(),
		InitPercent:         0,
		CurrentBestSolution: t.Best(),
	}, true
}

// Stop requests cooperative cancellation of taskID. Returns false if
// unknown.
func (e *Engine) Stop(taskID string) bool {
	t, ok := e.registry.Get(taskID)
	if !ok {
		return false
	}
	t.Stop()
	return true
}

// Terminate sets taskID Terminated immediately. Returns false if
// unknown.
func (e *Engine) Terminate(taskID string) bool {
	t, ok := e.registry.Get(taskID)
	if !ok {
		return false
	}
	t.Terminate()
	return true
}

// Stats returns aggregate and per-task reporting across every task
// still held by the registry.
func (e *Engine) Stats() StatsResponse {
	all := e.registry.All()
	counts := e.registry.StateCounts()

	perState := make(map[string]int, len(counts))
	for state, n := range counts {
		perState[state.String()] = n
	}

	reports := make([]TaskReport, 0, len(all))
	for _, t := range all {
		reports = append(reports, TaskReport{
			TaskID:      t.ID,
			State:       t.State().String(),
			PercentDone: t.PercentDone(),
		})
	}

	return StatsResponse{
		PerStateCounts: perState,
		RunningCount:   perState[task.Running.String()],
		QueuedCount:    perState[task.Queued.String()],
		FinishedCount:  perState[task.Finished.String()],
		Tasks:          reports,
	}
}

// Sweeper builds the registry's lifecycle sweeper: it evicts terminal
// tasks older than retention, checking every interval. The caller owns
// running it (call Run in a goroutine, Stop to shut it down).
func (e *Engine) Sweeper(retention, interval time.Duration) *task.Sweeper {
	return task.NewSweeper(e.registry, retention, interval)
}

func distinctMaterials(demand []scale.DemandItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range demand {
		if !d.Enabled || seen[d.Material] {
			continue
		}
		seen[d.Material] = true
		out = append(out, d.Material)
	}
	return out
}
