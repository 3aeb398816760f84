package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cutstock/internal/config"
	"github.com/piwi3910/cutstock/internal/scale"
	"github.com/piwi3910/cutstock/internal/task"
)

func sampleRequest() SubmitRequest {
	cfg := config.DefaultOptimizerConfig()
	cfg.Kerf = 0
	cfg.Scheduler.ExtraPermutationsWithSolution = 0
	return SubmitRequest{
		Owner: "client-1",
		Demand: []scale.DemandItem{
			{ID: "d1", Width: 100, Height: 100, Material: "ply", Count: 2, Enabled: true},
		},
		Stock: []scale.StockItem{
			{ID: "s1", Width: 200, Height: 100, Material: "ply", Count: 1, Enabled: true},
		},
		Config: cfg,
	}
}

func waitForTerminal(t *testing.T, e *Engine, taskID string) StatusResponse {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, ok := e.Status(taskID)
		require.True(t, ok)
		if resp.State == task.Finished.String() || resp.State == task.Error.String() || resp.State == task.Terminated.String() {
			return resp
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("task did not reach a terminal state in time")
	return StatusResponse{}
}

func TestSubmit_InvalidDemandRejectedSynchronously(t *testing.T) {
	e := NewEngine(nil)
	req := sampleRequest()
	req.Demand = nil

	resp := e.Submit(req)
	assert.Equal(t, task.InvalidTiles, resp.StatusCode)
	assert.Empty(t, resp.TaskID)
}

func TestSubmit_RunsToFinishedAndReportsBest(t *testing.T) {
	e := NewEngine(nil)
	resp := e.Submit(sampleRequest())
	require.Equal(t, task.Ok, resp.StatusCode)
	require.NotEmpty(t, resp.TaskID)

	status := waitForTerminal(t, e, resp.TaskID)
	assert.Equal(t, task.Finished.String(), status.State)
	assert.Equal(t, 100, status.PercentDone)

	best, ok := status.CurrentBestSolution["ply"]
	require.True(t, ok)
	require.NotNil(t, best)
	assert.Equal(t, 2, best.PlacedTiles())
}

func TestSubmit_SingleTaskPerOwnerRejectsSecondSubmission(t *testing.T) {
	e := NewEngine(nil)
	req := sampleRequest()
	req.SingleTaskPerOwner = true

	first := e.Submit(req)
	require.Equal(t, task.Ok, first.StatusCode)

	second := e.Submit(req)
	assert.Equal(t, task.TaskAlreadyRunning, second.StatusCode)

	waitForTerminal(t, e, first.TaskID)
}

func TestStop_UnknownTaskReturnsFalse(t *testing.T) {
	e := NewEngine(nil)
	assert.False(t, e.Stop("does-not-exist"))
	assert.False(t, e.Terminate("does-not-exist"))
	_, ok := e.Status("does-not-exist")
	assert.False(t, ok)
}

func TestStats_CountsReflectSubmittedTasks(t *testing.T) {
	e := NewEngine(nil)
	resp := e.Submit(sampleRequest())
	require.Equal(t, task.Ok, resp.StatusCode)
	waitForTerminal(t, e, resp.TaskID)

	stats := e.Stats()
	require.Len(t, stats.Tasks, 1)
	assert.Equal(t, 1, stats.FinishedCount)
}

func TestSubmit_StockInfeasibleDemandFailsTheTask(t *testing.T) {
	e := NewEngine(nil)
	req := sampleRequest()
	// No combination of 200x100 stock panels can ever reach a 900-unit
	// max-dimension, however many are combined: Selection.MaxDim is the
	// largest single panel's max-dimension, not a sum.
	req.Demand = []scale.DemandItem{
		{ID: "d1", Width: 900, Height: 10, Material: "ply", Count: 1, Enabled: true},
	}

	resp := e.Submit(req)
	require.Equal(t, task.Ok, resp.StatusCode)

	status := waitForTerminal(t, e, resp.TaskID)
	assert.Equal(t, task.Error.String(), status.State)
}

func TestSubmit_UnmatchedMaterialRecordedAsNoFit(t *testing.T) {
	e := NewEngine(nil)
	req := sampleRequest()
	req.Demand = append(req.Demand, scale.DemandItem{
		ID: "d2", Width: 50, Height: 50, Material: "glass", Count: 1, Enabled: true,
	})

	resp := e.Submit(req)
	require.Equal(t, task.Ok, resp.StatusCode)

	status := waitForTerminal(t, e, resp.TaskID)
	glass, ok := status.CurrentBestSolution["glass"]
	require.True(t, ok)
	require.NotNil(t, glass)
	assert.Len(t, glass.NoFit, 1)
}
