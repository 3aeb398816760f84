package task

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_LifecycleQueuedToFinished(t *testing.T) {
	tsk := New("t1", []string{"ply"})
	assert.Equal(t, Queued, tsk.State())

	require.True(t, tsk.Start())
	assert.Equal(t, Running, tsk.State())

	tsk.SetPercentDone("ply", 50)
	assert.Equal(t, 50, tsk.PercentDone())

	tsk.Done()
	assert.Equal(t, Finished, tsk.State())
	assert.Equal(t, 100, tsk.PercentDone())
}

func TestTask_TerminalStatesAreSticky(t *testing.T) {
	tsk := New("t2", []string{"ply"})
	require.True(t, tsk.Start())
	tsk.Fail(errors.New("boom"))
	assert.Equal(t, Error, tsk.State())

	tsk.Done() // no-op: already terminal
	assert.Equal(t, Error, tsk.State())
	assert.EqualError(t, tsk.Err(), "boom")
}

func TestTask_StopClosesCancelChannel(t *testing.T) {
	tsk := New("t3", nil)
	select {
	case <-tsk.Cancelled():
		t.Fatal("should not be cancelled yet")
	default:
	}
	tsk.Stop()
	tsk.Stop() // must not panic on double-call
	<-tsk.Cancelled()
}

func TestTask_Terminate_Immediate(t *testing.T) {
	tsk := New("t4", []string{"ply"})
	require.True(t, tsk.Start())
	tsk.Terminate()
	assert.Equal(t, Terminated, tsk.State())
	select {
	case <-tsk.Cancelled():
	default:
		t.Fatal("Terminate must also close the cancel channel")
	}
}

func TestRegistry_SingleTaskPerOwner(t *testing.T) {
	r := NewRegistry()
	_, err := r.Submit("client-a", []string{"ply"}, true)
	require.NoError(t, err)

	_, err = r.Submit("client-a", []string{"ply"}, true)
	assert.ErrorIs(t, err, ErrTaskAlreadyRunning)

	_, err = r.Submit("client-b", []string{"ply"}, true)
	assert.NoError(t, err)
}

func TestRegistry_AllowsNewTaskAfterPriorOneTerminates(t *testing.T) {
	r := NewRegistry()
	first, err := r.Submit("client-a", []string{"ply"}, true)
	require.NoError(t, err)
	first.Terminate()

	_, err = r.Submit("client-a", []string{"ply"}, true)
	assert.NoError(t, err)
}

func TestStatusCodeForError(t *testing.T) {
	assert.Equal(t, Ok, StatusCodeForError(nil))
	assert.Equal(t, InvalidTiles, StatusCodeForError(ErrInvalidTiles))
	assert.Equal(t, TaskAlreadyRunning, StatusCodeForError(ErrTaskAlreadyRunning))
}
