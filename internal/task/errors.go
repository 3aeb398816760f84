package task

import "errors"

// Sentinel errors mapping 1:1 onto the abstract error kinds of the
// engine: InvalidInput, CapacityExceeded (both pre-admission, never
// recorded on a task), StockInfeasible/GeneratorLimit (recorded as
// Error with a diagnostic, partial solutions stay readable),
// WorkerFailure/ConcurrencyFailure (scheduler records, marks Error,
// cancels peers).
var (
	ErrInvalidTiles       = errors.New("task: demand tile list is empty or contains an invalid tile")
	ErrInvalidStockTiles  = errors.New("task: stock panel list is empty or contains an invalid panel")
	ErrTooManyPanels      = errors.New("task: demand panel count exceeds the limit")
	ErrTooManyStockPanels = errors.New("task: stock panel count exceeds the limit")
	ErrTaskAlreadyRunning = errors.New("task: this client already has a task running")
	ErrServerUnavailable  = errors.New("task: server has no capacity to accept new tasks")

	ErrStockInfeasible    = errors.New("task: no stock multiset can hold the demand")
	ErrGeneratorLimit     = errors.New("task: stock selector exceeded its enumeration ceiling")
	ErrWorkerFailure      = errors.New("task: a worker observed an internal invariant violation")
	ErrConcurrencyFailure = errors.New("task: a lock was poisoned or the executor failed unrecoverably")
)

// StatusCode is the closed set of submit() outcomes.
type StatusCode int

const (
	Ok StatusCode = iota
	InvalidTiles
	InvalidStockTiles
	TooManyPanels
	TooManyStockPanels
	TaskAlreadyRunning
	ServerUnavailable
)

func (c StatusCode) String() string {
	switch c {
	case Ok:
		return "Ok"
	case InvalidTiles:
		return "InvalidTiles"
	case InvalidStockTiles:
		return "InvalidStockTiles"
	case TooManyPanels:
		return "TooManyPanels"
	case TooManyStockPanels:
		return "TooManyStockPanels"
	case TaskAlreadyRunning:
		return "TaskAlreadyRunning"
	case ServerUnavailable:
		return "ServerUnavailable"
	default:
		return "Unknown"
	}
}

// StatusCodeForError maps a pre-admission sentinel error to its
// StatusCode, or Ok if err is nil.
func StatusCodeForError(err error) StatusCode {
	switch {
	case err == nil:
		return Ok
	case errors.Is(err, ErrInvalidTiles):
		return InvalidTiles
	case errors.Is(err, ErrInvalidStockTiles):
		return InvalidStockTiles
	case errors.Is(err, ErrTooManyPanels):
		return TooManyPanels
	case errors.Is(err, ErrTooManyStockPanels):
		return TooManyStockPanels
	case errors.Is(err, ErrTaskAlreadyRunning):
		return TaskAlreadyRunning
	default:
		return ServerUnavailable
	}
}
