// Package parallel dispatches independent per-frequency work units across a
// bounded set of workers.
//
// Results are written into pre-allocated buffers keyed by task index, so
// each worker touches only its own slots and no synchronization beyond the
// final join is needed. The serial path runs the identical task function,
// which keeps serial and parallel outputs bit-identical.
package parallel

import (
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// autoSizeThreshold is the minimum work size (samples times histories)
// before auto mode considers the fan-out overhead worthwhile.
const autoSizeThreshold = 50000

// ErrInvalidMode indicates an unknown parallel mode.
var ErrInvalidMode = errors.New("parallel: invalid mode")

// Mode controls whether per-frequency work fans out across workers.
type Mode int

const (
	// Auto lets the dispatcher decide based on the problem size.
	Auto Mode = iota
	// No forces sequential execution.
	No
	// Yes forces parallel execution.
	Yes
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case No:
		return "no"
	case Yes:
		return "yes"
	default:
		return "invalid"
	}
}

// Plan is a resolved dispatch decision.
type Plan struct {
	Parallel bool
	Workers  int
}

// Decide resolves mode into a concrete plan. Auto chooses parallel execution
// only when there is more than one task, the total work size exceeds a
// threshold, more than one CPU is available, and large per-task histories
// are not being returned. The worker count defaults to 4/5 of the available
// CPUs, capped by maxWorkers when that is positive.
func Decide(mode Mode, numTasks, workSize, maxWorkers int, wantHistories bool) (Plan, error) {
	if mode != Auto && mode != Yes && mode != No {
		return Plan{}, ErrInvalidMode
	}

	ncpu := runtime.NumCPU()

	if mode == Auto {
		if numTasks > 1 && workSize > autoSizeThreshold && !wantHistories && ncpu > 1 {
			mode = Yes
		} else {
			mode = No
		}
	}

	if mode == No {
		return Plan{Parallel: false, Workers: 1}, nil
	}

	workers := ncpu
	switch {
	case maxWorkers > 0 && workers > maxWorkers:
		workers = maxWorkers
	case workers > 4:
		workers = workers * 4 / 5
	}

	return Plan{Parallel: true, Workers: workers}, nil
}

// Run executes task(j) for j in [0, numTasks) according to the plan. Tasks
// must confine their writes to slots owned by index j. The first task error
// aborts the run and is returned; there are no retries and no partial-result
// recovery.
func Run(p Plan, numTasks int, task func(j int) error) error {
	if !p.Parallel || p.Workers <= 1 || numTasks <= 1 {
		for j := 0; j < numTasks; j++ {
			if err := task(j); err != nil {
				return err
			}
		}

		return nil
	}

	var g errgroup.Group
	g.SetLimit(p.Workers)

	for j := 0; j < numTasks; j++ {
		g.Go(func() error { return task(j) })
	}

	return g.Wait()
}
