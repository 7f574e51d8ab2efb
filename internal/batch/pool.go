// Package batch fans independent profile computations out across a bounded
// set of worker goroutines. Each computation is stateless, so workers need
// no synchronization beyond job dispatch.
package batch

import (
	"context"
	"sync"

	"github.com/nlcsci/pmcice/pkg/icemodel"
)

// Job is one profile to compute together with its model settings.
type Job struct {
	Profile          icemodel.Profile
	Parameterization icemodel.Parameterization
	Options          []icemodel.Option
}

// Outcome is the result of one Job. Err is non-nil for configuration
// errors (invalid parameterization, mismatched slice lengths) or when the
// batch was cancelled before the job was dispatched.
type Outcome struct {
	Result *icemodel.Result
	Err    error
}

// Pool runs jobs across a fixed number of workers.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count; counts below one are
// raised to one.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run computes every job and returns outcomes in job order. One job's
// failure never blocks the others. When ctx is cancelled mid-batch,
// jobs not yet dispatched get ctx.Err() as their outcome; jobs already
// running finish normally.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Outcome {
	out := make([]Outcome, len(jobs))
	idx := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				res, err := icemodel.Compute(jobs[i].Profile, jobs[i].Parameterization, jobs[i].Options...)
				out[i] = Outcome{Result: res, Err: err}
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(jobs); next++ {
		select {
		case <-ctx.Done():
			break dispatch
		case idx <- next:
		}
	}
	close(idx)
	wg.Wait()

	for i := next; i < len(jobs); i++ {
		out[i] = Outcome{Err: ctx.Err()}
	}
	return out
}
