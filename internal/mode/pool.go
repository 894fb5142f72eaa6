package mode

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/idelchi/gosym/internal/symmetric"
)

// Pool bounds the number of block tasks running at once across every Mode sharing it.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool returns a pool running at most workers block tasks concurrently.
// A non-positive value selects runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Pool{
		sem:  semaphore.NewWeighted(int64(workers)),
		size: workers,
	}
}

// Size returns the maximum number of concurrent block tasks.
func (p *Pool) Size() int {
	return p.size
}

// run executes task for block indices [0, blocks) and copies each result to out at
// index*blockSize. Results land at their own offset whatever order the tasks finish in.
// A failing block does not stop the others; the first failure is returned once all
// submitted tasks are done. Cancelling ctx stops further submissions.
func (p *Pool) run(ctx context.Context, blocks, blockSize int, out []byte, task func(i int) ([]byte, error)) error {
	var group errgroup.Group

	for i := range blocks {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return errors.Join(fmt.Errorf("submitting block %d: %w", i, err), group.Wait())
		}

		group.Go(func() error {
			defer p.sem.Release(1)

			result, err := task(i)
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}

			if len(result) != blockSize {
				return fmt.Errorf("block %d: %w", i, symmetric.InvalidBlock(len(result), blockSize))
			}

			copy(out[i*blockSize:], result)

			return nil
		})
	}

	return group.Wait()
}
