package fanout

import (
	"context"
	"sync"
)

// DefaultChunkSize bounds how many operations run concurrently in one wave.
const DefaultChunkSize = 5

// Run executes op once per input, chunkSize at a time. Inputs are split into
// contiguous chunks; every task in a chunk runs concurrently and the whole
// chunk must finish before the next one starts. The result slice has the
// same length and order as inputs; a slot is nil when op failed for that
// input, and a failed slot never disturbs its siblings.
func Run[In, Out any](ctx context.Context, inputs []In, chunkSize int, op func(context.Context, In) (Out, error)) []*Out {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	results := make([]*Out, len(inputs))

	for base := 0; base < len(inputs); base += chunkSize {
		end := base + chunkSize
		if end > len(inputs) {
			end = len(inputs)
		}

		var wg sync.WaitGroup
		for i := base; i < end; i++ {
			wg.Add(1)
			go func(slot int, in In) {
				defer wg.Done()
				out, err := op(ctx, in)
				if err != nil {
					return
				}
				results[slot] = &out
			}(i, inputs[i])
		}
		wg.Wait()
	}

	return results
}
