package fanout

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunPreservesInputOrder(t *testing.T) {
	t.Parallel()

	inputs := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	results := Run(context.Background(), inputs, 3, func(ctx context.Context, n int) (string, error) {
		// Later slots finish first within a wave.
		time.Sleep(time.Duration(10-n) * time.Millisecond)
		return fmt.Sprintf("item-%d", n), nil
	})

	if len(results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(results))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("unexpected nil slot at %d", i)
		}
		if want := fmt.Sprintf("item-%d", i); *r != want {
			t.Fatalf("slot %d: expected %s, got %s", i, want, *r)
		}
	}
}

func TestRunFailureLeavesSiblingsIntact(t *testing.T) {
	t.Parallel()

	inputs := []int{0, 1, 2, 3, 4, 5, 6}

	results := Run(context.Background(), inputs, 5, func(ctx context.Context, n int) (int, error) {
		if n == 2 {
			return 0, fmt.Errorf("boom")
		}
		return n * 10, nil
	})

	for i, r := range results {
		if i == 2 {
			if r != nil {
				t.Fatalf("expected nil slot at failed index, got %v", *r)
			}
			continue
		}
		if r == nil {
			t.Fatalf("slot %d missing despite sibling failure", i)
		}
		if *r != i*10 {
			t.Fatalf("slot %d: expected %d, got %d", i, i*10, *r)
		}
	}
}

func TestRunBoundsConcurrencyPerWave(t *testing.T) {
	t.Parallel()

	const chunk = 5
	inputs := make([]int, 17)

	var current, peak int64
	var mu sync.Mutex

	Run(context.Background(), inputs, chunk, func(ctx context.Context, _ int) (struct{}, error) {
		n := atomic.AddInt64(&current, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&current, -1)
		return struct{}{}, nil
	})

	if peak > chunk {
		t.Fatalf("peak concurrency %d exceeded chunk size %d", peak, chunk)
	}
}

func TestRunEmptyInput(t *testing.T) {
	t.Parallel()

	results := Run(context.Background(), nil, 5, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestRunZeroChunkFallsBackToDefault(t *testing.T) {
	t.Parallel()

	inputs := []int{1, 2, 3}
	results := Run(context.Background(), inputs, 0, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	for i, r := range results {
		if r == nil || *r != inputs[i] {
			t.Fatalf("slot %d wrong: %v", i, r)
		}
	}
}
