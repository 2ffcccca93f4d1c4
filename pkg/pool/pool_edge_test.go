package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_EmptyItems(t *testing.T) {
	called := false
	worker := func(ctx context.Context, item int) error {
		called = true
		return nil
	}

	errs := Run(context.Background(), []int{}, 5, worker)

	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %d", len(errs))
	}
	if called {
		t.Error("Worker should not be called with empty items")
	}
}

func TestRun_SingleItem(t *testing.T) {
	var called int32
	worker := func(ctx context.Context, item int) error {
		atomic.AddInt32(&called, 1)
		return nil
	}

	errs := Run(context.Background(), []int{1}, 1, worker)

	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %d", len(errs))
	}
	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Worker should be called once, called %d times", called)
	}
}

func TestRun_MoreWorkersThanItems(t *testing.T) {
	var callCount int32
	worker := func(ctx context.Context, item int) error {
		atomic.AddInt32(&callCount, 1)
		return nil
	}

	items := []int{1, 2, 3}
	errs := Run(context.Background(), items, 10, worker)

	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %d", len(errs))
	}
	if atomic.LoadInt32(&callCount) != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

func TestRun_ZeroWorkers(t *testing.T) {
	// Worker counts below 1 are clamped to a single worker
	var callCount int32
	worker := func(ctx context.Context, item int) error {
		atomic.AddInt32(&callCount, 1)
		return nil
	}

	errs := Run(context.Background(), []int{1, 2, 3}, 0, worker)

	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %d", len(errs))
	}
	if atomic.LoadInt32(&callCount) != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

func TestRun_NegativeWorkers(t *testing.T) {
	// Negative counts are clamped the same way as zero
	var callCount int32
	worker := func(ctx context.Context, item int) error {
		atomic.AddInt32(&callCount, 1)
		return nil
	}

	errs := Run(context.Background(), []int{1, 2, 3}, -5, worker)

	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %d", len(errs))
	}
	if atomic.LoadInt32(&callCount) != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

func TestRun_AllItemsReturnError(t *testing.T) {
	expectedErr := errors.New("worker error")
	worker := func(ctx context.Context, item int) error {
		return expectedErr
	}

	items := []int{1, 2, 3, 4, 5}
	errs := Run(context.Background(), items, 2, worker)

	if len(errs) != len(items) {
		t.Errorf("Expected %d errors, got %d", len(items), len(errs))
	}

	for _, err := range errs {
		if err != expectedErr {
			t.Errorf("Expected error %v, got %v", expectedErr, err)
		}
	}
}

func TestRun_MixedSuccessAndFailure(t *testing.T) {
	worker := func(ctx context.Context, item int) error {
		if item%2 == 0 {
			return errors.New("even number error")
		}
		return nil
	}

	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	errs := Run(context.Background(), items, 3, worker)

	// Should have 5 errors (even numbers)
	if len(errs) != 5 {
		t.Errorf("Expected 5 errors, got %d", len(errs))
	}
}

func TestRun_WorkerPanic(t *testing.T) {
	t.Skip("Skipping panic test - panics in goroutines can cause test hangs")
	// Panics in worker goroutines would crash the goroutine
	// and potentially leave the pool in an inconsistent state
	// Testing panic recovery is complex and can hang tests
}

func TestRun_SlowWorkers(t *testing.T) {
	worker := func(ctx context.Context, item int) error {
		time.Sleep(100 * time.Millisecond)
		return nil
	}

	items := []int{1, 2, 3, 4, 5}
	start := time.Now()

	errs := Run(context.Background(), items, 5, worker)

	elapsed := time.Since(start)

	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %d", len(errs))
	}

	// With 5 workers, should complete in ~100ms, not 500ms
	if elapsed > 200*time.Millisecond {
		t.Errorf("Took too long: %v (expected ~100ms with parallel workers)", elapsed)
	}
}

func TestRun_ContextCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel before Run

	var called int32
	worker := func(ctx context.Context, item int) error {
		atomic.AddInt32(&called, 1)
		return nil
	}

	items := []int{1, 2, 3}
	errs := Run(ctx, items, 2, worker)

	// Workers might or might not be called depending on timing
	// But Run should return without blocking
	t.Logf("Workers called: %d, errors: %d", atomic.LoadInt32(&called), len(errs))
}

func TestRun_ContextCancelledDuringWork(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var started int32
	worker := func(ctx context.Context, item int) error {
		atomic.AddInt32(&started, 1)
		time.Sleep(50 * time.Millisecond)

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	errs := Run(ctx, items, 5, worker)

	// Should stop processing after cancellation
	// Some workers will finish, others will be cancelled
	t.Logf("Started: %d, errors: %d", atomic.LoadInt32(&started), len(errs))

	if atomic.LoadInt32(&started) == 100 {
		t.Error("Should not process all items after cancellation")
	}
}

func TestRun_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	worker := func(ctx context.Context, item int) error {
		select {
		case <-time.After(100 * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	items := []int{1, 2, 3, 4, 5}
	errs := Run(ctx, items, 2, worker)

	// Should timeout and return context errors
	t.Logf("Errors after timeout: %d", len(errs))
}

func TestRun_LargeNumberOfItems(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping large test in short mode")
	}

	var processed int32
	worker := func(ctx context.Context, item int) error {
		atomic.AddInt32(&processed, 1)
		return nil
	}

	items := make([]int, 10000)
	for i := range items {
		items[i] = i
	}

	errs := Run(context.Background(), items, 10, worker)

	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %d", len(errs))
	}
	if atomic.LoadInt32(&processed) != 10000 {
		t.Errorf("Expected 10000 processed, got %d", processed)
	}
}

func TestRun_ConcurrentMapModification(t *testing.T) {
	// Ensure no data races when workers access shared data
	m := sync.Map{}

	worker := func(ctx context.Context, item int) error {
		m.Store(item, true)
		time.Sleep(1 * time.Millisecond)
		_, ok := m.Load(item)
		if !ok {
			return errors.New("item not found")
		}
		return nil
	}

	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	errs := Run(context.Background(), items, 10, worker)

	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %d", len(errs))
	}
}

func TestRun_WorkerReturnsNil(t *testing.T) {
	worker := func(ctx context.Context, item int) error {
		return nil
	}

	errs := Run(context.Background(), []int{1, 2, 3}, 2, worker)

	if len(errs) != 0 {
		t.Errorf("Expected no errors when worker returns nil, got %d", len(errs))
	}
}

func TestRun_DifferentItemTypes(t *testing.T) {
	// Test with string items
	t.Run("strings", func(t *testing.T) {
		var result []string
		var mu sync.Mutex

		worker := func(ctx context.Context, item string) error {
			mu.Lock()
			result = append(result, item)
			mu.Unlock()
			return nil
		}

		items := []string{"a", "b", "c"}
		errs := Run(context.Background(), items, 2, worker)

		if len(errs) != 0 {
			t.Errorf("Expected no errors, got %d", len(errs))
		}
		if len(result) != 3 {
			t.Errorf("Expected 3 items processed, got %d", len(result))
		}
	})

	// Test with struct items
	t.Run("structs", func(t *testing.T) {
		type Task struct {
			ID   int
			Name string
		}

		var count int32
		worker := func(ctx context.Context, item Task) error {
			atomic.AddInt32(&count, 1)
			return nil
		}

		items := []Task{{1, "a"}, {2, "b"}, {3, "c"}}
		errs := Run(context.Background(), items, 2, worker)

		if len(errs) != 0 {
			t.Errorf("Expected no errors, got %d", len(errs))
		}
		if atomic.LoadInt32(&count) != 3 {
			t.Errorf("Expected 3 tasks processed, got %d", count)
		}
	})
}

func TestRun_ErrorCollection(t *testing.T) {
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")
	err3 := errors.New("error 3")

	worker := func(ctx context.Context, item int) error {
		switch item {
		case 1:
			return err1
		case 2:
			return err2
		case 3:
			return err3
		default:
			return nil
		}
	}

	items := []int{1, 2, 3, 4, 5}
	errs := Run(context.Background(), items, 2, worker)

	if len(errs) != 3 {
		t.Errorf("Expected 3 errors, got %d", len(errs))
	}

	// Verify all expected errors are present
	errorSet := make(map[error]bool)
	for _, err := range errs {
		errorSet[err] = true
	}

	if !errorSet[err1] || !errorSet[err2] || !errorSet[err3] {
		t.Error("Not all expected errors were collected")
	}
}

func TestRun_WorkerChecksContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var processed int32
	worker := func(ctx context.Context, item int) error {
		// Worker properly checks context
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			atomic.AddInt32(&processed, 1)
			time.Sleep(20 * time.Millisecond)
			return nil
		}
	}

	// Use more items to ensure some won't be processed
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	// Cancel after a short time
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	errs := Run(ctx, items, 3, worker)

	p := atomic.LoadInt32(&processed)
	t.Logf("Processed %d items before cancellation, %d errors", p, len(errs))

	// With 100 items, 3 workers, 20ms per item, and 50ms timeout,
	// should process roughly 3-9 items before cancellation
	if p >= 50 {
		t.Errorf("Processed too many items (%d) after context cancellation, expected less than 50", p)
	}
}
