package workerpool

import (
	"context"
	"sync"
)

type Task func(ctx context.Context) error

type Result struct {
	Err error
}

type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

func New(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

func (p *Pool) Submit(t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Run starts the workers. The returned channel is closed once every worker
// has exited, either because tasks was closed or ctx was cancelled.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

// ForEach runs fn for every index in [0,n) on at most workers goroutines and
// returns the first error. Callers write results into index-addressed slots,
// so output order does not depend on scheduling.
func ForEach(ctx context.Context, workers, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	if workers > n {
		workers = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := New(workers, n)
	results := p.Run(ctx)
	for i := 0; i < n; i++ {
		idx := i
		p.Submit(func(ctx context.Context) error { return fn(ctx, idx) })
	}
	p.Close()

	var firstErr error
	done := 0
	for r := range results {
		done++
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
			cancel()
		}
	}
	if firstErr != nil {
		return firstErr
	}
	if done < n {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
