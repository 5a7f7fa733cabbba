package worker

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

var ErrPoolClosed = errors.New("worker pool is closed")

// Pool bounds the number of units of work running at once. A unit that has
// started always runs to completion: it gets a context that keeps the
// caller's values but ignores the caller's cancellation.
type Pool struct {
	sem    *semaphore.Weighted
	size   int64
	closed atomic.Bool
}

func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: int64(size),
	}
}

// Do waits for a free slot and runs fn in it. If ctx is done before a slot
// frees up, fn never runs and ctx.Err() is returned.
func (p *Pool) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)

	if p.closed.Load() {
		return ErrPoolClosed
	}

	return fn(context.WithoutCancel(ctx))
}

// Close stops accepting work and waits until running units finish or ctx is
// done.
func (p *Pool) Close(ctx context.Context) error {
	p.closed.Store(true)

	if err := p.sem.Acquire(ctx, p.size); err != nil {
		return err
	}
	p.sem.Release(p.size)

	return nil
}

// Run is a typed helper over Pool.Do.
func Run[T any](ctx context.Context, p *Pool, fn func(ctx context.Context) (T, error)) (T, error) {
	var ret T

	err := p.Do(ctx, func(ctx context.Context) error {
		var err error
		ret, err = fn(ctx)

		return err
	})

	return ret, err
}
