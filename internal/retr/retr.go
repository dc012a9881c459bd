package retr

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sourcecd/skladbot/internal/models"
	"github.com/sourcecd/skladbot/internal/prjerrors"
)

type (
	Retr struct {
		maxRetries uint64
		fiboDuration,
		timeout time.Duration
		skippedErrors error
	}

	SnapshotFunc func(ctx context.Context) (*models.OrderCache, error)
	SaveFunc     func(ctx context.Context, snap *models.OrderCache) error
	UpsertFunc   func(ctx context.Context, order models.OrderSummary) (*models.OrderCache, error)
)

func (rtr *Retr) SnapshotFuncRetr(f SnapshotFunc) SnapshotFunc {
	bf := retry.WithMaxRetries(rtr.maxRetries, retry.NewFibonacci(rtr.fiboDuration))

	return func(ctx context.Context) (*models.OrderCache, error) {
		ctx, cancel := context.WithTimeout(ctx, rtr.timeout)
		defer cancel()
		var snap *models.OrderCache
		var err error
		err = retry.Do(ctx, bf, func(ctx context.Context) error {
			snap, err = f(ctx)
			if errors.Is(rtr.skippedErrors, err) {
				return err
			}
			return retry.RetryableError(err)
		})
		return snap, err
	}
}

func (rtr *Retr) SaveFuncRetr(f SaveFunc) SaveFunc {
	bf := retry.WithMaxRetries(rtr.maxRetries, retry.NewFibonacci(rtr.fiboDuration))

	return func(ctx context.Context, snap *models.OrderCache) error {
		ctx, cancel := context.WithTimeout(ctx, rtr.timeout)
		defer cancel()
		err := retry.Do(ctx, bf, func(ctx context.Context) error {
			err := f(ctx, snap)
			if errors.Is(rtr.skippedErrors, err) {
				return err
			}
			return retry.RetryableError(err)
		})
		return err
	}
}

func (rtr *Retr) UpsertFuncRetr(f UpsertFunc) UpsertFunc {
	bf := retry.WithMaxRetries(rtr.maxRetries, retry.NewFibonacci(rtr.fiboDuration))

	return func(ctx context.Context, order models.OrderSummary) (*models.OrderCache, error) {
		ctx, cancel := context.WithTimeout(ctx, rtr.timeout)
		defer cancel()
		var snap *models.OrderCache
		var err error
		err = retry.Do(ctx, bf, func(ctx context.Context) error {
			snap, err = f(ctx, order)
			if errors.Is(rtr.skippedErrors, err) {
				return err
			}
			return retry.RetryableError(err)
		})
		return snap, err
	}
}

func (rtr *Retr) SetParams(fibotime, timeout time.Duration, maxretries uint64) {
	rtr.fiboDuration = fibotime
	rtr.maxRetries = maxretries
	rtr.timeout = timeout
}

func NewRetr() *Retr {
	return &Retr{
		fiboDuration: 500 * time.Millisecond,
		maxRetries:   3,
		timeout:      10 * time.Second,
		skippedErrors: errors.Join(
			prjerrors.ErrEmptyCache,
		),
	}
}
