// Copyright (c) Microsoft. All rights reserved.

package projects

import (
	"context"
	"fmt"
	"time"

	"github.com/azure-ai-foundry/foundry-samples/go/foundry"
)

// DefaultPollInterval is the delay between status checks.
const DefaultPollInterval = time.Second

// PollOptions controls [PollUntil]. The zero value polls every second with
// no backoff and no deadline other than the context's.
type PollOptions struct {
	// Interval is the delay before the second fetch. Defaults to DefaultPollInterval.
	Interval time.Duration

	// Multiplier grows the interval after each pending observation.
	// Values below 1 are treated as 1 (fixed interval).
	Multiplier float64

	// MaxInterval caps the interval when Multiplier > 1. Zero means no cap.
	MaxInterval time.Duration

	// MaxWait bounds the total time spent waiting. When the next sleep would
	// exceed it, polling stops with foundry.ErrPollTimeout. Zero means no bound.
	MaxWait time.Duration
}

func (o *PollOptions) withDefaults() PollOptions {
	var out PollOptions
	if o != nil {
		out = *o
	}
	if out.Interval <= 0 {
		out.Interval = DefaultPollInterval
	}
	if out.Multiplier < 1 {
		out.Multiplier = 1
	}
	return out
}

// PollUntil calls fetch until pending reports false for the fetched value,
// sleeping between calls. The value that ended the loop is returned as is,
// whatever terminal state it is in; only fetch errors, context cancellation
// and an exhausted MaxWait produce an error. On error the last fetched
// value, if any, is returned alongside it.
func PollUntil[T any](ctx context.Context, fetch func(context.Context) (T, error), pending func(T) bool, opts *PollOptions) (T, error) {
	o := opts.withDefaults()
	interval := o.Interval
	var waited time.Duration

	for {
		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}
		if !pending(v) {
			return v, nil
		}

		if o.MaxWait > 0 && waited+interval > o.MaxWait {
			return v, fmt.Errorf("%w after %s", foundry.ErrPollTimeout, waited)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return v, ctx.Err()
		case <-timer.C:
		}
		waited += interval

		if o.Multiplier > 1 {
			interval = time.Duration(float64(interval) * o.Multiplier)
			if o.MaxInterval > 0 && interval > o.MaxInterval {
				interval = o.MaxInterval
			}
		}
	}
}
