// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package auxcallback

import (
	"context"
	"math"
	"time"
)

// Dispatch selects and runs a drain, based on the number of args, as
// supplied by a host:
//
//   - 0 args: [Engine.ProcessAll], returns nil
//   - 1 arg, a string channel id: [Engine.Process], returns nil
//   - 2 args, a channel id or nil, then a time limit in milliseconds:
//     [Engine.ProcessFor] if the first arg is a string, otherwise
//     [Engine.ProcessAllFor], returns the bool result
//
// The time limit may be any integer or float type, where negative (or NaN)
// values are treated as 0, or a [time.Duration], which is used as-is.
//
// Any other number of args results in [ErrInvalidArgCount]. Usage errors are
// returned as [*UsageError], before any channel is touched.
func (e *Engine) Dispatch(ctx context.Context, args ...any) (any, error) {
	switch len(args) {
	case 0:
		if err := e.ProcessAll(ctx); err != nil {
			return nil, err
		}
		return nil, nil

	case 1:
		id, ok := args[0].(string)
		if !ok {
			return nil, newArgumentError(`callback channel id must be a string, got %T`, args[0])
		}
		e.Process(id)
		return nil, nil

	case 2:
		budget, err := budgetArg(args[1])
		if err != nil {
			return nil, err
		}
		if id, ok := args[0].(string); ok {
			return e.ProcessFor(id, budget), nil
		}
		return e.ProcessAllFor(budget), nil

	default:
		return nil, ErrInvalidArgCount
	}
}

// budgetArg converts a millisecond time limit, saturating like a float to
// unsigned integer cast.
func budgetArg(v any) (time.Duration, error) {
	switch v := v.(type) {
	case time.Duration:
		return max(v, 0), nil
	case int:
		return signedMillis(int64(v)), nil
	case int8:
		return signedMillis(int64(v)), nil
	case int16:
		return signedMillis(int64(v)), nil
	case int32:
		return signedMillis(int64(v)), nil
	case int64:
		return signedMillis(v), nil
	case uint:
		return millisDuration(uint64(v)), nil
	case uint8:
		return millisDuration(uint64(v)), nil
	case uint16:
		return millisDuration(uint64(v)), nil
	case uint32:
		return millisDuration(uint64(v)), nil
	case uint64:
		return millisDuration(v), nil
	case float32:
		return floatMillis(float64(v)), nil
	case float64:
		return floatMillis(v), nil
	default:
		return 0, newArgumentError(`callback time limit must be a number, got %T`, v)
	}
}

func signedMillis(v int64) time.Duration {
	if v < 0 {
		return 0
	}
	return millisDuration(uint64(v))
}

func floatMillis(v float64) time.Duration {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxUint64:
		return millisDuration(math.MaxUint64)
	default:
		return millisDuration(uint64(v))
	}
}
