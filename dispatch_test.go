package auxcallback

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Dispatch(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []any
		// queued per channel before the call
		queued map[string]int
		// remaining per channel after the call
		remaining map[string]int
		result    any
		err       error
		errString string
	}{
		{
			name:      `NoArgsDrainsEverything`,
			queued:    map[string]int{`a`: 2, `b`: 3},
			remaining: map[string]int{`a`: 0, `b`: 0},
		},
		{
			name:      `OneArgDrainsOneChannel`,
			args:      []any{`a`},
			queued:    map[string]int{`a`: 2, `b`: 3},
			remaining: map[string]int{`a`: 0, `b`: 3},
		},
		{
			name:      `OneArgNotString`,
			args:      []any{nil},
			queued:    map[string]int{`a`: 2},
			remaining: map[string]int{`a`: 2},
			err:       ErrInvalidArgument,
			errString: `callback channel id must be a string, got <nil>`,
		},
		{
			name:      `TwoArgsNilDrainsAllBounded`,
			args:      []any{nil, 50},
			queued:    map[string]int{`a`: 2, `b`: 3},
			remaining: map[string]int{`a`: 0, `b`: 0},
			result:    false,
		},
		{
			name:      `TwoArgsNonStringDrainsAllBounded`,
			args:      []any{3.5, int64(50)},
			queued:    map[string]int{`a`: 2, `b`: 3},
			remaining: map[string]int{`a`: 0, `b`: 0},
			result:    false,
		},
		{
			name:      `TwoArgsStringDrainsOneBounded`,
			args:      []any{`b`, float64(50)},
			queued:    map[string]int{`a`: 2, `b`: 3},
			remaining: map[string]int{`a`: 2, `b`: 0},
			result:    false,
		},
		{
			name:      `TwoArgsZeroBudget`,
			args:      []any{`b`, uint8(0)},
			queued:    map[string]int{`b`: 5},
			remaining: map[string]int{`b`: 4},
			result:    true,
		},
		{
			name:      `TwoArgsNegativeBudgetIsZero`,
			args:      []any{`b`, -100},
			queued:    map[string]int{`b`: 5},
			remaining: map[string]int{`b`: 4},
			result:    true,
		},
		{
			name:      `TwoArgsDurationBudget`,
			args:      []any{nil, time.Minute},
			queued:    map[string]int{`a`: 4},
			remaining: map[string]int{`a`: 0},
			result:    false,
		},
		{
			name:      `TwoArgsBadBudget`,
			args:      []any{`a`, `50`},
			queued:    map[string]int{`a`: 2},
			remaining: map[string]int{`a`: 2},
			err:       ErrInvalidArgument,
			errString: `callback time limit must be a number, got string`,
		},
		{
			name:      `ThreeArgs`,
			args:      []any{`a`, 50, true},
			queued:    map[string]int{`a`: 2},
			remaining: map[string]int{`a`: 2},
			err:       ErrInvalidArgCount,
			errString: `Invalid number of arguments for callback processing; must be 0, 1 or 2`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clock := newStepClock(time.Millisecond)
			engine := newTestEngine(t, WithClock(clock.Now), WithBlockingMode(BlockUntilEmpty))
			for id, n := range tc.queued {
				for i := 0; i < n; i++ {
					mustSend(t, engine.Registry(), id, VoidFunc(func() error { return nil }))
				}
			}
			before := engine.Registry().IDs()

			result, err := engine.Dispatch(context.Background(), tc.args...)

			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.EqualError(t, err, tc.errString)
				var usageErr *UsageError
				assert.True(t, errors.As(err, &usageErr))
				assert.Equal(t, before, engine.Registry().IDs(), `no channel state mutated`)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.result, result)
			for id, n := range tc.remaining {
				assert.Equal(t, n, engine.Registry().Channel(id).Len(), id)
			}
		})
	}
}

func TestEngine_Dispatch_blockingContext(t *testing.T) {
	engine := newTestEngine(t)
	engine.Registry().Channel(`idle`)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result, err := engine.Dispatch(ctx)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBudgetArg(t *testing.T) {
	for _, tc := range []struct {
		in  any
		out time.Duration
	}{
		{int(7), 7 * time.Millisecond},
		{int8(-1), 0},
		{int16(7), 7 * time.Millisecond},
		{int32(7), 7 * time.Millisecond},
		{int64(7), 7 * time.Millisecond},
		{uint(7), 7 * time.Millisecond},
		{uint16(7), 7 * time.Millisecond},
		{uint32(7), 7 * time.Millisecond},
		{uint64(7), 7 * time.Millisecond},
		{float32(7.9), 7 * time.Millisecond},
		{math.NaN(), 0},
		{math.Inf(-1), 0},
		{math.Inf(1), time.Duration(math.MaxInt64)},
		{-time.Second, 0},
	} {
		out, err := budgetArg(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.out, out, `%T(%v)`, tc.in, tc.in)
	}
}
