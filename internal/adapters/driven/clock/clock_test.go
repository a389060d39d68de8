package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Sleep(t *testing.T) {
	c := System{}
	start := c.Now()
	require.NoError(t, c.Sleep(context.Background(), 5*time.Millisecond))
	assert.GreaterOrEqual(t, c.Now().Sub(start), 5*time.Millisecond)
}

func TestSystem_SleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := System{}.Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSystem_SleepZero(t *testing.T) {
	assert.NoError(t, System{}.Sleep(context.Background(), 0))
}

func TestVirtual_SleepAdvancesTime(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	v := NewVirtual(start)

	require.NoError(t, v.Sleep(context.Background(), 2*time.Second))
	require.NoError(t, v.Sleep(context.Background(), 100*time.Millisecond))

	assert.Equal(t, start.Add(2100*time.Millisecond), v.Now())
	assert.Equal(t, []time.Duration{2 * time.Second, 100 * time.Millisecond}, v.Sleeps())
	assert.Equal(t, 2100*time.Millisecond, v.Total())
}

func TestVirtual_Advance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	v := NewVirtual(start)
	v.Advance(time.Minute)

	assert.Equal(t, start.Add(time.Minute), v.Now())
	assert.Empty(t, v.Sleeps())
}

func TestVirtual_OnSleepHook(t *testing.T) {
	v := NewVirtual(time.Time{})
	var seen []time.Duration
	v.OnSleep(func(d time.Duration) { seen = append(seen, d) })

	_ = v.Sleep(context.Background(), time.Second)
	_ = v.Sleep(context.Background(), time.Millisecond)
	v.OnSleep(nil)
	_ = v.Sleep(context.Background(), time.Hour)

	assert.Equal(t, []time.Duration{time.Second, time.Millisecond}, seen)
}

func TestVirtual_SleepCancelled(t *testing.T) {
	v := NewVirtual(time.Time{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := v.Sleep(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, v.Sleeps())
}

func TestVirtual_HookCancelsContext(t *testing.T) {
	v := NewVirtual(time.Time{})
	ctx, cancel := context.WithCancel(context.Background())
	v.OnSleep(func(time.Duration) { cancel() })

	err := v.Sleep(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
