package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("navigation.start_location", "Entrance"))
	val, ok := store.Get("navigation.start_location")
	assert.True(t, ok)
	assert.Equal(t, "Entrance", val)

	require.NoError(t, store.Set("navigation.start_location", "Stairs"))
	assert.Equal(t, "Stairs", store.GetString("navigation.start_location"))

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("map.path", "/srv/campus.yaml")
	_ = store.Set("navigation.forward_speed", 50)

	assert.Equal(t, "/srv/campus.yaml", store.GetString("map.path"))
	assert.Equal(t, "", store.GetString("navigation.forward_speed"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected int
	}{
		{"int", 42, 42},
		{"int64", int64(123), 123},
		{"float64 truncates", 123.7, 123},
		{"string", "not_a_number", 0},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			_ = store.Set("k", tt.value)
			assert.Equal(t, tt.expected, store.GetInt("k"))
		})
	}

	assert.Equal(t, 0, NewConfigStore().GetInt("missing"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected float64
	}{
		{"float64", 2.5, 2.5},
		{"float32", float32(1.5), 1.5},
		{"int", 20, 20},
		{"int64", int64(7), 7},
		{"string", "2.0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			_ = store.Set("k", tt.value)
			assert.InDelta(t, tt.expected, store.GetFloat("k"), 0.0001)
		})
	}

	assert.InDelta(t, 0.0, NewConfigStore().GetFloat("missing"), 0.0001)
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("a", true)
	_ = store.Set("b", "true")

	assert.True(t, store.GetBool("a"))
	assert.False(t, store.GetBool("b"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("typed", []string{"a", "b"})
	_ = store.Set("untyped", []any{"a", 1, "b"})
	_ = store.Set("scalar", "a")

	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("typed"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("untyped"))
	assert.Nil(t, store.GetStringSlice("scalar"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	const workers = 50
	wg.Add(workers * 2)
	for i := 0; i < workers; i++ {
		go func(id int) {
			defer wg.Done()
			_ = store.Set("navigation.forward_speed", id)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("navigation.forward_speed")
		}()
	}
	wg.Wait()

	_, ok := store.Get("navigation.forward_speed")
	assert.True(t, ok)
}
