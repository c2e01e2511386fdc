package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("llm.model", "gpt-4o-mini"))
	require.NoError(t, store.Set("llm.model", "gpt-4o"))

	val, ok := store.Get("llm.model")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreWith(map[string]any{
		"s":       "text",
		"i":       7,
		"i64":     int64(8),
		"f":       9.0,
		"numeric": "10",
		"bad":     "ten",
	})

	assert.Equal(t, "text", store.GetString("s"))
	assert.Equal(t, "", store.GetString("i"))
	assert.Equal(t, 7, store.GetInt("i"))
	assert.Equal(t, 8, store.GetInt("i64"))
	assert.Equal(t, 9, store.GetInt("f"))
	assert.Equal(t, 10, store.GetInt("numeric"))
	assert.Equal(t, 0, store.GetInt("bad"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_SeedIsCopied(t *testing.T) {
	seed := map[string]any{"k": "v"}
	store := NewConfigStoreWith(seed)
	seed["k"] = "changed"

	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_NoOps(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("search.top", n)
			_ = store.GetInt("search.top")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("search.top")
	assert.True(t, ok)
}
