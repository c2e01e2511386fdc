package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_EnvDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	t.Setenv(EnvConfigDir, dir)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), store.Path())
	assert.DirExists(t, dir)
}

func TestDefaultDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/tmp/custom")
		dir, err := DefaultDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom", dir)
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("Cannot determine home directory")
		}
		dir, err := DefaultDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, DefaultDirName), dir)
	})
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.model", "gpt-4o-mini"))

	val, ok := store.Get("llm.model")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", val)
	assert.Equal(t, "gpt-4o-mini", store.GetString("llm.model"))

	_, ok = store.Get("llm.api_key")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("llm.api_key"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name  string
		value any
		want  int
	}{
		{name: "int", value: 5, want: 5},
		{name: "int64", value: int64(6), want: 6},
		{name: "float", value: 7.0, want: 7},
		{name: "numeric string", value: " 8 ", want: 8},
		{name: "non numeric string", value: "eight", want: 0},
		{name: "bool", value: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.Set("search.top", tt.value))
			assert.Equal(t, tt.want, store.GetInt("search.top"))
		})
	}

	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("search.top", 3))

	assert.Empty(t, store.GetString("search.top"))
}

func TestConfigStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("index.source", "./notes"))
	require.NoError(t, store.Set("llm.timeout_seconds", 30))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "./notes", reloaded.GetString("index.source"))
	assert.Equal(t, 30, reloaded.GetInt("llm.timeout_seconds"))
}

func TestConfigStore_LoadPicksUpExternalEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.model", "a"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[llm]\nmodel = \"b\"\n"), 0600))
	require.NoError(t, store.Load())

	assert.Equal(t, "b", store.GetString("llm.model"))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.NoFileExists(t, store.Path())
	_, ok := store.Get("llm.model")
	assert.False(t, ok)
}

func TestConfigStore_Save(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save())

	assert.FileExists(t, store.Path())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.api_key", "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)

	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_CommentOnlyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("# docask settings\n\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, ok := store.Get("llm.model")
	assert.False(t, ok)
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[llm\nmodel ="), 0600))

	_, err := NewConfigStore(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestNewConfigStore_DirIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	_, err := NewConfigStore(filepath.Join(blocker, "cfg"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create config directory")
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, store.Set(fmt.Sprintf("k.v%d", n), n))
			store.GetInt(fmt.Sprintf("k.v%d", n))
		}(i)
	}
	wg.Wait()

	for i := range 10 {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("k.v%d", i)))
	}
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.model", "gpt-4o"))
	require.NoError(t, store.Set("llm.provider", "openai"))
	require.NoError(t, store.Set("search.top", 5))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[llm]")
	assert.Contains(t, string(raw), "[search]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", reloaded.GetString("llm.model"))
	assert.Equal(t, "openai", reloaded.GetString("llm.provider"))
	assert.Equal(t, 5, reloaded.GetInt("search.top"))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[index]\ndir = \"/srv/index\"\nstore = \"sqlite\"\n\n[search]\ntop = 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, FileName), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/index", store.GetString("index.dir"))
	assert.Equal(t, "sqlite", store.GetString("index.store"))
	assert.Equal(t, 4, store.GetInt("search.top"))
}

func TestNestMap(t *testing.T) {
	tests := []struct {
		name string
		flat map[string]any
		want map[string]any
	}{
		{
			name: "flat keys",
			flat: map[string]any{"a": 1},
			want: map[string]any{"a": 1},
		},
		{
			name: "dotted keys become tables",
			flat: map[string]any{"a.b": 1, "a.c": "x", "d.e.f": true},
			want: map[string]any{
				"a": map[string]any{"b": 1, "c": "x"},
				"d": map[string]any{"e": map[string]any{"f": true}},
			},
		},
		{
			name: "leaf collision keeps dotted remainder",
			flat: map[string]any{"a": 1, "a.b": 2},
			want: map[string]any{"a": 1, "a.b": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nested := nestMap(tt.flat)
			assert.Equal(t, tt.want, nested)
			assert.Equal(t, tt.flat, flattenMap(nested, ""))
		})
	}
}
