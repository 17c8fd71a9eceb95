package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/diffwarden/internal/core"
)

const testDiff = "diff --git a/x b/x\n--- a/x\n+++ b/x\n@@ -1 +1 @@\n-old\n+new\n"

// memStore is an in-memory Store for tests that do not need a disk.
type memStore struct {
	data    map[string][]byte
	failPut bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(key string) ([]byte, bool) {
	data, ok := m.data[key]
	return data, ok
}

func (m *memStore) Put(key string, data []byte) error {
	if m.failPut {
		return errors.New("disk full")
	}
	m.data[key] = data
	return nil
}

func newTestCache(t *testing.T, modelID string) (*Cache, *memStore) {
	t.Helper()
	store := newMemStore()
	return New(store, modelID, nil), store
}

func TestDeriveKey_Deterministic(t *testing.T) {
	c, _ := newTestCache(t, "model-A")
	opts := core.ReviewOptions{Template: "security", Focus: []string{"auth", "crypto"}}

	k1 := c.DeriveKey(testDiff, opts)
	k2 := c.DeriveKey(testDiff, opts)

	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)
}

func TestDeriveKey_Sensitivity(t *testing.T) {
	base := core.ReviewOptions{Template: "security", Focus: []string{"auth", "crypto"}, Ignore: []string{"style"}}
	c, _ := newTestCache(t, "model-A")
	baseKey := c.DeriveKey(testDiff, base)

	tests := []struct {
		name string
		key  func() string
	}{
		{
			name: "different diff",
			key:  func() string { return c.DeriveKey(testDiff+"+more\n", base) },
		},
		{
			name: "different template",
			key: func() string {
				o := base
				o.Template = "performance"
				return c.DeriveKey(testDiff, o)
			},
		},
		{
			name: "different focus",
			key: func() string {
				o := base
				o.Focus = []string{"concurrency"}
				return c.DeriveKey(testDiff, o)
			},
		},
		{
			name: "different ignore",
			key: func() string {
				o := base
				o.Ignore = nil
				return c.DeriveKey(testDiff, o)
			},
		},
		{
			name: "different model id",
			key: func() string {
				other, _ := newTestCache(t, "model-B")
				return other.DeriveKey(testDiff, base)
			},
		},
		{
			name: "focus order",
			key: func() string {
				o := base
				o.Focus = []string{"crypto", "auth"}
				return c.DeriveKey(testDiff, o)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, baseKey, tt.key())
		})
	}
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t, "model-A")
	opts := core.ReviewOptions{Template: "security", Focus: []string{"auth"}}
	key := c.DeriveKey(testDiff, opts)

	_, ok := c.Get(key, opts)
	assert.False(t, ok, "expected miss before put")

	c.Put(key, "REVIEW TEXT", opts)

	got, ok := c.Get(key, opts)
	require.True(t, ok)
	assert.Equal(t, "REVIEW TEXT", got)
}

func TestCache_InvalidationOnDrift(t *testing.T) {
	opts := core.ReviewOptions{Template: "security", Focus: []string{"auth", "crypto"}, Ignore: []string{"style"}}

	tests := []struct {
		name  string
		drift func(core.ReviewOptions) core.ReviewOptions
	}{
		{
			name: "template changed",
			drift: func(o core.ReviewOptions) core.ReviewOptions {
				o.Template = "performance"
				return o
			},
		},
		{
			name: "focus changed",
			drift: func(o core.ReviewOptions) core.ReviewOptions {
				o.Focus = []string{"crypto"}
				return o
			},
		},
		{
			name: "focus reordered",
			drift: func(o core.ReviewOptions) core.ReviewOptions {
				o.Focus = []string{"crypto", "auth"}
				return o
			},
		},
		{
			name: "ignore cleared",
			drift: func(o core.ReviewOptions) core.ReviewOptions {
				o.Ignore = nil
				return o
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCache(t, "model-A")
			key := c.DeriveKey(testDiff, opts)
			c.Put(key, "REVIEW TEXT", opts)

			_, ok := c.Get(key, tt.drift(opts))
			assert.False(t, ok)
		})
	}
}

func TestCache_InvalidationOnModelChange(t *testing.T) {
	store := newMemStore()
	opts := core.ReviewOptions{Template: "security"}

	writer := New(store, "model-A", nil)
	key := writer.DeriveKey(testDiff, opts)
	writer.Put(key, "REVIEW TEXT", opts)

	reader := New(store, "model-B", nil)
	_, ok := reader.Get(key, opts)
	assert.False(t, ok)
}

func TestCache_InvalidationOnVersionBump(t *testing.T) {
	c, store := newTestCache(t, "model-A")
	opts := core.ReviewOptions{Template: "security"}
	key := c.DeriveKey(testDiff, opts)

	// An entry left behind by an older format version.
	store.data[key] = []byte(`{"version":"0","modelId":"model-A","template":"security","review":"STALE"}`)

	_, ok := c.Get(key, opts)
	assert.False(t, ok)
}

func TestCache_TemplateDefaultsMatch(t *testing.T) {
	// An entry written without a template must validate against a request
	// that asks for "default" explicitly, and vice versa.
	c, _ := newTestCache(t, "model-A")

	key := c.DeriveKey(testDiff, core.ReviewOptions{})
	c.Put(key, "REVIEW TEXT", core.ReviewOptions{})

	got, ok := c.Get(key, core.ReviewOptions{Template: "default"})
	require.True(t, ok)
	assert.Equal(t, "REVIEW TEXT", got)
}

func TestCache_MissOnAbsentKey(t *testing.T) {
	c, _ := newTestCache(t, "model-A")

	got, ok := c.Get("0000000000000000000000000000000000000000000000000000000000000000", core.ReviewOptions{})
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestCache_CorruptEntryIsAMiss(t *testing.T) {
	c, store := newTestCache(t, "model-A")
	opts := core.ReviewOptions{}
	key := c.DeriveKey(testDiff, opts)
	store.data[key] = []byte("{not json")

	_, ok := c.Get(key, opts)
	assert.False(t, ok)
}

func TestCache_PutSwallowsWriteFailure(t *testing.T) {
	store := newMemStore()
	store.failPut = true
	c := New(store, "model-A", nil)
	opts := core.ReviewOptions{}
	key := c.DeriveKey(testDiff, opts)

	assert.NotPanics(t, func() { c.Put(key, "REVIEW TEXT", opts) })

	_, ok := c.Get(key, opts)
	assert.False(t, ok)
}

func TestCache_IdempotentPut(t *testing.T) {
	c, store := newTestCache(t, "model-A")
	opts := core.ReviewOptions{Focus: []string{"auth"}}
	key := c.DeriveKey(testDiff, opts)

	c.Put(key, "REVIEW TEXT", opts)
	first := append([]byte(nil), store.data[key]...)
	c.Put(key, "REVIEW TEXT", opts)

	assert.Equal(t, first, store.data[key])
	got, ok := c.Get(key, opts)
	require.True(t, ok)
	assert.Equal(t, "REVIEW TEXT", got)
}

func TestCache_TemplateScenario(t *testing.T) {
	// Same diff under two templates produces two distinct keys, and a
	// lookup under the unwritten key misses.
	c, _ := newTestCache(t, "model-A")
	security := core.ReviewOptions{Template: "security"}
	performance := core.ReviewOptions{Template: "performance"}

	k1 := c.DeriveKey(testDiff, security)
	k2 := c.DeriveKey(testDiff, performance)
	require.NotEqual(t, k1, k2)

	c.Put(k1, "REVIEW TEXT", security)

	got, ok := c.Get(k1, security)
	require.True(t, ok)
	assert.Equal(t, "REVIEW TEXT", got)

	_, ok = c.Get(k2, security)
	assert.False(t, ok)
}

func TestDirStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	c := New(store, "model-A", nil)
	opts := core.ReviewOptions{Template: "security"}
	key := c.DeriveKey(testDiff, opts)
	c.Put(key, "REVIEW TEXT", opts)

	// The entry lands as <key>.json on disk.
	_, err = os.Stat(filepath.Join(dir, "cache", key+".json"))
	require.NoError(t, err)

	got, ok := c.Get(key, opts)
	require.True(t, ok)
	assert.Equal(t, "REVIEW TEXT", got)
}

func TestDirStore_InitIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	_, err := NewDirStore(dir)
	require.NoError(t, err)
	_, err = NewDirStore(dir)
	require.NoError(t, err)
}

func TestDirStore_StatsAndClear(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	require.NoError(t, err)

	c := New(store, "model-A", nil)
	for _, diff := range []string{"diff-one", "diff-two", "diff-three"} {
		key := c.DeriveKey(diff, core.ReviewOptions{})
		c.Put(key, "review of "+diff, core.ReviewOptions{})
	}

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Entries)
	assert.Positive(t, stats.TotalBytes)
	assert.Equal(t, dir, stats.Dir)

	require.NoError(t, store.Clear())

	stats, err = store.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.Entries)
}
