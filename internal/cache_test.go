package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/eigengo/quality/internal/types"
)

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")

	src := filepath.Join(dir, "A.java")
	require.NoError(t, os.WriteFile(src, []byte(`class A { }`), 0o644))

	cache, err := NewCache(cacheDir)
	require.NoError(t, err)

	_, ok := cache.Get(src)
	assert.False(t, ok)

	violations := []tt.Violation{
		{Rule: "naming-convention", Severity: tt.SeverityError, Filename: src, Line: 1, Message: "m"},
	}
	cache.Set(src, violations)

	got, ok := cache.Get(src)
	require.True(t, ok)
	assert.Equal(t, violations, got)

	require.NoError(t, cache.Save())

	// a fresh cache reads the persisted entries back
	reloaded, err := NewCache(cacheDir)
	require.NoError(t, err)
	got, ok = reloaded.Get(src)
	require.True(t, ok)
	assert.Equal(t, violations, got)
}

func TestCacheInvalidatesOnContentChange(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "A.java")
	require.NoError(t, os.WriteFile(src, []byte(`class A { }`), 0o644))

	cache, err := NewCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	cache.Set(src, nil)

	require.NoError(t, os.WriteFile(src, []byte(`class B { }`), 0o644))

	_, ok := cache.Get(src)
	assert.False(t, ok)
}

func TestEngineUsesCache(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "A.java")
	require.NoError(t, os.WriteFile(src, []byte(`class fooBar { }`), 0o644))

	cache, err := NewCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	engine, err := NewEngine(nil)
	require.NoError(t, err)
	engine.SetCache(cache)

	first, err := engine.Run(src)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := engine.Run(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
