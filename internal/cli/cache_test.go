package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stackview/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", xdg)
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(xdg, "stackview"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, ".cache", "stackview"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestNewCacheSelection(t *testing.T) {
	ctx := context.Background()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(cacheURLEnv, "")
	c := New(os.Stderr, LogInfo)

	store, err := c.newCache(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(cache.NullCache); !ok {
		t.Errorf("--no-cache should use NullCache, got %T", store)
	}

	store, err = c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*cache.FileCache); !ok {
		t.Errorf("default should use FileCache, got %T", store)
	}

	c.cacheURL = "not-a-url"
	if _, err := c.newCache(ctx, false); err == nil {
		t.Error("invalid redis URL should fail")
	}
}

func TestCacheCommands(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(strings.TrimSpace(out)) != "stackview" {
		t.Errorf("cache path = %q", out)
	}

	out, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if out == "" {
		t.Error("cache clear should report")
	}
}
