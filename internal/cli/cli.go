package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/buildinfo"
	"github.com/matzehuels/stackview/pkg/cache"
	"github.com/matzehuels/stackview/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "stackview"

	// cacheURLEnv selects a redis cache when set.
	cacheURLEnv = "STACKVIEW_CACHE_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// cacheURL overrides STACKVIEW_CACHE_URL.
	cacheURL string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stackview turns stack layouts into constraint graphs",
		Long: `Stackview arranges an ordered list of elements along one axis by synthesizing
an identified constraint graph, and animates hiding and showing them.

Stack documents (TOML, YAML or JSON) describe the container, its items and
an optional script of visibility changes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cacheURL, "cache-url", "", "redis cache URL (default $"+cacheURLEnv+", else file cache)")

	root.AddCommand(c.initCommand())
	root.AddCommand(c.synthCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, loggerFromContext(ctx)), nil
}

// newCache picks the cache backend: none, redis when a URL is configured,
// else the file cache. An unusable file cache directory disables caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := c.redisURL(); url != "" {
		return cache.NewRedisCache(ctx, url)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		loggerFromContext(ctx).Warn("file cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

func (c *CLI) redisURL() string {
	if c.cacheURL != "" {
		return c.cacheURL
	}
	return os.Getenv(cacheURLEnv)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/stackview/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputPath names the artifact for format. A single format writes to
// output as given; several formats use output as a base path.
func outputPath(doc, output, format string, multi bool) string {
	if output == "" {
		return strings.TrimSuffix(doc, filepath.Ext(doc)) + "." + format
	}
	if !multi {
		return output
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
